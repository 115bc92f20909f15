// Package entity holds the static table of named character references that
// the sanitizer rewrites to numeric form. The table is built once from an
// embedded data file and is read-only afterwards, so lookups need no locking.
package entity

import (
	_ "embed"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed entities.yaml
var entitiesYAML []byte

// table materializes the name -> numeric-reference map on first use. A race
// between first callers is benign: the computation is pure and OnceValue
// retains a single result.
var table = sync.OnceValue(func() map[string]string {
	var raw map[string]int
	if err := yaml.Unmarshal(entitiesYAML, &raw); err != nil {
		// The data file ships inside the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic("entity: embedded table is invalid: " + err.Error())
	}
	m := make(map[string]string, len(raw))
	for name, cp := range raw {
		m[name] = "&#" + strconv.Itoa(cp) + ";"
	}
	return m
})

// Lookup returns the numeric character reference for a named entity.
func Lookup(name string) (string, bool) {
	ref, ok := table()[name]
	return ref, ok
}

// Names returns all table keys in sorted order.
func Names() []string {
	m := table()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of named entities in the table.
func Len() int { return len(table()) }
