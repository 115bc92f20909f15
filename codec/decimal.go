// Package codec provides value-level helpers for the data-model layer that
// consumes parsed document trees: exact-text decimals and date-literal shape
// detection. Nothing here is invoked implicitly by the readers or writers.
package codec

import (
	"fmt"
	"math/big"

	wirefmt "github.com/reoring/wirefmt"
)

// Decimal is an arbitrary-precision decimal that preserves its exact source
// text, including trailing zeros and scale: ParseDecimal("1.50").String() is
// "1.50", never "1.5". The zero Decimal is null.
type Decimal struct {
	text string
}

// ParseDecimal validates s as a plain or exponent-form decimal literal and
// captures its text. An empty string yields the null Decimal.
func ParseDecimal(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, nil
	}
	if !validDecimal(s) {
		return Decimal{}, fmt.Errorf("codec: invalid decimal literal %q", s)
	}
	return Decimal{text: s}, nil
}

// MustDecimal is ParseDecimal for literals known valid at compile time.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsNull reports whether this is the null Decimal.
func (d Decimal) IsNull() bool { return d.text == "" }

// String returns the exact captured text; empty for the null Decimal.
func (d Decimal) String() string { return d.text }

// Rat returns the exact rational value, or false for the null Decimal.
func (d Decimal) Rat() (*big.Rat, bool) {
	if d.text == "" {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(d.text)
	return r, ok
}

// Cmp compares two non-null decimals by numeric value: -1, 0, or +1.
// Comparing with a null Decimal returns false.
func (d Decimal) Cmp(o Decimal) (int, bool) {
	a, ok := d.Rat()
	if !ok {
		return 0, false
	}
	b, ok := o.Rat()
	if !ok {
		return 0, false
	}
	return a.Cmp(b), true
}

// Node renders the decimal as a document tree node: the exact text for a
// value, the null token for the null Decimal.
func (d Decimal) Node() *wirefmt.Node {
	if d.text == "" {
		return wirefmt.Null()
	}
	return wirefmt.Number(d.text)
}

// DecimalOf extracts a Decimal from a numeric or null tree node.
func DecimalOf(n *wirefmt.Node) (Decimal, error) {
	if n == nil {
		return Decimal{}, fmt.Errorf("codec: nil node")
	}
	switch n.Kind {
	case wirefmt.KindNull:
		return Decimal{}, nil
	case wirefmt.KindNumber:
		return ParseDecimal(n.Value)
	default:
		return Decimal{}, fmt.Errorf("codec: node kind %s is not numeric", n.Kind)
	}
}

// validDecimal recognizes JSON-shaped numeric literals:
// -?digits(.digits)?([eE][+-]?digits)?
func validDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}
