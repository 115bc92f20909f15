package source

import (
	wirefmt "github.com/reoring/wirefmt"
	drvgojson "github.com/reoring/wirefmt/source/gojson"
)

// init in a separate package to avoid import cycle in root. Importing this
// package for side effects makes go-json the default object-notation driver.
func init() { wirefmt.SetJSONDriver(drvgojson.Driver()) }
