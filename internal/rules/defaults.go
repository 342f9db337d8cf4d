package rules

import (
	_ "embed"
	"fmt"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Default builds the rule table shipped with the binary. Each call returns a
// fresh table.
func Default() *Table {
	res, err := Parse(defaultsYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in rule table is invalid: %v", err))
	}
	return res.Table
}

// Resolve loads the rule table at path, or the built-in table when path is
// empty.
func Resolve(path string) (*LoadResult, error) {
	if path == "" {
		return &LoadResult{Table: Default(), Source: "built-in"}, nil
	}
	return LoadFile(path)
}
