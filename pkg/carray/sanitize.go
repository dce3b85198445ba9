// File: pkg/carray/sanitize.go
package carray

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlnumRun = regexp.MustCompile(`[^0-9A-Za-z]+`)

// Sanitize collapses every run of non-alphanumeric characters into a single
// underscore, producing a C identifier-safe token.
func Sanitize(s string) string {
	return nonAlnumRun.ReplaceAllString(s, "_")
}

// ArrayName returns the C array name for an input file.
func ArrayName(prefix, inputPath string) string {
	name := filepath.Base(inputPath)
	if prefix != "" {
		name = prefix + "_" + name
	}
	return Sanitize(name)
}

// GuardName returns the include guard macro for a generated header.
func GuardName(prefix, outputPath string) string {
	return "_" + Sanitize(strings.ToUpper(prefix+"_"+filepath.Base(outputPath)))
}
