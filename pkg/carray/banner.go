// File: pkg/carray/banner.go
package carray

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

// FileKind selects between the two generated file flavours.
type FileKind int

const (
	SourceFile FileKind = iota
	HeaderFile
)

func (k FileKind) String() string {
	if k == HeaderFile {
		return "header"
	}
	return "source"
}

// headerFooter closes the include guard opened by Banner.
const headerFooter = "\n#endif\n"

const bannerText = `/*
 * Data file generated by {{.Tool}}
 * Copyright (c) {{.Year}}{{with .Holder}} {{.}}{{end}}
 *
 * Generated using the following command:
 *   > cd {{.WorkDir}}
 *   > {{.Command}}
 *
 * Timestamp: {{.Timestamp}}
 *
 * Contains the following files:
 *
{{range .Files}} * - {{.}}
{{end}} */

{{if .Guard}}#ifndef {{.Guard}}
#define {{.Guard}}

{{else}}#include "{{.PlatformInclude}}"
{{end}}#include <inttypes.h>`

var bannerTemplate = template.Must(template.New("banner").Parse(bannerText))

type bannerData struct {
	Tool            string
	Year            string
	Holder          string
	WorkDir         string
	Command         string
	Timestamp       string
	Files           []string
	Guard           string
	PlatformInclude string
}

// Banner renders the text written at the top of a generated file: the
// provenance comment listing every input bound to outputPath, followed by the
// include guard (header) or the platform includes (source).
func Banner(kind FileKind, outputPath string, inputs []string, args *Arguments, bctx BuildContext) (string, error) {
	data := bannerData{
		Tool:            bctx.Tool,
		Year:            bctx.Time.Format("2006"),
		Holder:          args.Copyright,
		WorkDir:         bctx.WorkDir,
		Command:         strings.Join(bctx.Args, " "),
		Timestamp:       bctx.Time.Format("2006-01-02 15:04:05"),
		PlatformInclude: args.PlatformInclude,
	}
	for _, in := range inputs {
		data.Files = append(data.Files, filepath.Base(in))
	}
	if kind == HeaderFile {
		data.Guard = GuardName(args.Prefix, outputPath)
	}

	var b strings.Builder
	if err := bannerTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s banner for %s: %w", kind, outputPath, err)
	}
	return b.String(), nil
}
