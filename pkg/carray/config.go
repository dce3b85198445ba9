// File: pkg/carray/config.go
package carray

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"bin2carray/pkg/version"

	"gopkg.in/yaml.v3"
)

// ErrUsage marks configuration errors detected before any input is processed.
var ErrUsage = errors.New("usage error")

// DefaultPlatformInclude is the header included at the top of every generated source file.
const DefaultPlatformInclude = "pico/platform.h"

// Arguments holds the configuration options for a generator run.
type Arguments struct {
	Patterns        []string `yaml:"in"`               // Input glob patterns, expanded in order.
	Output          string   `yaml:"out"`              // Combined output source path; empty selects split mode.
	Prefix          string   `yaml:"prefix"`           // Prepended to every array and include guard name.
	Verbose         bool     `yaml:"verbose"`          // Enables debug logging.
	Excludes        []string `yaml:"exclude"`          // Gitignore-style patterns removed from the resolved inputs.
	PlatformInclude string   `yaml:"platform_include"` // Header included by generated source files.
	Copyright       string   `yaml:"copyright"`        // Holder appended to the generated copyright line.
}

// LoadConfig reads Arguments from a YAML file. Unknown keys are rejected.
func LoadConfig(path string) (*Arguments, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open config file: %w", ErrUsage, err)
	}
	defer f.Close()

	args := &Arguments{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(args); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %w", ErrUsage, path, err)
	}
	return args, nil
}

// ApplyDefaults fills in unset optional fields.
func (a *Arguments) ApplyDefaults() {
	if a.PlatformInclude == "" {
		a.PlatformInclude = DefaultPlatformInclude
	}
}

// Validate checks the arguments before any file is touched.
func (a *Arguments) Validate() error {
	if len(a.Patterns) == 0 {
		return fmt.Errorf("%w: at least one input pattern is required (-i/--in)", ErrUsage)
	}
	for _, pattern := range a.Patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: invalid input pattern %q: %w", ErrUsage, pattern, err)
		}
	}
	if a.Output != "" {
		if filepath.Clean(a.Output) == filepath.Clean(headerPath(a.Output)) {
			return fmt.Errorf("%w: output %q would be used for both the source and the header file", ErrUsage, a.Output)
		}
		if info, err := os.Stat(a.Output); err == nil && info.IsDir() {
			return fmt.Errorf("%w: output %q is a directory", ErrUsage, a.Output)
		}
	}
	return nil
}

// BuildContext captures the invocation recorded in every generated banner.
type BuildContext struct {
	Tool    string    // Generator name, the base name of Args[0].
	WorkDir string    // Working directory of the invocation.
	Args    []string  // Full argument vector.
	Time    time.Time // Generation time.
}

// NewBuildContext builds a BuildContext from an argument vector and the
// current working directory.
func NewBuildContext(argv []string, now time.Time) (BuildContext, error) {
	wd, err := os.Getwd()
	if err != nil {
		return BuildContext{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	tool := version.Name
	if len(argv) > 0 {
		tool = filepath.Base(argv[0])
	}
	return BuildContext{
		Tool:    tool,
		WorkDir: wd,
		Args:    append([]string(nil), argv...),
		Time:    now,
	}, nil
}

// headerPath derives the header path paired with a source path.
func headerPath(sourcePath string) string {
	return stripExt(sourcePath) + ".h"
}

// stripExt removes the extension from p. A leading dot in the base name is
// not treated as an extension.
func stripExt(p string) string {
	ext := filepath.Ext(p)
	if ext == "" || ext == filepath.Base(p) {
		return p
	}
	return p[:len(p)-len(ext)]
}
