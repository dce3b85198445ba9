// File: pkg/carray/generate.go
package carray

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result describes what a run produced.
type Result struct {
	Source    string   // Combined-mode source path; empty in split mode.
	Header    string   // Combined-mode header path; empty in split mode.
	Inputs    []string // Resolved input paths in processing order.
	Processed []string // Inputs whose arrays were emitted.
	Failed    []string // Inputs that could not be converted.
}

var (
	failureColor = color.New(color.FgRed)
	summaryColor = color.New(color.FgGreen)
)

// Run converts every input matched by args into C arrays. Per-file failures
// are reported on errOut and recorded in the Result; they do not fail the run.
// The combined-mode summary line is printed on out.
func Run(args *Arguments, bctx BuildContext, out, errOut io.Writer, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	if err := args.Validate(); err != nil {
		return nil, err
	}

	inputs, err := ResolveInputs(args.Patterns, args.Excludes, logger)
	if err != nil {
		logger.Error("Failed to resolve inputs", zap.Error(err))
		return nil, err
	}
	logger.Debug("Resolved inputs", zap.Strings("inputs", inputs))

	result := &Result{Inputs: inputs}

	var t target
	if args.Output != "" {
		ct, err := newCombinedTarget(inputs, args, bctx, logger)
		if err != nil {
			return result, fmt.Errorf("failed to open combined output: %w", err)
		}
		result.Source = ct.sink.sourcePath
		result.Header = ct.sink.headerPath
		t = ct
	} else {
		t = &perFileTarget{args: args, bctx: bctx, logger: logger}
	}

	var runErr error
	for _, path := range inputs {
		if runErr = result.record(path, processFile(path, t, args, logger), errOut, logger); runErr != nil {
			break
		}
	}

	if err := multierr.Append(runErr, t.finish()); err != nil {
		logger.Error("Failed to generate arrays", zap.Error(err))
		return result, fmt.Errorf("failed to generate arrays: %w", err)
	}

	if result.Source != "" {
		printSummary(out, bctx, result)
	}

	logger.Info("Generated C data arrays",
		zap.Int("processed", len(result.Processed)),
		zap.Int("failed", len(result.Failed)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// record files the outcome of one input. A *convertError is reported and
// counted as a failure; any other error is returned and stops the run.
func (r *Result) record(path string, err error, errOut io.Writer, logger *zap.Logger) error {
	var ce *convertError
	switch {
	case err == nil:
		r.Processed = append(r.Processed, path)
	case errors.As(err, &ce):
		r.Failed = append(r.Failed, path)
		logger.Warn("Skipping input", zap.String("filePath", path), zap.Error(ce.Err))
		failureColor.Fprintf(errOut, "cannot convert %s\n", path)
	default:
		return err
	}
	return nil
}

// printSummary prints the combined-mode summary naming the inputs that made it
// into the output.
func printSummary(out io.Writer, bctx BuildContext, result *Result) {
	source := result.Source
	if !filepath.IsAbs(source) {
		source = filepath.Join(bctx.WorkDir, source)
	}
	names := make([]string, 0, len(result.Processed))
	for _, p := range result.Processed {
		names = append(names, filepath.Base(p))
	}
	summaryColor.Fprintf(out, "%s generated C data arrays in %s from (%s)\n",
		bctx.Tool, source, strings.Join(names, ", "))
}
