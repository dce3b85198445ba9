// File: pkg/carray/target.go
package carray

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// sink is an open source/header output pair.
type sink struct {
	sourcePath string
	headerPath string
	source     *os.File
	header     *os.File
	sw         *bufio.Writer
	hw         *bufio.Writer
	logger     *zap.Logger
}

// createSink creates (truncating) both output files and writes their banners.
func createSink(sourcePath string, inputs []string, args *Arguments, bctx BuildContext, logger *zap.Logger) (*sink, error) {
	hdrPath := headerPath(sourcePath)
	for _, p := range []string{sourcePath, hdrPath} {
		if err := ensureDirectory(filepath.Dir(p), logger); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	source, err := os.Create(sourcePath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", sourcePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	header, err := os.Create(hdrPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", hdrPath), zap.Error(err))
		return nil, multierr.Append(fmt.Errorf("failed to create output file: %w", err), source.Close())
	}

	s := &sink{
		sourcePath: sourcePath,
		headerPath: hdrPath,
		source:     source,
		header:     header,
		sw:         bufio.NewWriter(source),
		hw:         bufio.NewWriter(header),
		logger:     logger,
	}

	srcBanner, err := Banner(SourceFile, sourcePath, inputs, args, bctx)
	if err == nil {
		var hdrBanner string
		hdrBanner, err = Banner(HeaderFile, hdrPath, inputs, args, bctx)
		if err == nil {
			err = s.write(srcBanner, hdrBanner)
		}
	}
	if err != nil {
		return nil, multierr.Append(err, s.close())
	}

	logger.Debug("Opened output pair",
		zap.String("source", sourcePath),
		zap.String("header", hdrPath),
		zap.Int("inputs", len(inputs)))
	return s, nil
}

// write appends text to the source and header outputs.
func (s *sink) write(sourceText, headerText string) error {
	if _, err := s.sw.WriteString(sourceText); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.sourcePath, err)
	}
	if _, err := s.hw.WriteString(headerText); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.headerPath, err)
	}
	return nil
}

// close terminates the include guard, flushes and closes both files. Both
// files are closed even when an earlier step fails.
func (s *sink) close() error {
	var err error
	if _, werr := s.hw.WriteString(headerFooter); werr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to write %s: %w", s.headerPath, werr))
	}
	if ferr := s.sw.Flush(); ferr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to flush %s: %w", s.sourcePath, ferr))
	}
	if ferr := s.hw.Flush(); ferr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to flush %s: %w", s.headerPath, ferr))
	}
	if cerr := s.source.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to close %s: %w", s.sourcePath, cerr))
	}
	if cerr := s.header.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to close %s: %w", s.headerPath, cerr))
	}
	if err != nil {
		s.logger.Error("Failed to close output pair", zap.String("source", s.sourcePath), zap.Error(err))
	}
	return err
}

// target decides where each input's arrays are written. It is resolved once
// per run: combinedTarget shares one pair, perFileTarget opens a pair per input.
type target interface {
	// acquire returns the output pair for inputPath.
	acquire(inputPath string) (*sink, error)
	// release is called once per successful acquire.
	release(s *sink) error
	// finish is called once after the last input.
	finish() error
}

type combinedTarget struct {
	sink *sink
}

func newCombinedTarget(inputs []string, args *Arguments, bctx BuildContext, logger *zap.Logger) (*combinedTarget, error) {
	s, err := createSink(args.Output, inputs, args, bctx, logger)
	if err != nil {
		return nil, err
	}
	return &combinedTarget{sink: s}, nil
}

func (t *combinedTarget) acquire(inputPath string) (*sink, error) {
	if samePath(inputPath, t.sink.sourcePath) || samePath(inputPath, t.sink.headerPath) {
		return nil, &convertError{Path: inputPath, Err: errOutputCollision}
	}
	return t.sink, nil
}

func (t *combinedTarget) release(*sink) error { return nil }

func (t *combinedTarget) finish() error { return t.sink.close() }

type perFileTarget struct {
	args   *Arguments
	bctx   BuildContext
	logger *zap.Logger
}

func (t *perFileTarget) acquire(inputPath string) (*sink, error) {
	base := stripExt(inputPath)
	sourcePath := base + ".c"
	if samePath(inputPath, sourcePath) || samePath(inputPath, headerPath(sourcePath)) {
		return nil, &convertError{Path: inputPath, Err: errOutputCollision}
	}
	return createSink(sourcePath, []string{inputPath}, t.args, t.bctx, t.logger)
}

func (t *perFileTarget) release(s *sink) error { return s.close() }

func (t *perFileTarget) finish() error { return nil }

// samePath reports whether a and b name the same file location.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
