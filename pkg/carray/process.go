// File: pkg/carray/process.go
package carray

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	errOutputCollision = errors.New("input would be overwritten by its own output")
	errIsDirectory     = errors.New("input is a directory")
)

// convertError is a per-file failure: the input is skipped and the run goes on.
type convertError struct {
	Path string
	Err  error
}

func (e *convertError) Error() string {
	return fmt.Sprintf("cannot convert %s: %v", e.Path, e.Err)
}

func (e *convertError) Unwrap() error { return e.Err }

// processFile writes the array for one input to the output pair chosen by t.
// Failures to open, stat or size the input are returned as *convertError; anything
// else means the outputs can no longer be trusted.
func processFile(inputPath string, t target, args *Arguments, logger *zap.Logger) (err error) {
	logger.Debug("Processing file", zap.String("filePath", inputPath))

	in, err := os.Open(inputPath)
	if err != nil {
		return &convertError{Path: inputPath, Err: err}
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			logger.Warn("Failed to close input file", zap.String("filePath", inputPath), zap.Error(cerr))
		}
	}()

	info, err := in.Stat()
	if err != nil {
		return &convertError{Path: inputPath, Err: err}
	}
	if info.IsDir() {
		return &convertError{Path: inputPath, Err: errIsDirectory}
	}

	size, err := in.Seek(0, io.SeekEnd)
	if err != nil {
		return &convertError{Path: inputPath, Err: err}
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return &convertError{Path: inputPath, Err: err}
	}

	s, err := t.acquire(inputPath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, t.release(s))
	}()

	return writeArray(s, inputPath, in, size, args.Prefix, logger)
}

// writeArray emits the provenance comment to both outputs, the extern
// prototype to the header and the aligned definition to the source.
func writeArray(s *sink, inputPath string, in io.Reader, size int64, prefix string, logger *zap.Logger) error {
	name := ArrayName(prefix, inputPath)
	comment := fmt.Sprintf("\n\n/* source: %s\n * size  : %d bytes */\n", inputPath, size)

	err := s.write(
		comment+fmt.Sprintf("const uint8_t __aligned(4) %s[] = {", name),
		comment+fmt.Sprintf("extern const uint8_t %s[];\n", name),
	)
	if err != nil {
		return err
	}

	n, err := Transcribe(in, s.sw)
	if err != nil {
		return fmt.Errorf("failed to transcribe %s: %w", inputPath, err)
	}
	if n != size {
		return fmt.Errorf("failed to transcribe %s: read %d bytes, expected %d", inputPath, n, size)
	}
	if _, err := s.sw.WriteString("};"); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.sourcePath, err)
	}

	logger.Debug("Transcribed file",
		zap.String("filePath", inputPath),
		zap.String("array", name),
		zap.Int64("sizeBytes", n),
		zap.String("source", s.sourcePath))
	return nil
}
