// File: pkg/carray/patterns.go
package carray

import (
	"fmt"
	"path/filepath"

	"bin2carray/pkg/ignore"

	"go.uber.org/zap"
)

// ResolveInputs expands patterns against the filesystem. Matches are
// concatenated in pattern order without sorting or de-duplication across
// patterns. A pattern that matches nothing contributes nothing. Paths matched
// by excludes are dropped; directories are kept and reported when processed.
func ResolveInputs(patterns, excludes []string, logger *zap.Logger) ([]string, error) {
	matcher := ignore.New(logger)
	if err := matcher.Compile(excludes...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid input pattern %q: %w", ErrUsage, pattern, err)
		}
		if len(matches) == 0 {
			logger.Debug("Pattern matched no files", zap.String("pattern", pattern))
			continue
		}

		for _, match := range matches {
			if matcher.Len() > 0 && matcher.Match(match) {
				logger.Debug("Skipping excluded file", zap.String("path", match), zap.String("pattern", pattern))
				continue
			}
			files = append(files, match)
		}
	}

	return files, nil
}
