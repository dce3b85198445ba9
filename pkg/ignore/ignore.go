// Package ignore matches file paths against gitignore-style exclude patterns.
package ignore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern is a single compiled exclude pattern.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled form of the pattern.
	Negate bool           // Pattern started with '!' and re-includes matches.
	Line   string         // Original pattern text.
	Index  int            // Position in the pattern list (1-based).
}

// Matcher holds an ordered list of exclude patterns. The last matching
// pattern decides whether a path is excluded.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Compile parses lines and appends the resulting patterns. Blank lines and
// lines starting with '#' are skipped.
func (m *Matcher) Compile(lines ...string) error {
	for _, line := range lines {
		re, negate, ok, err := parsePatternLine(line)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", line, err)
		}
		if !ok {
			continue
		}
		p := &Pattern{
			Regexp: re,
			Negate: negate,
			Line:   line,
			Index:  len(m.patterns) + 1,
		}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled exclude pattern",
			zap.Int("index", p.Index),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
	return nil
}

// Match reports whether path is excluded.
func (m *Matcher) Match(path string) bool {
	matched, _ := m.MatchWithPattern(path)
	return matched
}

// MatchWithPattern reports whether path is excluded and returns the pattern
// that decided it, or nil when no pattern matched.
func (m *Matcher) MatchWithPattern(path string) (bool, *Pattern) {
	normalized := normalizePath(path)

	matched := false
	var decided *Pattern
	for _, p := range m.patterns {
		if p.Regexp.MatchString(normalized) {
			matched = !p.Negate
			decided = p
		}
	}

	if decided != nil {
		m.logger.Debug("Path matched exclude pattern",
			zap.String("path", normalized),
			zap.String("pattern", decided.Line),
			zap.Bool("excluded", matched))
	}
	return matched, decided
}

// normalizePath converts separators to forward slashes and drops a leading "./".
func normalizePath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "./")
}

// parsePatternLine turns one pattern line into an anchored regular expression.
// ok is false for blank and comment lines.
func parsePatternLine(line string) (re *regexp.Regexp, negate, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false, nil
	}

	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// "\#" and "\!" escape a literal leading character.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	dirOnly := strings.HasSuffix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")

	// A slash anywhere but the end anchors the pattern to the start of the path.
	anchored := strings.Contains(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, "/")

	expr := wildcardToRegex(trimmed)
	if anchored {
		expr = "^" + expr
	} else {
		expr = "^(.*/)?" + expr
	}
	if dirOnly {
		expr += "/.*$"
	} else {
		expr += "(/.*)?$"
	}

	re, err = regexp.Compile(expr)
	if err != nil {
		return nil, false, false, err
	}
	return re, negate, true, nil
}

// wildcardToRegex converts '**', '*', '?' and bracket classes to their regex
// equivalents and quotes everything else. An unclosed '[' is literal.
func wildcardToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			b.WriteString("(.*/)?")
			i += 2
		case strings.HasPrefix(pattern[i:], "/**") && i+3 == len(pattern):
			b.WriteString("(/.*)?")
			i += 2
		case strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(".*")
			i++
		case pattern[i] == '*':
			b.WriteString("[^/]*")
		case pattern[i] == '?':
			b.WriteString("[^/]")
		case pattern[i] == '[':
			if class, n, ok := bracketClass(pattern[i:]); ok {
				b.WriteString(class)
				i += n - 1
			} else {
				b.WriteString(`\[`)
			}
		default:
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}
	return b.String()
}

// bracketClass converts a leading "[...]" class to a regex class and returns
// the number of pattern bytes it consumed. '!' or '^' right after the '['
// negates, and a ']' in first position is a member. Ranges pass through, so
// an inverted range fails later in regexp.Compile.
func bracketClass(s string) (string, int, bool) {
	j := 1
	negate := false
	if j < len(s) && (s[j] == '!' || s[j] == '^') {
		negate = true
		j++
	}
	start := j
	if j < len(s) && s[j] == ']' {
		j++
	}
	end := strings.IndexByte(s[j:], ']')
	if end < 0 {
		return "", 0, false
	}
	end += j

	var b strings.Builder
	b.WriteByte('[')
	if negate {
		b.WriteString("^/")
	}
	for _, c := range []byte(s[start:end]) {
		switch c {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(']')
	return b.String(), end + 1, true
}
