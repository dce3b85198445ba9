package cmd

import (
	"strings"

	"github.com/spf13/pflag"
)

// inputList is the value of --in. Each value remembers how many positional
// arguments the flag set had collected when it was parsed, so inputs given
// as "-i a.bin b.bin -i c.bin" keep their command-line order.
type inputList struct {
	fs     *pflag.FlagSet
	values []string
	at     []int
}

func newInputList(fs *pflag.FlagSet) *inputList {
	return &inputList{fs: fs}
}

func (l *inputList) Set(v string) error {
	l.values = append(l.values, v)
	l.at = append(l.at, len(l.fs.Args()))
	return nil
}

func (l *inputList) String() string {
	if len(l.values) == 0 {
		return ""
	}
	return "[" + strings.Join(l.values, ",") + "]"
}

func (l *inputList) Type() string { return "stringArray" }

// merge interleaves the positional arguments with the flag values in the
// order they were given.
func (l *inputList) merge(positional []string) []string {
	merged := make([]string, 0, len(l.values)+len(positional))
	next := 0
	for i, v := range l.values {
		for ; next < l.at[i] && next < len(positional); next++ {
			merged = append(merged, positional[next])
		}
		merged = append(merged, v)
	}
	return append(merged, positional[next:]...)
}
