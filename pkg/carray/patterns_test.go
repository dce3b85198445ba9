package carray

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"
)

func writeFiles(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolveInputs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string][]byte{
		"b.bin":       {1},
		"a.bin":       {2},
		"c.raw":       {3},
		"skip.bin":    {4},
		"sub/d.bin":   {5},
		"dir.bin/x.y": {6},
	})
	j := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name     string
		patterns []string
		excludes []string
		want     []string
	}{
		{
			name:     "pattern order kept, matches sorted within a pattern",
			patterns: []string{j("*.raw"), j("[ab].bin")},
			want:     []string{j("c.raw"), j("a.bin"), j("b.bin")},
		},
		{
			name:     "duplicates kept",
			patterns: []string{j("a.bin"), j("*.bin")},
			want:     []string{j("a.bin"), j("a.bin"), j("b.bin"), j("dir.bin"), j("skip.bin")},
		},
		{
			name:     "zero matches contribute nothing",
			patterns: []string{j("*.png"), j("c.raw"), j("missing.bin")},
			want:     []string{j("c.raw")},
		},
		{
			name:     "excludes",
			patterns: []string{j("*.bin"), j("sub/*.bin")},
			excludes: []string{"skip.bin", "sub/"},
			want:     []string{j("a.bin"), j("b.bin"), j("dir.bin")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInputs(tt.patterns, tt.excludes, zaptest.NewLogger(t))
			if err != nil {
				t.Fatalf("ResolveInputs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveInputs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveInputs_BadPattern(t *testing.T) {
	_, err := ResolveInputs([]string{"[a-"}, nil, zaptest.NewLogger(t))
	if !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
}
