package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"bin2carray/pkg/carray"
	"bin2carray/pkg/version"

	"github.com/fatih/color"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var arrayNameRe = regexp.MustCompile(`__aligned\(4\) (\w+)\[\]`)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(zaptest.NewLogger(t))
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_CombinedWithPositionalInputs(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string][]byte{"a.bin": {0xaa}, "b.bin": {0xbb, 0x0b}} {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	output := filepath.Join(dir, "images.c")

	out, _, err := execute(t, "-p", "gfx", "-o", output, "-i", filepath.Join(dir, "a.bin"), filepath.Join(dir, "b.bin"))
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(out, "generated C data arrays in "+output+" from (a.bin, b.bin)") {
		t.Errorf("summary = %q", out)
	}

	source, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"const uint8_t __aligned(4) gfx_a_bin[] = {\n  0xaa};",
		"const uint8_t __aligned(4) gfx_b_bin[] = {\n  0xbb, 0x0b};",
	} {
		if !strings.Contains(string(source), want) {
			t.Errorf("source missing %q", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "images.h")); err != nil {
		t.Errorf("header not written: %v", err)
	}
}

func TestRoot_InputOrderFollowsCommandLine(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin", "c.bin", "d.bin"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name[:1]), 0644); err != nil {
			t.Fatal(err)
		}
	}
	j := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "positional between flags",
			args: []string{"-i", j("a.bin"), j("b.bin"), "-i", j("c.bin")},
			want: "a.bin, b.bin, c.bin",
		},
		{
			name: "positional before first flag",
			args: []string{j("d.bin"), "-i", j("a.bin"), j("b.bin")},
			want: "d.bin, a.bin, b.bin",
		},
		{
			name: "after terminator",
			args: []string{"--in", j("c.bin"), "--", j("a.bin")},
			want: "c.bin, a.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "all.c")
			out, _, err := execute(t, append([]string{"-o", output}, tt.args...)...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if !strings.HasSuffix(out, "from ("+tt.want+")\n") {
				t.Errorf("summary = %q, want inputs (%s)", out, tt.want)
			}

			source, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, m := range arrayNameRe.FindAllStringSubmatch(string(source), -1) {
				got = append(got, m[1])
			}
			want := strings.ReplaceAll(strings.ReplaceAll(tt.want, ".", "_"), " ", "")
			if strings.Join(got, ",") != want {
				t.Errorf("array order = %v, want %s", got, want)
			}
		})
	}
}

func TestRoot_ConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "font.bin"), []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "font.tmp"), []byte{3}, 0644); err != nil {
		t.Fatal(err)
	}
	config := filepath.Join(dir, "bin2carray.yaml")
	content := "in: [\"" + filepath.ToSlash(filepath.Join(dir, "font.*")) + "\"]\n" +
		"prefix: fromconfig\n" +
		"exclude: [\"*.tmp\"]\n" +
		"platform_include: hardware/regs.h\n"
	if err := os.WriteFile(config, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "--config", config, "--prefix", "font"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	source, err := os.ReadFile(filepath.Join(dir, "font.c"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(source), "font_font_bin[]") {
		t.Errorf("flag prefix did not override config:\n%s", source)
	}
	if !strings.Contains(string(source), `#include "hardware/regs.h"`) {
		t.Errorf("config platform include not applied:\n%s", source)
	}
	if _, err := os.Stat(filepath.Join(dir, "font.h")); err != nil {
		t.Errorf("header not written: %v", err)
	}
}

func TestRoot_UsageError(t *testing.T) {
	out, errOut, err := execute(t, "--prefix", "gfx")
	if !errors.Is(err, carray.ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", err)
	}
	if !strings.Contains(out+errOut, "Usage:") {
		t.Errorf("usage not printed: stdout=%q stderr=%q", out, errOut)
	}
	if !strings.Contains(errOut, "at least one input pattern is required") {
		t.Errorf("error not printed: %q", errOut)
	}
}

func TestRoot_UnreadableInputIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "gone.bin")
	if err := os.Symlink(filepath.Join(dir, "missing"), bad); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, errOut, err := execute(t, "-i", filepath.Join(dir, "*.bin"), "-o", filepath.Join(dir, "all.c"))
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(errOut, "cannot convert "+bad) {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version.Version {
		t.Errorf("version --short = %q, want %q", out, version.Version)
	}

	out, _, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, version.Name+" "+version.Version+" ") {
		t.Errorf("version = %q", out)
	}
}
