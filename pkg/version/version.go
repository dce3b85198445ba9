// Package version carries the build stamp of bin2carray.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is the program name used when argv[0] is unavailable.
const Name = "bin2carray"

// Set with -ldflags "-X bin2carray/pkg/version.Version=1.2.3 ...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is a snapshot of the build stamp and the runtime it runs on.
type Info struct {
	Name      string
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
	OS        string
	Arch      string
}

func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String renders "bin2carray 1.2.3 (abcdefg, 2026-10-19) go1.23.1 linux/amd64".
// The parenthesised part lists only the stamps that were set.
func (i Info) String() string {
	var stamps []string
	for _, s := range []string{i.Commit, i.BuildTime} {
		if s != "" {
			stamps = append(stamps, s)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", i.Name, i.Version)
	if len(stamps) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(stamps, ", "))
	}
	fmt.Fprintf(&b, " %s %s/%s", i.GoVersion, i.OS, i.Arch)
	return b.String()
}
