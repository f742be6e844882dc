// Package buildinfo provides build metadata for mdsum binaries.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release version, injected with -ldflags at build time.
	Version string
	// Commit is the source revision, injected at build time.
	Commit string
	// Date is the build timestamp, injected at build time.
	Date string
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info contains normalized build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
	Go      string
	OS      string
	Arch    string
}

// Get returns build metadata. Values missing from ldflags fall back to the
// VCS stamp embedded by the go tool, then to placeholders.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// String formats build metadata for CLI output.
func (i Info) String() string {
	return fmt.Sprintf("mdsum %s\ncommit: %s\nbuilt:  %s\ngo:     %s\nos/arch:%s/%s", i.Version, i.Commit, i.Date, i.Go, i.OS, i.Arch)
}
