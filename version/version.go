// Package version reports build information for oasnote.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String formats the build information on one line, for example
// "v0.1.0 (revision abc123, go1.25.0 linux/amd64, built 2026-01-02)".
// An unset [Version] is reported as "dev".
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}

	s := fmt.Sprintf("%s (revision %s, %s %s/%s", v, Revision, GoVersion, GoOS, GoArch)
	if BuildDate != "" {
		s += ", built " + BuildDate
	}

	return s + ")"
}

func getRevision() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	return revisionFrom(buildInfo.Settings)
}

func revisionFrom(settings []debug.BuildSetting) string {
	rev := "unknown"
	modified := false

	for _, v := range settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
