package schemagen

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags by release builds.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the VCS revision the binary was built from. Without
// ldflags it falls back to the revision recorded by the Go toolchain,
// shortened to 7 characters, or "unknown".
func Commit() string {
	if commit != "unknown" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return commit
}

// BuildTime returns the RFC 3339 build timestamp, or "unknown".
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go version the binary was built with.
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns all build metadata, one item per line.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
