package version

import (
	"fmt"
	"runtime"
)

// Set at build time with
//
//	-ldflags "-X github.com/MrSnakeDoc/homedeck/internal/version.Version=v0.1.0 ..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// String describes the running build on one line.
func String() string {
	return fmt.Sprintf("homedeck %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
