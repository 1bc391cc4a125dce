// Package version provides the build information of the binary.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using -ldflags "-X ...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the build information as a single line.
func String() string {
	return fmt.Sprintf("version: %s  commit: %s  built: %s  go: %s", Version, Commit, BuildTime, runtime.Version())
}
