package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/aalvaropc/shelf/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return fmt.Sprintf("shelf %s (commit=%s, date=%s)", v, Commit, Date)
}
