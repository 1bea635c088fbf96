// Package version reports build information for blue
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info holds version information for a build
type Info struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	BuildDate     string `json:"build_date"`
	GoVersion     string `json:"go_version"`
	Platform      string `json:"platform"`
	SchemaVersion int    `json:"settings_schema_version"`
}

// Get returns the running binary's build information. Values not injected
// at link time fall back to the module build info when available.
func Get(schemaVersion int) Info {
	info := Info{
		Version:       Version,
		Commit:        Commit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		SchemaVersion: schemaVersion,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// Short returns a one-line summary.
func (v Info) Short() string {
	commit := v.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("blue %s (%s)", v.Version, commit)
}
