// Package version provides build information for student-roster.
package version

import "runtime"

// Name is the program name used in output and the HTTP User-Agent.
const Name = "student-roster"

// Version is the release version. It can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. It can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent returns the User-Agent sent to the students API.
func UserAgent() string {
	return Name + "/" + String() + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}

// Info is the machine readable build description.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"goVersion"`
}

// Current returns the running build's Info.
func Current() Info {
	return Info{Name: Name, Version: Version, Commit: Commit, GoVersion: runtime.Version()}
}
