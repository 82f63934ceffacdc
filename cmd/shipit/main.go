// Package main provides the CLI entry point for shipit.
package main

import (
	"os"
	"runtime/debug"

	"shipit/internal/cli"
	"shipit/internal/cmd"
	"shipit/internal/exitcode"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	fillVersionFromBuildInfo()
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		cli.Errorf("%v", err)
		os.Exit(exitcode.From(err))
	}
}

func fillVersionFromBuildInfo() {
	if version != "dev" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	commit, date = versionFromSettings(info.Settings)
}

// versionFromSettings derives a short commit id and build date from the
// embedded VCS settings, falling back to "unknown" for anything absent.
func versionFromSettings(settings []debug.BuildSetting) (string, string) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	commit := "unknown"
	if rev := vcs["vcs.revision"]; len(rev) >= 7 {
		commit = rev[:7]
		if vcs["vcs.modified"] == "true" {
			commit += "-dirty"
		}
	}

	date := vcs["vcs.time"]
	if date == "" {
		date = "unknown"
	}
	return commit, date
}
