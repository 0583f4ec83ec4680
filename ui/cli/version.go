// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"runtime/debug"

	"github.com/toeirei/choose/buildvars"
)

const modulePath = "github.com/toeirei/choose"

// Stamped values win; build info fills in whatever is missing.
var (
	version   = buildvars.VersionOrDefault("dev")
	gitCommit = buildvars.CommitOrDefault("dev")
	buildDate = buildvars.Date
)

// compositeVersion renders version, commit and build date on one line.
func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != v {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info == nil {
		return resolvedVersion, resolvedCommit, resolvedDate
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		resolvedVersion = info.Main.Version
	}
	if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
		for _, dep := range info.Deps {
			if dep.Path == modulePath && dep.Version != "" {
				resolvedVersion = dep.Version
				break
			}
		}
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if s.Value != "" {
				resolvedCommit = s.Value
			}
		case "vcs.time":
			if s.Value != "" {
				resolvedDate = s.Value
			}
		}
	}

	// Fall back to the commit when no tagged version is known.
	if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && resolvedCommit != "" && resolvedCommit != "dev" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
