// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars holds the release metadata stamped into the binary by the
// linker, for example:
//
//	go build -ldflags "-X github.com/toeirei/choose/buildvars.Version=v1.0.0 \
//	  -X github.com/toeirei/choose/buildvars.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/toeirei/choose/buildvars.Date=$(date -u +%FT%TZ)"
//
// All three are empty in development builds.
package buildvars

var (
	Version string
	Commit  string
	Date    string // RFC3339
)

// VersionOrDefault returns Version, or def when it was not stamped.
func VersionOrDefault(def string) string { return orDefault(Version, def) }

// CommitOrDefault returns Commit, or def when it was not stamped.
func CommitOrDefault(def string) string { return orDefault(Commit, def) }

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
