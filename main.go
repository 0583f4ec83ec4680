// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for choose.
//
// Usage:
//
//	choose [-c choices] [-n] [-s] [-t timeout -d choice] [-m text]
//
// The exit status is the 1-based index of the selected choice, 0 after help
// and 255 on error, so shell scripts can branch on $?. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/choose/ui/cli"
)

// main is the entrypoint for the choose CLI.
func main() {
	os.Exit(cli.Execute())
}
