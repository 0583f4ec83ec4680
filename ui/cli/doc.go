// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface of choose using Cobra.
// It loads configuration, renders the prompt and maps the resolved choice to
// the process exit status. Key handling is delegated to the `choice` and
// `terminal` packages; CLI code stays thin.
package cli
