// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface of choose using the Cobra
// library. It defines the root command, which shows the prompt and waits for
// a key, the config subcommands and the mapping of outcomes to exit codes.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/choose/internal/choice"
	"github.com/toeirei/choose/internal/config"
	"github.com/toeirei/choose/internal/i18n"
	"github.com/toeirei/choose/internal/logging"
	"github.com/toeirei/choose/internal/terminal"
)

// keySession is the part of a terminal session the prompt needs.
type keySession interface {
	choice.KeyReader
	Open() error
	Close() error
}

// configError marks failures loading the configuration.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// app carries the streams and the exit status of one invocation.
type app struct {
	stdin      *os.File
	stdout     io.Writer
	stderr     io.Writer
	newSession func(*os.File) keySession
	code       int
}

func newApp(stdin *os.File, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		newSession: func(f *os.File) keySession {
			return terminal.New(f)
		},
	}
}

// Execute runs the CLI and returns the process exit status: 0 when only help
// or version output was requested, 1..N for the selected choice and 255 on
// any error.
func Execute() int {
	return newApp(os.Stdin, os.Stdout, os.Stderr).run(os.Args[1:])
}

func (a *app) run(args []string) int {
	a.code = 0
	logging.SetOutput(a.stderr)

	root := a.newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logging.Debugf("command failed: %v", err)
		fmt.Fprintln(a.stderr, describeError(err))
		return choice.ErrorIndex
	}
	return a.code
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "choose [-c choices] [-n] [-s] [-t timeout -d choice] [-m text]",
		Short:         i18n.T("choose.short"),
		Long:          i18n.T("choose.long"),
		Args:          cobra.NoArgs,
		Version:       compositeVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runPrompt,
	}
	// Help and version go to stderr; stdout stays free for the caller.
	cmd.SetOut(a.stderr)
	cmd.SetErr(a.stderr)

	pf := cmd.PersistentFlags()
	pf.StringP("choices", "c", config.DefaultChoices, "list of choices; the first one returns 1, the second 2, and so on")
	pf.BoolP("hide-choices", "n", false, "hide the list of choices in the prompt")
	pf.BoolP("case-sensitive", "s", false, "match choices case-sensitively")
	pf.IntP("timeout", "t", -1, "seconds (0..9999) to wait before the default choice is taken")
	pf.StringP("default", "d", "", "choice taken when the timeout expires; requires -t")
	pf.StringP("message", "m", "", "message displayed before the prompt")
	pf.BoolP("quiet", "q", false, "do not sound the bell on invalid keys")
	pf.String("config", "", "config file (default is $XDG_CONFIG_HOME/choose/choose.yaml)")
	pf.String("lang", "en", `message language ("en", "de")`)
	pf.Bool("verbose", false, "log diagnostics to stderr")

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		a.localize(c)
		defaultHelp(c, args)
	})

	cmd.AddCommand(a.newConfigCmd())
	return cmd
}

// localize switches to the configured language before help is rendered,
// since help short-circuits RunE.
func (a *app) localize(c *cobra.Command) {
	if _, err := a.loadConfig(c); err != nil {
		logging.Debugf("help: %v", err)
	}
	c.Root().Short = i18n.T("choose.short")
	c.Root().Long = i18n.T("choose.long")
	for _, sub := range c.Root().Commands() {
		if sub.Name() == "config" {
			describeConfigCmd(sub)
		}
	}
}

// loadConfig resolves the layered configuration for cmd and applies its
// language and verbosity.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return config.Config{}, &configError{err}
	}
	c, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return c, &configError{err}
	}
	i18n.SetLang(c.Language)
	logging.SetVerbose(c.Verbose)
	return c, nil
}

// getConfigPathFromCli returns the --config path when the flag was set.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid silently running on defaults.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

func (a *app) runPrompt(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if err := opts.Validate(); err != nil {
		return err
	}

	// A zero timeout takes the default without reading a key, so it also
	// works when stdin is not a terminal.
	session := a.newSession(a.stdin)
	if !opts.HasTimeout() || opts.Timeout > 0 {
		if err := session.Open(); err != nil {
			return err
		}
		defer func() {
			if err := session.Close(); err != nil {
				logging.Warnf("%v", err)
			}
		}()
		if ts, ok := session.(*terminal.Session); ok {
			stop := terminal.InstallSignalHandler(ts, choice.ErrorIndex)
			defer stop()
		}
	}

	pr := newPromptRenderer(a.stderr)
	fmt.Fprint(a.stderr, pr.Render(opts))

	var popts []choice.Option
	if !cfg.Quiet {
		popts = append(popts, choice.WithAlert(a.stderr))
	}
	idx, err := choice.New(opts, session, popts...).Resolve()
	if err != nil {
		if pr.Shown(opts) {
			fmt.Fprintln(a.stderr)
		}
		return err
	}

	fmt.Fprint(a.stderr, pr.Clear(opts))
	logging.Debugf("resolved choice %d", idx)
	a.code = idx
	return nil
}

// describeError turns err into a translated, user-facing message.
func describeError(err error) string {
	var ve *choice.ValidationError
	var ce *configError
	switch {
	case errors.As(err, &ve):
		return validationMessage(ve)
	case errors.As(err, &ce):
		return i18n.T("choose.error_config", ce.err)
	case errors.Is(err, terminal.ErrNotATerminal):
		return i18n.T("choose.error_not_a_terminal")
	case errors.Is(err, terminal.ErrDevice):
		return i18n.T("choose.error_device", err)
	}
	return i18n.T("choose.error_generic", err)
}

func validationMessage(ve *choice.ValidationError) string {
	switch {
	case errors.Is(ve, choice.ErrNoChoices):
		return i18n.T("choose.error_no_choices")
	case errors.Is(ve, choice.ErrInvalidChoice):
		return i18n.T("choose.error_invalid_choice", ve.Value)
	case errors.Is(ve, choice.ErrDuplicateChoice):
		return i18n.T("choose.error_duplicate_choice", ve.Value, ve.Choices)
	case errors.Is(ve, choice.ErrInvalidDefault):
		return i18n.T("choose.error_invalid_default", ve.Value)
	case errors.Is(ve, choice.ErrDefaultNotInChoices):
		return i18n.T("choose.error_default_not_in_choices", ve.Choices, ve.Value)
	case errors.Is(ve, choice.ErrTimeoutNeedsDefault):
		return i18n.T("choose.error_timeout_needs_default")
	}
	return ve.Error()
}
