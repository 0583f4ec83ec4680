// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/toeirei/choose/internal/config"
	"github.com/toeirei/choose/internal/i18n"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "config",
		Args: cobra.NoArgs,
	}

	showCmd := &cobra.Command{
		Use:  "show",
		Args: cobra.NoArgs,
		RunE: a.runConfigShow,
	}

	writeCmd := &cobra.Command{
		Use:  "write",
		Args: cobra.NoArgs,
		RunE: a.runConfigWrite,
	}
	writeCmd.Flags().Bool("system", false, "write the system-wide config file instead of the user one")

	cmd.AddCommand(showCmd, writeCmd)
	describeConfigCmd(cmd)
	return cmd
}

// describeConfigCmd sets the translated descriptions of the config commands.
func describeConfigCmd(cmd *cobra.Command) {
	cmd.Short = i18n.T("config.short")
	for _, sub := range cmd.Commands() {
		switch sub.Name() {
		case "show":
			sub.Short = i18n.T("config.show_short")
		case "write":
			sub.Short = i18n.T("config.write_short")
		}
	}
}

// runConfigShow prints the effective configuration as YAML to stdout.
func (a *app) runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}

// runConfigWrite persists the effective configuration.
func (a *app) runConfigWrite(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	system, err := cmd.Flags().GetBool("system")
	if err != nil {
		return err
	}
	path, err := config.WriteConfigFile(&cfg, system)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stderr, i18n.T("config.written", path))
	return nil
}
