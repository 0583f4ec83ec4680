// Copyright (c) 2026 Choose Team
// choose - single-keystroke choice prompt for shell scripts
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config layers defaults, config files, CHOOSE_* environment
// variables and command-line flags into a single Config, and converts it into
// the options of a choice prompt.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/toeirei/choose/internal/choice"
	"github.com/toeirei/choose/internal/logging"
)

const (
	// DefaultChoices is used when no choices are configured.
	DefaultChoices = "YN"
	// MaxTimeout is the largest accepted timeout in seconds. Values outside
	// 0..MaxTimeout disable the timeout.
	MaxTimeout = 9999
)

// Config is the complete user-facing configuration of a prompt.
type Config struct {
	Choices       string `mapstructure:"choices" yaml:"choices"`
	Default       string `mapstructure:"default" yaml:"default,omitempty"`
	Timeout       int    `mapstructure:"timeout" yaml:"timeout"`
	CaseSensitive bool   `mapstructure:"case_sensitive" yaml:"case_sensitive"`
	HideChoices   bool   `mapstructure:"hide_choices" yaml:"hide_choices"`
	Message       string `mapstructure:"message" yaml:"message,omitempty"`
	Language      string `mapstructure:"language" yaml:"language"`
	Quiet         bool   `mapstructure:"quiet" yaml:"quiet"`
	Verbose       bool   `mapstructure:"verbose" yaml:"verbose"`
}

// Defaults returns the built-in value of every key. Each key must be listed
// here for CHOOSE_* environment variables to be picked up.
func Defaults() map[string]any {
	return map[string]any{
		"choices":        DefaultChoices,
		"default":        "",
		"timeout":        -1,
		"case_sensitive": false,
		"hide_choices":   false,
		"message":        "",
		"language":       "en",
		"quiet":          false,
		"verbose":        false,
	}
}

// flagKeys maps flag names whose config key differs from the flag name
// with dashes turned into underscores.
var flagKeys = map[string]string{
	"lang": "language",
}

func flagKey(name string) string {
	if k, ok := flagKeys[name]; ok {
		return k
	}
	return strings.ReplaceAll(name, "-", "_")
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "choose")
		default:
			configDir = "/etc/choose"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "choose")
	}

	return filepath.Join(configDir, "choose.yaml"), nil
}

// LoadConfig reads the configuration in increasing order of precedence:
// defaults, the config file, CHOOSE_* environment variables and flags that
// were set on cmd. A missing config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("choose")
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	} else {
		logging.Debugf("using config file %s", v.ConfigFileUsed())
	}

	v.SetEnvPrefix("choose")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr == nil {
			bindErr = v.BindPFlag(flagKey(f.Name), f)
		}
	})
	if bindErr != nil {
		return c, bindErr
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile stores c as YAML in the user or system config file.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

// Options converts c into prompt options. Validation is left to the caller.
func (c Config) Options() choice.Options {
	o := choice.Options{
		Choices:       c.Choices,
		Timeout:       choice.NoTimeout,
		CaseSensitive: c.CaseSensitive,
		HideChoices:   c.HideChoices,
		Message:       c.Message,
	}
	if o.Choices == "" {
		o.Choices = DefaultChoices
	}
	if c.Default != "" {
		o.Default = c.Default[0]
	}
	switch {
	case c.Timeout >= 0 && c.Timeout <= MaxTimeout:
		o.Timeout = time.Duration(c.Timeout) * time.Second
	case c.Timeout != -1:
		logging.Warnf("timeout %d outside 0..%d, waiting without timeout", c.Timeout, MaxTimeout)
	}
	return o
}
