package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/choose/internal/choice"
	cfg "github.com/toeirei/choose/internal/config"
)

// isolate points the user config dir at a temp dir and runs the test from
// another temp dir so no real choose.yaml is picked up.
func isolate(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "choose"}
	cmd.Flags().StringP("choices", "c", "", "")
	cmd.Flags().IntP("timeout", "t", -1, "")
	cmd.Flags().BoolP("case-sensitive", "s", false, "")
	cmd.Flags().String("lang", "en", "")
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	got, err := cfg.LoadConfig[cfg.Config](newFlagCmd(), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Choices != "YN" || got.Timeout != -1 || got.Language != "en" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := "choices: abc\ndefault: b\ntimeout: 3\ncase_sensitive: true\nlanguage: de\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](newFlagCmd(), cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Choices != "abc" || got.Default != "b" || got.Timeout != 3 || !got.CaseSensitive {
		t.Fatalf("file values not applied: %+v", got)
	}
	if got.Language != "de" {
		t.Fatalf("expected de, got %q", got.Language)
	}
}

func TestLoadConfig_UserConfigDir(t *testing.T) {
	isolate(t)
	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("choices: XYZ\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := cfg.LoadConfig[cfg.Config](newFlagCmd(), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Choices != "XYZ" {
		t.Fatalf("expected choices from user config, got %q", got.Choices)
	}
}

func TestLoadConfig_MalformedFileIsAnError(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(file, []byte("choices: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cfg.LoadConfig[cfg.Config](newFlagCmd(), cfg.Defaults(), &file); err == nil {
		t.Fatalf("expected parse error for malformed file")
	}
}

func TestLoadConfig_EnvOverridesFileAndFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(file, []byte("choices: abc\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CHOOSE_CHOICES", "def")
	t.Setenv("CHOOSE_CASE_SENSITIVE", "true")
	t.Setenv("CHOOSE_LANGUAGE", "de")

	cmd := newFlagCmd()
	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Choices != "def" || !got.CaseSensitive || got.Language != "de" {
		t.Fatalf("env not applied: %+v", got)
	}

	cmd = newFlagCmd()
	if err := cmd.Flags().Parse([]string{"-c", "ghi", "--lang", "en"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	got, err = cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Choices != "ghi" || got.Language != "en" {
		t.Fatalf("flags should win over env: %+v", got)
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	isolate(t)

	c := cfg.Config{Choices: "YNC", Default: "C", Timeout: 10, Language: "en"}
	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	want, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if path != want {
		t.Fatalf("written to %s, expected %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "choices: YNC") || !strings.Contains(string(data), "timeout: 10") {
		t.Fatalf("unexpected file contents:\n%s", data)
	}

	got, err := cfg.LoadConfig[cfg.Config](newFlagCmd(), cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Choices != "YNC" || got.Default != "C" || got.Timeout != 10 {
		t.Fatalf("written config does not round trip: %+v", got)
	}
}

func TestOptions_Conversion(t *testing.T) {
	o := cfg.Config{Choices: "ync", Default: "yes", Timeout: 10, CaseSensitive: true, Message: "Go? "}.Options()
	if o.Choices != "ync" || o.Default != 'y' || o.Timeout != 10*time.Second || !o.CaseSensitive || o.Message != "Go? " {
		t.Fatalf("unexpected options: %+v", o)
	}
}

func TestOptions_TimeoutRange(t *testing.T) {
	cases := map[int]time.Duration{
		-1:    choice.NoTimeout,
		-5:    choice.NoTimeout,
		0:     0,
		9999:  9999 * time.Second,
		10000: choice.NoTimeout,
	}
	for in, want := range cases {
		if got := (cfg.Config{Choices: "YN", Timeout: in}).Options().Timeout; got != want {
			t.Fatalf("timeout %d: got %v, want %v", in, got, want)
		}
	}
}

func TestOptions_EmptyChoicesFallBack(t *testing.T) {
	o := cfg.Config{Timeout: -1}.Options()
	if o.Choices != cfg.DefaultChoices {
		t.Fatalf("expected %q, got %q", cfg.DefaultChoices, o.Choices)
	}
	if o.HasDefault() || o.HasTimeout() {
		t.Fatalf("unexpected default or timeout: %+v", o)
	}
}
