// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mvnenv/mvnenv/internal/issue"
	"github.com/mvnenv/mvnenv/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "mvnenv"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variables overriding config values.
	EnvPrefix = "MVNENV"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the mvnenv configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FilePath returns the config file path inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// ResolvePath returns the config file that Load would read and whether it
// exists. An explicit ConfigFilePath is returned even when missing.
func ResolvePath(opts LoadOptions) (path string, exists bool, err error) {
	if opts.ConfigFilePath != "" {
		path = string(opts.ConfigFilePath)
		return path, fileExists(path), nil
	}

	cfgDir, err := configDirWithOverride(string(opts.ConfigDirPath))
	if err != nil {
		return "", false, err
	}
	path = FilePath(cfgDir)
	return path, fileExists(path), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the resolved file path, empty when only
// defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := newViper()

	path, exists, err := ResolvePath(opts)
	if err != nil {
		return nil, "", err
	}

	resolvedPath := ""
	switch {
	case exists:
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'mvnenv config --help' for configuration options").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
		resolvedPath = path
	case opts.ConfigFilePath != "":
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'mvnenv config show' to see the default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	}
	// No config file: defaults and environment only.

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Ensure profile_id is set and every default repository has a unique id").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// newViper returns a Viper instance holding the defaults and reading
// MVNENV_* environment overrides.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("settings_file", defaults.SettingsFile)
	v.SetDefault("output_file", defaults.OutputFile)
	v.SetDefault("profile_id", defaults.ProfileID)
	v.SetDefault("defaults.verbose", defaults.Defaults.Verbose)
	v.SetDefault("defaults.env_repos_first", defaults.Defaults.EnvReposFirst)
	v.SetDefault("defaults.disable_bypass_mirrors", defaults.Defaults.DisableBypassMirrors)
	v.SetDefault("defaults.add_default_repositories", defaults.Defaults.AddDefaultRepositories)

	repos := make([]map[string]any, 0, len(defaults.DefaultRepositories))
	for _, r := range defaults.DefaultRepositories {
		repos = append(repos, map[string]any{"id": r.ID, "url": r.URL})
	}
	v.SetDefault("default_repositories", repos)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper. Fields are optional, so partial files keep the
// defaults for everything they omit.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, "#Config", data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration into dir (the config
// directory when empty). An existing file is kept unless force is set.
// created reports whether the file was written.
func CreateDefaultConfig(dir string, force bool) (path string, created bool, err error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", false, err
	}
	path = FilePath(cfgDir)

	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, false, nil
		}
	}

	if err := Save(DefaultConfig(), cfgDir); err != nil {
		return path, false, err
	}
	return path, true, nil
}

// Save writes cfg as CUE into dir (the config directory when empty).
func Save(cfg *Config, dir string) error {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return err
	}
	return WriteFile(cfg, FilePath(cfgDir))
}

// WriteFile writes cfg as CUE to path, creating its directory.
func WriteFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// mvnenv configuration file\n")
	sb.WriteString("// Values here are defaults; MVN_* keys in the environment or -D flags win.\n\n")

	if cfg.SettingsFile != "" {
		fmt.Fprintf(&sb, "settings_file: %q\n", cfg.SettingsFile)
	}
	if cfg.OutputFile != "" {
		fmt.Fprintf(&sb, "output_file: %q\n", cfg.OutputFile)
	}
	fmt.Fprintf(&sb, "profile_id: %q\n", cfg.ProfileID)

	sb.WriteString("\ndefaults: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.Defaults.Verbose)
	fmt.Fprintf(&sb, "\tenv_repos_first: %v\n", cfg.Defaults.EnvReposFirst)
	fmt.Fprintf(&sb, "\tdisable_bypass_mirrors: %v\n", cfg.Defaults.DisableBypassMirrors)
	fmt.Fprintf(&sb, "\tadd_default_repositories: %v\n", cfg.Defaults.AddDefaultRepositories)
	sb.WriteString("}\n")

	sb.WriteString("\ndefault_repositories: [\n")
	for _, r := range cfg.DefaultRepositories {
		fmt.Fprintf(&sb, "\t{id: %q, url: %q},\n", r.ID, r.URL)
	}
	sb.WriteString("]\n")

	return sb.String()
}
