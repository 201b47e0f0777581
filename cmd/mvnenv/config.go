// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/mvnenv/mvnenv/internal/config"
)

// configKeys lists the keys accepted by "config set".
var configKeys = []string{
	"settings_file",
	"output_file",
	"profile_id",
	"defaults.verbose",
	"defaults.env_repos_first",
	"defaults.disable_bypass_mirrors",
	"defaults.add_default_repositories",
}

// newConfigCommand creates the `mvnenv config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, opts *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mvnenv configuration",
		Long: `Manage mvnenv configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/mvnenv/config.cue (~/.config/mvnenv/config.cue)
  - macOS: ~/Library/Application Support/mvnenv/config.cue
  - Windows: %APPDATA%\mvnenv\config.cue

Every value can be overridden with an MVNENV_* environment variable,
for example MVNENV_PROFILE_ID or MVNENV_DEFAULTS_ENV_REPOS_FIRST.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfig(cmd.Context(), app, opts); err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value.\n\nValid keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setConfigValue(cmd.Context(), app, opts, args[0], args[1]); err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), opts)
			if err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *globalOptions) error {
	cfg, err := app.loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, exists, err := config.ResolvePath(app.loadOptions(opts))
	if err == nil && exists {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	settingsPath, err := cfg.SettingsPath()
	if err != nil {
		settingsPath = cfg.SettingsFile
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("settings_file"), valueStyle.Render(settingsPath))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("output_file"), valueOrPlaceholder(cfg.OutputFile, "(stdout)"))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("profile_id"), valueStyle.Render(cfg.ProfileID))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("defaults"))
	printBool(w, "verbose", cfg.Defaults.Verbose)
	printBool(w, "env_repos_first", cfg.Defaults.EnvReposFirst)
	printBool(w, "disable_bypass_mirrors", cfg.Defaults.DisableBypassMirrors)
	printBool(w, "add_default_repositories", cfg.Defaults.AddDefaultRepositories)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("default_repositories"))
	if len(cfg.DefaultRepositories) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, r := range cfg.DefaultRepositories {
		fmt.Fprintf(w, "  - %s %s\n", valueStyle.Render(r.ID), r.URL)
	}

	return nil
}

func printBool(w io.Writer, key string, v bool) {
	fmt.Fprintf(w, "  %s: %s\n", key, SuccessStyle.Render(fmt.Sprintf("%v", v)))
}

func valueOrPlaceholder(v, placeholder string) string {
	if v == "" {
		return SubtitleStyle.Render(placeholder)
	}
	return SuccessStyle.Render(v)
}

func initConfig(app *App, force bool) error {
	path, created, err := config.CreateDefaultConfig(string(app.ConfigDir), force)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App, opts *globalOptions) error {
	path, exists, err := config.ResolvePath(app.loadOptions(opts))
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	if !exists {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("(file does not exist, defaults are used)"))
	}
	return nil
}

func setConfigValue(ctx context.Context, app *App, opts *globalOptions, key, value string) error {
	cfg, err := app.loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	switch key {
	case "settings_file":
		cfg.SettingsFile = value
	case "output_file":
		cfg.OutputFile = value
	case "profile_id":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid profile_id: must be non-empty")
		}
		cfg.ProfileID = value
	case "defaults.verbose", "defaults.env_repos_first", "defaults.disable_bypass_mirrors", "defaults.add_default_repositories":
		b, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(value)))
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a boolean", key, value)
		}
		switch key {
		case "defaults.verbose":
			cfg.Defaults.Verbose = b
		case "defaults.env_repos_first":
			cfg.Defaults.EnvReposFirst = b
		case "defaults.disable_bypass_mirrors":
			cfg.Defaults.DisableBypassMirrors = b
		default:
			cfg.Defaults.AddDefaultRepositories = b
		}
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(configKeys, ", "))
	}

	path, _, err := config.ResolvePath(app.loadOptions(opts))
	if err != nil {
		return err
	}
	if err := config.WriteFile(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
