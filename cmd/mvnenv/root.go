// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mvnenv/mvnenv/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the mvnenv command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "mvnenv",
		Short: "Maven repositories from the environment",
		Long: TitleStyle.Render("mvnenv") + SubtitleStyle.Render(" - Maven repositories from the environment") + `

mvnenv turns MVN_SETTINGS_REPO_* keys from the environment, dotenv files,
properties files and -D defines into repositories, mirrors and servers of
a Maven settings.xml.

` + SubtitleStyle.Render("Quick Start:") + `
  1. export MVN_SETTINGS_REPO_URL=https://repo.example.com/maven2
  2. mvnenv apply --output .mvn/settings.xml
  3. mvn -s .mvn/settings.xml verify

` + SubtitleStyle.Render("Examples:") + `
  mvnenv discover                     List the repositories found
  mvnenv discover --format yaml       Same, as YAML
  mvnenv apply -D MVN_SETTINGS_REPO_URL=https://r.example.com
  mvnenv keys                         Show every recognized key
  mvnenv config show                  Show current configuration`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringArrayVarP(&opts.defines, "define", "D", nil, "define a key as KEY=VALUE (highest precedence, repeatable)")
	pf.StringArrayVar(&opts.envFiles, "env-file", nil, "read keys from a dotenv file (lowest precedence, repeatable, suffix '?' for optional)")
	pf.StringArrayVar(&opts.propertyFiles, "properties", nil, "read keys from a .properties file (repeatable, suffix '?' for optional)")
	pf.StringVar(&opts.projectRoot, "project-root", "", "project root directory (default: nearest ancestor containing .mvn)")
	pf.StringVar(&opts.settingsFile, "settings", "", "settings.xml to extend (default from config, else ~/.m2/settings.xml)")
	pf.StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mvnenv/config.cue)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(newApplyCommand(app, opts))
	rootCmd.AddCommand(newDiscoverCommand(app, opts))
	rootCmd.AddCommand(newSummaryCommand(app, opts))
	rootCmd.AddCommand(newKeysCommand(app))
	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// Execute builds the command tree with production dependencies and runs it.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// handleError prints errors fang receives, except *ExitError values whose
// message was already rendered by the failing command.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
