// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvnenv/mvnenv/internal/configsource"
	"github.com/mvnenv/mvnenv/internal/issue"
	"github.com/mvnenv/mvnenv/internal/logging"
	"github.com/mvnenv/mvnenv/internal/repofromenv"
	"github.com/mvnenv/mvnenv/internal/settings"
	"github.com/mvnenv/mvnenv/internal/watch"
)

// errWatchNeedsOutput is returned for --watch without a file to write.
var errWatchNeedsOutput = errors.New("--watch requires --output (or output_file in the config) naming a file")

// stdoutPath selects stdout as the --output target.
const stdoutPath = "-"

func newApplyCommand(app *App, opts *globalOptions) *cobra.Command {
	var (
		output      string
		watchInputs bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Add discovered repositories to settings.xml",
		Long: `Discover repositories and merge them into a copy of settings.xml.

The copy gains a profile holding every discovered repository as both a
repository and a plugin repository, a server entry per credential, and
mirrors that no longer intercept the discovered repositories.

The source settings.xml is never modified unless --output points at it.`,
		Example: `  mvnenv apply
  mvnenv apply --output .mvn/settings.xml
  mvnenv apply --env-file .env -D MVN_SETTINGS_ENV_REPOS_FIRST=true
  mvnenv apply --output .mvn/settings.xml --env-file .env --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runApply(cmd.Context(), app, opts, output); err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			if !watchInputs {
				return nil
			}
			if err := watchApply(cmd.Context(), app, opts, output); err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the settings to this file ('-' for stdout, default from config)")
	cmd.Flags().BoolVarP(&watchInputs, "watch", "w", false, "regenerate the settings whenever an input file changes")

	return cmd
}

func runApply(ctx context.Context, app *App, opts *globalOptions, output string) error {
	inv, err := app.prepare(ctx, opts)
	if err != nil {
		return err
	}

	repos, err := (&repofromenv.Discoverer{FS: app.FS, Logger: inv.log}).Collect(inv.src, inv.projectRoot)
	if err != nil {
		return err
	}

	current, settingsPath, err := loadSettings(app, inv, opts)
	if err != nil {
		return err
	}
	inv.log.Detail("Settings before applying " + settingsPath + ":\n" + settings.Summary(current))

	updated := settings.Apply(current, repos, settings.ApplyOptions{
		ProfileID:              inv.cfg.ProfileID,
		EnvReposFirst:          inv.flags.EnvReposFirst,
		DisableBypassMirrors:   inv.flags.DisableBypassMirrors,
		AddDefaultRepositories: inv.flags.AddDefaultRepositories,
		DefaultRepositories:    inv.cfg.Repositories(),
		Logger:                 inv.log,
	})
	if len(repos) > 0 {
		inv.log.Detail("Settings after applying:\n" + settings.Summary(updated))
	} else {
		inv.log.Info("No repositories found in the environment")
	}

	if output == "" {
		output = inv.cfg.OutputFile
	}
	if output == "" || output == stdoutPath {
		data, err := settings.Encode(updated)
		if err != nil {
			return err
		}
		_, err = app.stdout.Write(data)
		return err
	}

	if err := settings.Write(app.FS, output, updated); err != nil {
		return issue.NewErrorContext().
			WithOperation("write settings").
			WithResource(output).
			WithSuggestion("Check that the target directory is writable").
			WithSuggestion("Use '--output -' to print the settings instead").
			WithIssue(issue.SettingsWriteFailedId).
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(app.stdout, "%s Wrote %d repositories to %s\n", SuccessStyle.Render("✓"), len(repos), output)
	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("Run Maven with:"), CmdStyle.Render("mvn -s "+output))
	return nil
}

// loadSettings reads the settings file named by --settings or the config,
// returning the parsed document and the path it came from.
func loadSettings(app *App, inv *invocation, opts *globalOptions) (*settings.Settings, string, error) {
	cfg := *inv.cfg
	if opts.settingsFile != "" {
		cfg.SettingsFile = opts.settingsFile
	}
	path, err := cfg.SettingsPath()
	if err != nil {
		return nil, "", err
	}

	s, err := settings.Load(app.FS, path)
	if err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("read settings").
			WithResource(path).
			WithSuggestion("Check that the file is well-formed XML with a <settings> root element").
			WithSuggestion("Point --settings at another file").
			WithIssue(issue.SettingsParseFailedId).
			Wrap(err).
			BuildError()
	}
	return s, path, nil
}

// watchApply re-runs apply whenever one of its input files changes: the
// --env-file and --properties files, .mvn/maven.config, .mvn/repository and
// the source settings.xml. The output file itself is never watched.
func watchApply(ctx context.Context, app *App, opts *globalOptions, output string) error {
	inv, err := app.prepare(ctx, opts)
	if err != nil {
		return err
	}
	if output == "" {
		output = inv.cfg.OutputFile
	}
	if output == "" || output == stdoutPath {
		return errWatchNeedsOutput
	}

	files, err := watchedFiles(inv, opts, output)
	if err != nil {
		return err
	}

	log := logging.New(app.stderr, opts.verbose)
	w, err := watch.New(watch.Config{
		Files:  files,
		Logger: log,
		OnChange: func(ctx context.Context, changed []string) error {
			log.Info("Inputs changed, regenerating "+output, "files", changed)
			if err := runApply(ctx, app, opts, output); err != nil {
				renderServiceError(app.stderr, classifyError(err, opts.verbose))
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	log.Info("Watching for changes (Ctrl+C to stop)", "files", w.Files())
	return w.Run(ctx)
}

func watchedFiles(inv *invocation, opts *globalOptions, output string) ([]string, error) {
	cfg := *inv.cfg
	if opts.settingsFile != "" {
		cfg.SettingsFile = opts.settingsFile
	}
	settingsPath, err := cfg.SettingsPath()
	if err != nil {
		return nil, err
	}

	candidates := []string{
		settingsPath,
		filepath.Join(inv.projectRoot, configsource.MavenConfigPath),
		filepath.Join(inv.projectRoot, repofromenv.ImplicitRepoPath),
	}
	for _, f := range append(append([]string{}, opts.envFiles...), opts.propertyFiles...) {
		candidates = append(candidates, strings.TrimSuffix(f, "?"))
	}

	outAbs, err := filepath.Abs(output)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(candidates))
	for _, f := range candidates {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		if abs != outAbs {
			files = append(files, abs)
		}
	}
	return files, nil
}
