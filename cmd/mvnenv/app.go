// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mvnenv/mvnenv/internal/config"
	"github.com/mvnenv/mvnenv/internal/configsource"
	"github.com/mvnenv/mvnenv/internal/issue"
	"github.com/mvnenv/mvnenv/internal/logging"
	"github.com/mvnenv/mvnenv/internal/repofromenv"
	"github.com/mvnenv/mvnenv/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and reach configuration, files and the environment through it.
	App struct {
		Config  ConfigProvider
		FS      vfs.FileSystem
		Environ func() []string
		Getwd   func() (string, error)
		// ConfigDir overrides the platform config directory when set.
		ConfigDir types.FilesystemPath
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		FS        vfs.FileSystem
		Environ   func() []string
		Getwd     func() (string, error)
		ConfigDir types.FilesystemPath
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalOptions holds the persistent flags shared by all commands.
	globalOptions struct {
		defines       []string
		envFiles      []string
		propertyFiles []string
		projectRoot   string
		settingsFile  string
		configFile    string
		verbose       bool
	}

	// invocation is the state resolved once per command run: configuration,
	// the layered key lookup and the logger.
	invocation struct {
		cfg         *config.Config
		src         *configsource.Composite
		projectRoot string
		flags       repofromenv.Flags
		log         *logging.Logger
	}
)

// NewApp creates the CLI composition root, filling nil dependencies with
// production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		FS:        deps.FS,
		Environ:   deps.Environ,
		Getwd:     deps.Getwd,
		ConfigDir: deps.ConfigDir,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.FS == nil {
		app.FS = osfs.New()
	}
	if app.Environ == nil {
		app.Environ = os.Environ
	}
	if app.Getwd == nil {
		app.Getwd = os.Getwd
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadOptions returns the config load options for --config.
func (a *App) loadOptions(opts *globalOptions) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(opts.configFile),
		ConfigDirPath:  a.ConfigDir,
	}
}

// loadConfig loads the application config honoring --config.
func (a *App) loadConfig(ctx context.Context, opts *globalOptions) (*config.Config, error) {
	return a.Config.Load(ctx, a.loadOptions(opts))
}

// prepare resolves configuration, project root, key lookup and toggles for
// one command run. Invalid toggle values are reported as warnings and
// replaced by their configured defaults.
func (a *App) prepare(ctx context.Context, opts *globalOptions) (*invocation, error) {
	cfg, err := a.loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	root, err := a.resolveProjectRoot(opts.projectRoot)
	if err != nil {
		return nil, err
	}

	builder := &configsource.Builder{FS: a.FS, Environ: a.Environ}
	src, err := builder.Build(configsource.Options{
		Defines:       opts.defines,
		PropertyFiles: opts.propertyFiles,
		EnvFiles:      opts.envFiles,
		ProjectRoot:   root,
	})
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read configuration sources").
			WithSuggestion("Check the paths given to --env-file and --properties").
			WithSuggestion("Append '?' to a path to make the file optional").
			WithIssue(issue.SourceLoadFailedId).
			Wrap(err).
			BuildError()
	}

	base := logging.New(a.stderr, opts.verbose)
	flags, flagErr := repofromenv.ReadFlags(src, cfg.Flags())
	if flagErr != nil {
		base.Warn("ignoring invalid flag values", "err", flagErr)
	}

	return &invocation{
		cfg:         cfg,
		src:         src,
		projectRoot: root,
		flags:       flags,
		log:         base.WithVerbose(flags.Verbose),
	}, nil
}

// resolveProjectRoot returns the explicit root when given, otherwise the
// nearest ancestor of the working directory holding a .mvn directory, falling
// back to the working directory itself.
func (a *App) resolveProjectRoot(explicit string) (string, error) {
	if explicit != "" {
		ok, err := vfs.DirExists(a.FS, explicit)
		if err != nil || !ok {
			if err == nil {
				err = fmt.Errorf("not a directory: %s", explicit)
			}
			return "", issue.NewErrorContext().
				WithOperation("resolve project root").
				WithResource(explicit).
				WithSuggestion("Pass an existing directory to --project-root").
				WithIssue(issue.ProjectRootNotFoundId).
				Wrap(err).
				BuildError()
		}
		return explicit, nil
	}

	wd, err := a.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return findProjectRoot(a.FS, wd), nil
}

// findProjectRoot walks up from start looking for a directory that contains
// .mvn, like the mvn launcher does for maven.multiModuleProjectDirectory.
func findProjectRoot(fs vfs.FileSystem, start string) string {
	dir := start
	for {
		if ok, err := vfs.DirExists(fs, vfs.Join(fs, dir, ".mvn")); err == nil && ok {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
