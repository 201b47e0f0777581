// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mvnenv/mvnenv/internal/config"
	"github.com/mvnenv/mvnenv/internal/testutil"
	"github.com/mvnenv/mvnenv/pkg/types"
)

const (
	testWorkDir      = "/work/project"
	testSettingsPath = "/home/dev/.m2/settings.xml"
)

type (
	// cliResult captures the outcome of one CLI invocation.
	cliResult struct {
		stdout string
		stderr string
		err    error
	}

	// staticConfig is a ConfigProvider returning a fixed config or error.
	staticConfig struct {
		cfg *config.Config
		err error
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

func newTestFS(t *testing.T) vfs.FileSystem {
	t.Helper()
	fs := memoryfs.New()
	testutil.MkdirAll(t, fs, testWorkDir)
	return fs
}

func writeFile(t *testing.T, fs vfs.FileSystem, path, content string) {
	t.Helper()
	testutil.WriteFile(t, fs, path, content)
}

// runCLI executes the command tree with the given filesystem and environment
// and a default configuration.
func runCLI(t *testing.T, fs vfs.FileSystem, environ []string, args ...string) cliResult {
	t.Helper()
	return runCLIWithConfig(t, staticConfig{cfg: config.DefaultConfig()}, fs, environ, args...)
}

func runCLIWithConfig(t *testing.T, provider ConfigProvider, fs vfs.FileSystem, environ []string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:    provider,
		FS:        fs,
		Environ:   func() []string { return environ },
		Getwd:     func() (string, error) { return testWorkDir, nil },
		ConfigDir: types.FilesystemPath(t.TempDir()),
		Stdout:    &stdout,
		Stderr:    &stderr,
	})

	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
