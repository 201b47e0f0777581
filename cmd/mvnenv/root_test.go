// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/mvnenv/mvnenv/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got := getVersionString(); got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{}))
	for _, name := range []string{"apply", "discover", "summary", "keys", "config"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered: %v", name, err)
		}
	}

	for _, flag := range []string{"define", "env-file", "properties", "project-root", "settings", "config", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
	if f := root.PersistentFlags().ShorthandLookup("D"); f == nil || f.Name != "define" {
		t.Error("-D should be the shorthand of --define")
	}
}

func TestRootCommand_Help(t *testing.T) {
	t.Parallel()

	res := runCLI(t, newTestFS(t), nil)
	if res.err != nil {
		t.Fatalf("root command failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "MVN_SETTINGS_REPO") {
		t.Errorf("help should mention the repository keys, got:\n%s", res.stdout)
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{Code: types.ExitConfigError, Err: cause}
	if err.Error() != "boom" || !errors.Is(err, cause) {
		t.Errorf("ExitError = %v", err)
	}

	bare := &ExitError{Code: types.ExitFailure}
	if bare.Error() != "exit status 1" {
		t.Errorf("bare ExitError = %q", bare.Error())
	}
}
