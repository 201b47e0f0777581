// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mvnenv/mvnenv/internal/config"
	"github.com/mvnenv/mvnenv/internal/settings"
	"github.com/mvnenv/mvnenv/pkg/types"
)

const existingSettings = `<?xml version="1.0" encoding="UTF-8"?>
<settings>
  <mirrors>
    <mirror>
      <id>corp</id>
      <url>https://mirror.example.com/maven2</url>
      <mirrorOf>*</mirrorOf>
    </mirror>
  </mirrors>
  <profiles>
    <profile>
      <id>corp</id>
      <repositories>
        <repository>
          <id>corp-releases</id>
          <url>https://mirror.example.com/releases</url>
        </repository>
      </repositories>
    </profile>
  </profiles>
  <activeProfiles>
    <activeProfile>corp</activeProfile>
  </activeProfiles>
</settings>
`

func TestApply_PrintsSettingsToStdout(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	writeFile(t, fs, testSettingsPath, existingSettings)

	res := runCLI(t, fs, []string{
		"MVN_SETTINGS_REPO_URL=https://repo.example.com/maven2",
		"MVN_SETTINGS_REPO_USERNAME=alice",
		"MVN_SETTINGS_REPO_PASSWORD=s3cret",
	}, "apply", "--settings", testSettingsPath)
	if res.err != nil {
		t.Fatalf("apply failed: %v\nstderr: %s", res.err, res.stderr)
	}

	got, err := settings.Parse([]byte(res.stdout))
	if err != nil {
		t.Fatalf("stdout is not a settings document: %v\n%s", err, res.stdout)
	}

	var profileIDs []string
	for _, p := range got.Profiles {
		profileIDs = append(profileIDs, p.ID)
	}
	if diff := cmp.Diff([]string{settings.DefaultProfileID, "corp"}, profileIDs); diff != "" {
		t.Errorf("profiles mismatch (-want +got):\n%s", diff)
	}

	profile, ok := got.Profile(settings.DefaultProfileID)
	if !ok || len(profile.Repositories) != 1 || profile.Repositories[0].ID != "sysEnvRepo" {
		t.Fatalf("generated profile = %+v", profile)
	}

	srv, ok := got.Server("sysEnvRepo")
	if !ok || srv.Username != "alice" || srv.Password != "s3cret" {
		t.Errorf("server = %+v, %v", srv, ok)
	}

	if got.Mirrors[0].MirrorOf != "*,!sysEnvRepo" {
		t.Errorf("mirrorOf = %q, want %q", got.Mirrors[0].MirrorOf, "*,!sysEnvRepo")
	}

	// The source document is untouched.
	data, err := vfs.ReadFile(fs, testSettingsPath)
	if err != nil || string(data) != existingSettings {
		t.Errorf("source settings changed: %v", err)
	}
}

func TestApply_WritesOutputFile(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	output := testWorkDir + "/.mvn/settings.xml"

	res := runCLI(t, fs, []string{"MVN_SETTINGS_REPO_CORP_URL=https://corp.example.com/maven2"},
		"apply", "--settings", testSettingsPath, "--output", output)
	if res.err != nil {
		t.Fatalf("apply failed: %v\nstderr: %s", res.err, res.stderr)
	}

	if !strings.Contains(res.stdout, "mvn -s "+output) {
		t.Errorf("stdout should contain the mvn hint, got:\n%s", res.stdout)
	}

	written, err := settings.Load(fs, output)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", output, err)
	}
	profile, ok := written.Profile(settings.DefaultProfileID)
	if !ok || len(profile.Repositories) != 1 || profile.Repositories[0].URL != "https://corp.example.com/maven2" {
		t.Errorf("written profile = %+v", profile)
	}
}

func TestApply_EnvReposFirstFromDefine(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	writeFile(t, fs, testSettingsPath, existingSettings)

	res := runCLI(t, fs, []string{"MVN_SETTINGS_REPO_URL=https://repo.example.com/maven2"},
		"apply", "--settings", testSettingsPath, "-D", "MVN_SETTINGS_ENV_REPOS_FIRST=true")
	if res.err != nil {
		t.Fatalf("apply failed: %v\nstderr: %s", res.err, res.stderr)
	}

	got, err := settings.Parse([]byte(res.stdout))
	if err != nil {
		t.Fatal(err)
	}
	if last := got.Profiles[len(got.Profiles)-1].ID; last != settings.DefaultProfileID {
		t.Errorf("last profile = %q, want %q", last, settings.DefaultProfileID)
	}
}

func TestApply_IncompleteCredentials(t *testing.T) {
	t.Parallel()

	res := runCLI(t, newTestFS(t), []string{
		"MVN_SETTINGS_REPO_URL=https://repo.example.com/maven2",
		"MVN_SETTINGS_REPO_USERNAME=alice",
	}, "apply", "--settings", testSettingsPath)

	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", res.err)
	}
	if exitErr.Code != types.ExitConfigError {
		t.Errorf("exit code = %d, want %d", exitErr.Code, types.ExitConfigError)
	}
	if !strings.Contains(res.stderr, "MVN_SETTINGS_REPO_PASSWORD") {
		t.Errorf("stderr should name the missing key, got:\n%s", res.stderr)
	}
	if res.stdout != "" {
		t.Errorf("no settings should be printed, got:\n%s", res.stdout)
	}
}

func TestApply_InvalidFlagFallsBack(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	writeFile(t, fs, testSettingsPath, existingSettings)

	res := runCLI(t, fs, []string{
		"MVN_SETTINGS_REPO_URL=https://repo.example.com/maven2",
		"MVN_SETTINGS_ENV_REPOS_FIRST=maybe",
	}, "apply", "--settings", testSettingsPath)
	if res.err != nil {
		t.Fatalf("apply failed: %v", res.err)
	}
	if !strings.Contains(res.stderr, "ignoring invalid flag values") {
		t.Errorf("stderr should warn about the invalid flag, got:\n%s", res.stderr)
	}

	got, err := settings.Parse([]byte(res.stdout))
	if err != nil {
		t.Fatal(err)
	}
	if got.Profiles[0].ID != settings.DefaultProfileID {
		t.Errorf("first profile = %q, want the generated profile first by default", got.Profiles[0].ID)
	}
}

func TestApply_MalformedSettings(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	writeFile(t, fs, testSettingsPath, "<settings><profiles>")

	res := runCLI(t, fs, []string{"MVN_SETTINGS_REPO_URL=https://repo.example.com/maven2"},
		"apply", "--settings", testSettingsPath)

	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) || exitErr.Code != types.ExitFailure {
		t.Fatalf("error = %v, want exit code %d", res.err, types.ExitFailure)
	}
	if !strings.Contains(res.stderr, "read settings") {
		t.Errorf("stderr should describe the failed operation, got:\n%s", res.stderr)
	}
}

func TestApply_NoRepositoriesKeepsSettings(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	writeFile(t, fs, testSettingsPath, existingSettings)

	res := runCLI(t, fs, nil, "apply", "--settings", testSettingsPath)
	if res.err != nil {
		t.Fatalf("apply failed: %v", res.err)
	}

	got, err := settings.Parse([]byte(res.stdout))
	if err != nil {
		t.Fatal(err)
	}
	want, err := settings.Parse([]byte(existingSettings))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings changed without repositories (-want +got):\n%s", diff)
	}
}

func TestApply_WatchRequiresOutputFile(t *testing.T) {
	t.Parallel()

	res := runCLI(t, newTestFS(t), nil, "apply", "--settings", testSettingsPath, "--watch")
	if !errors.Is(res.err, errWatchNeedsOutput) {
		t.Errorf("error = %v, want errWatchNeedsOutput", res.err)
	}
}

func TestWatchedFiles(t *testing.T) {
	t.Parallel()

	inv := &invocation{cfg: config.DefaultConfig(), projectRoot: testWorkDir}
	opts := &globalOptions{
		settingsFile:  testSettingsPath,
		envFiles:      []string{"/ci/.env", "/ci/optional.env?"},
		propertyFiles: []string{"/ci/repos.properties"},
	}

	got, err := watchedFiles(inv, opts, testSettingsPath)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		testWorkDir + "/.mvn/maven.config",
		testWorkDir + "/.mvn/repository",
		"/ci/.env",
		"/ci/optional.env",
		"/ci/repos.properties",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("watched files mismatch (-want +got):\n%s", diff)
	}
}
