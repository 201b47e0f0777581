// SPDX-License-Identifier: MPL-2.0

package configsource

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// writeFile creates path (and its parent directories) on fs.
func writeFile(t *testing.T, fs vfs.FileSystem, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(vfs.Dir(fs, path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", path, err)
	}
	if err := vfs.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

// valuesOf flattens a source into a map for comparison.
func valuesOf(s *Source) map[string]string {
	out := make(map[string]string, s.Len())
	for _, k := range s.Keys() {
		out[k], _ = s.Get(k)
	}
	return out
}

func TestLoadDotenv(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()
	writeFile(t, fs, "/work/ci.env", `# pipeline secrets
MVN_SETTINGS_REPO_URL=https://repo.example.com/maven
export MVN_SETTINGS_REPO_USERNAME="ci-user"
MVN_SETTINGS_REPO_PASSWORD='s3cr#t'
`)

	s, err := LoadDotenv(fs, "/work/ci.env")
	if err != nil {
		t.Fatalf("LoadDotenv() error = %v", err)
	}

	want := map[string]string{
		"MVN_SETTINGS_REPO_URL":      "https://repo.example.com/maven",
		"MVN_SETTINGS_REPO_USERNAME": "ci-user",
		"MVN_SETTINGS_REPO_PASSWORD": "s3cr#t",
	}
	if diff := cmp.Diff(want, valuesOf(s)); diff != "" {
		t.Errorf("LoadDotenv() mismatch (-want +got):\n%s", diff)
	}
	if s.Name() != "/work/ci.env" {
		t.Errorf("Name() = %q, want file path", s.Name())
	}
}

func TestLoadDotenv_Optional(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()

	s, err := LoadDotenv(fs, "/work/missing.env?")
	if err != nil {
		t.Fatalf("optional missing file should not fail: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	if _, err := LoadDotenv(fs, "/work/missing.env"); err == nil {
		t.Error("required missing file should fail")
	}
}

func TestLoadProperties(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()
	writeFile(t, fs, "/work/ci.properties", `# comment
MVN_SETTINGS_REPO_URL = https://props.example.com/repo#frag
MVN_SETTINGS_REPO_USERNAME: ci
MVN_SETTINGS_REPO_LOG_VERBOSE=true
`)

	s, err := LoadProperties(fs, "/work/ci.properties")
	if err != nil {
		t.Fatalf("LoadProperties() error = %v", err)
	}

	want := map[string]string{
		"MVN_SETTINGS_REPO_URL":         "https://props.example.com/repo#frag",
		"MVN_SETTINGS_REPO_USERNAME":    "ci",
		"MVN_SETTINGS_REPO_LOG_VERBOSE": "true",
	}
	if diff := cmp.Diff(want, valuesOf(s)); diff != "" {
		t.Errorf("LoadProperties() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMavenConfig(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()
	writeFile(t, fs, "/project/.mvn/maven.config", `--batch-mode
-DMVN_SETTINGS_REPO_URL=file://${maven.multiModuleProjectDirectory}/.mvn/repository
-D MVN_SETTINGS_REPO_LOG_VERBOSE=true -Dquoted='a b $HOME'
--define=FLAG -T 4
`)

	s, err := LoadMavenConfig(fs, "/project")
	if err != nil {
		t.Fatalf("LoadMavenConfig() error = %v", err)
	}

	want := map[string]string{
		"MVN_SETTINGS_REPO_URL":         "file://${maven.multiModuleProjectDirectory}/.mvn/repository",
		"MVN_SETTINGS_REPO_LOG_VERBOSE": "true",
		"quoted":                        "a b $HOME",
		"FLAG":                          "true",
	}
	if diff := cmp.Diff(want, valuesOf(s)); diff != "" {
		t.Errorf("LoadMavenConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMavenConfig_Missing(t *testing.T) {
	t.Parallel()

	s, err := LoadMavenConfig(memoryfs.New(), "/project")
	if err != nil {
		t.Fatalf("LoadMavenConfig() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestParseDefines(t *testing.T) {
	t.Parallel()

	s, err := ParseDefines("--define", []string{"A=1", "B=", "C", "D=x=y"})
	if err != nil {
		t.Fatalf("ParseDefines() error = %v", err)
	}
	want := map[string]string{"A": "1", "B": "", "C": "true", "D": "x=y"}
	if diff := cmp.Diff(want, valuesOf(s)); diff != "" {
		t.Errorf("ParseDefines() mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseDefines("--define", []string{"=value"}); err == nil {
		t.Error("ParseDefines() with empty key should fail")
	}
}
