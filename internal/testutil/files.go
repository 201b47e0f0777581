// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// WriteFile writes content to path on fs, creating parent directories.
// The test fails immediately on error.
func WriteFile(t testing.TB, fs vfs.FileSystem, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(vfs.Dir(fs, path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := vfs.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MkdirAll creates every directory in dirs on fs. The test fails immediately
// on error.
func MkdirAll(t testing.TB, fs vfs.FileSystem, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
}
