// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Detail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		debug    bool
		verbose  bool
		wantLine bool
	}{
		{name: "quiet drops detail", debug: false, verbose: false, wantLine: false},
		{name: "verbose promotes detail to info", debug: false, verbose: true, wantLine: true},
		{name: "debug level shows detail", debug: true, verbose: false, wantLine: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := New(&buf, tt.debug).WithVerbose(tt.verbose)
			l.Detail("Property/Variable MVN_SETTINGS_REPO_URL is configured but blank")

			got := strings.Contains(buf.String(), "configured but blank")
			if got != tt.wantLine {
				t.Errorf("output contains detail = %v, want %v (output: %q)", got, tt.wantLine, buf.String())
			}
			if tt.wantLine && !strings.Contains(buf.String(), Prefix) {
				t.Errorf("output %q lacks prefix %q", buf.String(), Prefix)
			}
		})
	}
}

func TestOrDiscard(t *testing.T) {
	t.Parallel()

	l := OrDiscard(nil)
	if l == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l.Detail("dropped")
	l.Info("dropped")

	own := Discard()
	if OrDiscard(own) != own {
		t.Error("OrDiscard should return a non-nil logger unchanged")
	}
}
