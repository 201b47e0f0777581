// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestIds(t *testing.T) {
	ids := Ids()
	if len(ids) != 7 {
		t.Fatalf("len(Ids()) = %d, want 7", len(ids))
	}
	for i, id := range ids {
		if id != Id(i+1) {
			t.Errorf("Ids()[%d] = %d, want %d", i, id, i+1)
		}
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{IncompleteCredentialsId, false, "credentials are incomplete"},
		{InvalidFlagValueId, false, "Invalid toggle value"},
		{SourceLoadFailedId, false, "Failed to read a property source"},
		{SettingsParseFailedId, false, "Failed to parse settings.xml"},
		{SettingsWriteFailedId, false, "Failed to write settings"},
		{ProjectRootNotFoundId, false, "Project root not found"},
		{None, true, ""},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)
			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) = %v, want nil", tt.id, issue)
				}
				return
			}
			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", issue.Id(), tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("MarkdownMsg() should contain %q", tt.contains)
			}
		})
	}
}

func TestIssue_DocLinksAreCloned(t *testing.T) {
	issue := Get(IncompleteCredentialsId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links")
	}
	original := links[0]
	links[0] = "modified"
	if issue.DocLinks()[0] != original {
		t.Error("DocLinks() should return a clone")
	}
}

func TestIssue_Markdown(t *testing.T) {
	md := Get(SettingsParseFailedId).Markdown()
	if !strings.Contains(md, "## See also") || !strings.Contains(md, "<https://maven.apache.org/settings.html>") {
		t.Errorf("Markdown() should list doc links:\n%s", md)
	}

	md = Get(SettingsWriteFailedId).Markdown()
	if strings.Contains(md, "See also") {
		t.Errorf("Markdown() without links should not have a See also section:\n%s", md)
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	rendered, err := Get(IncompleteCredentialsId).Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want dark", gotStyle)
	}
	if !strings.Contains(rendered, "MVN_SETTINGS_REPO_MYCOMP_PASSWORD") {
		t.Error("Render() output should contain the page body")
	}
}

func TestIssue_RenderWithGlamour(t *testing.T) {
	rendered, err := Get(ConfigLoadFailedId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "mvnenv config path") {
		t.Errorf("rendered page lacks command example:\n%s", rendered)
	}
}
