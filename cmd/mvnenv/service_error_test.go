// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/mvnenv/mvnenv/internal/config"
	"github.com/mvnenv/mvnenv/internal/issue"
	"github.com/mvnenv/mvnenv/internal/repofromenv"
	"github.com/mvnenv/mvnenv/pkg/types"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()

	newServiceError(nil, types.ExitFailure, issue.None, "")
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  types.ExitCode
		wantIssue issue.Id
	}{
		{
			name:      "plain error",
			err:       errors.New("boom"),
			wantCode:  types.ExitFailure,
			wantIssue: issue.None,
		},
		{
			name:      "incomplete credentials",
			err:       fmt.Errorf("discover: %w", &repofromenv.ConfigError{UsernameKey: "U", PasswordKey: "P"}),
			wantCode:  types.ExitConfigError,
			wantIssue: issue.IncompleteCredentialsId,
		},
		{
			name:      "invalid config",
			err:       &config.InvalidConfigError{FieldErrors: []error{config.ErrInvalidProfileID}},
			wantCode:  types.ExitConfigError,
			wantIssue: issue.ConfigLoadFailedId,
		},
		{
			name: "actionable error keeps its issue",
			err: issue.NewErrorContext().
				WithOperation("write settings").
				WithIssue(issue.SettingsWriteFailedId).
				Wrap(errors.New("read-only")).
				BuildError(),
			wantCode:  types.ExitFailure,
			wantIssue: issue.SettingsWriteFailedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifyError(tt.err, false)
			if got.Code != tt.wantCode || got.IssueID != tt.wantIssue {
				t.Errorf("classifyError() = (code %d, issue %d), want (code %d, issue %d)",
					got.Code, got.IssueID, tt.wantCode, tt.wantIssue)
			}
			if !errors.Is(got, tt.err) {
				t.Error("ServiceError should unwrap to the classified error")
			}
		})
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("nil ServiceError rendered %q", buf.String())
	}

	renderServiceError(&buf, newServiceError(errors.New("x"), types.ExitFailure, issue.None, "styled\n"))
	if buf.String() != "styled\n" {
		t.Errorf("rendered %q, want only the styled message", buf.String())
	}
}
