// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mvnenv/mvnenv/internal/config"
	"github.com/mvnenv/mvnenv/internal/issue"
	"github.com/mvnenv/mvnenv/internal/repofromenv"
	"github.com/mvnenv/mvnenv/pkg/types"
)

// ServiceError is an error that carries rendering information for the CLI
// layer. Always create via newServiceError to enforce the Err-must-be-non-nil
// invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// Code is the process exit code the error maps to.
	Code types.ExitCode
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, code types.ExitCode, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		Code:          code,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a command failure to its exit code and catalog page and
// returns the styled message shown for it.
func classifyError(err error, verbose bool) *ServiceError {
	code := types.ExitFailure
	issueID := issue.None

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		issueID = ae.Issue
	}

	switch {
	case errors.Is(err, repofromenv.ErrConfiguration):
		code = types.ExitConfigError
		issueID = issue.IncompleteCredentialsId
	case errors.Is(err, config.ErrInvalidConfig), issueID == issue.ConfigLoadFailedId:
		code = types.ExitConfigError
		issueID = issue.ConfigLoadFailedId
	}

	return newServiceError(err, code, issueID,
		fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose)))
}

// renderServiceError prints the styled message followed by the catalog page,
// if any.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == issue.None {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render("dark")
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// fail renders err on the App's stderr and converts it into an *ExitError
// so that Execute exits with the matching code without printing it again.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool) error {
	svcErr := classifyError(err, verbose)
	renderServiceError(a.stderr, svcErr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: svcErr.Code, Err: svcErr}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
