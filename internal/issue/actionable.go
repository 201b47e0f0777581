// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages.
	//
	// Use the ErrorContext builder for construction:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("read settings").
	//		WithResource("~/.m2/settings.xml").
	//		WithSuggestion("Check that the file is well-formed XML").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "read settings".
		Operation string

		// Resource identifies the file or key involved (optional).
		Resource string

		// Suggestions are hints on how to fix the issue (optional).
		Suggestions []string

		// Issue references a catalog page with further help (optional).
		Issue Id

		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext is a builder for ActionableError values.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext wraps err with operation and resource context. It returns
// nil for a nil err.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Operation: operation,
		Resource:  resource,
		Cause:     err,
	}
}

// Error returns the concise single-line message.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the message followed by the suggestions:
//
//	failed to <operation>: <resource>: <cause>
//
//	  • <suggestion 1>
//	  • <suggestion 2>
//
// With verbose set the chain of wrapped errors is appended.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// HasSuggestions reports whether the error carries suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the file or key involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion adds a suggestion. It can be called repeatedly.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions adds several suggestions at once.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithIssue references a catalog page.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates the ActionableError. It returns nil when no operation is set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build returning the error interface, nil when no operation
// is set.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
