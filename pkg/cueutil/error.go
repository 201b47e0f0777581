// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrSchema is the sentinel error wrapped by SchemaError.
var ErrSchema = errors.New("document does not match schema")

type (
	// Issue is one problem found in a document.
	Issue struct {
		// Path locates the offending value, e.g. "default_repositories[0].url".
		// Empty for syntax errors.
		Path    string
		Message string
	}

	// SchemaError lists the issues found in one document.
	SchemaError struct {
		File   string
		Issues []Issue
	}
)

// Error implements the error interface.
func (e *SchemaError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path != "" {
			lines = append(lines, is.Path+": "+is.Message)
		} else {
			lines = append(lines, is.Message)
		}
	}
	if len(lines) == 1 {
		return fmt.Sprintf("%s: %s", e.File, lines[0])
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrSchema for errors.Is() compatibility.
func (e *SchemaError) Unwrap() error { return ErrSchema }

// FormatError converts a CUE error into a *SchemaError for file. Errors that
// carry no CUE details are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	schemaErr := &SchemaError{File: file}
	for _, e := range cueErrs {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		// CUE repeats the path at the start of some messages.
		if path != "" {
			if rest, ok := strings.CutPrefix(msg, path); ok {
				msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			}
		}
		schemaErr.Issues = append(schemaErr.Issues, Issue{Path: path, Message: msg})
	}
	return schemaErr
}

// formatPath renders a CUE path such as ["repos", "0", "url"] as "repos[0].url".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckSize fails when data is larger than maxSize bytes.
func CheckSize(data []byte, maxSize int64, file string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", file, len(data), maxSize)
	}
	return nil
}
