// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvnenv/mvnenv/pkg/types"
)

// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath types.FilesystemPath
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath types.FilesystemPath
	}

	// InvalidLoadOptionsError is returned when a non-empty LoadOptions path
	// is whitespace-only.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	fileProvider struct{}
)

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the non-empty paths. Empty paths mean "use the default".
func (o LoadOptions) Validate() error {
	var errs []error
	for _, p := range []types.FilesystemPath{o.ConfigFilePath, o.ConfigDirPath} {
		if p == "" {
			continue
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidLoadOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid load options: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid load options: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }
