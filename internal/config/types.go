// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvnenv/mvnenv/internal/repofromenv"
	"github.com/mvnenv/mvnenv/internal/settings"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidRepositoryEntry is the sentinel error wrapped by InvalidRepositoryEntryError.
	ErrInvalidRepositoryEntry = errors.New("invalid repository entry")
	// ErrInvalidProfileID is returned when the profile id is blank.
	ErrInvalidProfileID = errors.New("invalid profile id")
)

type (
	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidRepositoryEntryError is returned when an entry of
	// default_repositories is blank or repeats an earlier id.
	InvalidRepositoryEntryError struct {
		Index  int
		Reason string
	}

	// RepositoryEntry is a repository added with add_default_repositories.
	RepositoryEntry struct {
		ID  string `json:"id" mapstructure:"id"`
		URL string `json:"url" mapstructure:"url"`
	}

	// DefaultsConfig holds the toggle defaults used when the MVN_* keys are
	// absent or invalid.
	DefaultsConfig struct {
		Verbose                bool `json:"verbose" mapstructure:"verbose"`
		EnvReposFirst          bool `json:"env_repos_first" mapstructure:"env_repos_first"`
		DisableBypassMirrors   bool `json:"disable_bypass_mirrors" mapstructure:"disable_bypass_mirrors"`
		AddDefaultRepositories bool `json:"add_default_repositories" mapstructure:"add_default_repositories"`
	}

	// Config holds the application configuration.
	Config struct {
		// SettingsFile is the settings.xml extended by apply. Empty means
		// ~/.m2/settings.xml.
		SettingsFile string `json:"settings_file" mapstructure:"settings_file"`
		// OutputFile receives the generated settings. Empty means stdout.
		OutputFile string `json:"output_file" mapstructure:"output_file"`
		// ProfileID names the generated profile.
		ProfileID string `json:"profile_id" mapstructure:"profile_id"`
		// Defaults are the toggle defaults.
		Defaults DefaultsConfig `json:"defaults" mapstructure:"defaults"`
		// DefaultRepositories are added when AddDefaultRepositories is on.
		DefaultRepositories []RepositoryEntry `json:"default_repositories" mapstructure:"default_repositories"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SettingsFile: "",
		OutputFile:   "",
		ProfileID:    settings.DefaultProfileID,
		Defaults:     DefaultsConfig{},
		DefaultRepositories: []RepositoryEntry{
			{ID: settings.CentralRepository.ID, URL: settings.CentralRepository.URL},
		},
	}
}

// Validate checks the constraints the schema cannot express: a non-blank
// profile id and unique, non-blank default repositories.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ProfileID) == "" {
		errs = append(errs, ErrInvalidProfileID)
	}

	seen := make(map[string]int)
	for i, r := range c.DefaultRepositories {
		switch {
		case strings.TrimSpace(r.ID) == "":
			errs = append(errs, &InvalidRepositoryEntryError{Index: i, Reason: "id must be non-empty"})
		case strings.TrimSpace(r.URL) == "":
			errs = append(errs, &InvalidRepositoryEntryError{Index: i, Reason: "url must be non-empty"})
		default:
			if first, dup := seen[r.ID]; dup {
				errs = append(errs, &InvalidRepositoryEntryError{
					Index:  i,
					Reason: fmt.Sprintf("duplicate id %q (same as default_repositories[%d])", r.ID, first),
				})
				continue
			}
			seen[r.ID] = i
		}
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// SettingsPath returns the settings file to extend, expanding a leading "~".
func (c *Config) SettingsPath() (string, error) {
	path := c.SettingsFile
	if path != "" && path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "" {
		return filepath.Join(home, ".m2", "settings.xml"), nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Flags returns the toggle defaults in the form read by repofromenv.ReadFlags.
func (c *Config) Flags() repofromenv.Flags {
	return repofromenv.Flags{
		Verbose:                c.Defaults.Verbose,
		EnvReposFirst:          c.Defaults.EnvReposFirst,
		DisableBypassMirrors:   c.Defaults.DisableBypassMirrors,
		AddDefaultRepositories: c.Defaults.AddDefaultRepositories,
	}
}

// Repositories returns the default repositories as repository descriptors.
func (c *Config) Repositories() []repofromenv.Repository {
	repos := make([]repofromenv.Repository, 0, len(c.DefaultRepositories))
	for _, r := range c.DefaultRepositories {
		repos = append(repos, repofromenv.Repository{ID: r.ID, URL: r.URL, Credential: repofromenv.NoCredential{}})
	}
	return repos
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid config: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidRepositoryEntryError.
func (e *InvalidRepositoryEntryError) Error() string {
	return fmt.Sprintf("default_repositories[%d]: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidRepositoryEntry for errors.Is() compatibility.
func (e *InvalidRepositoryEntryError) Unwrap() error { return ErrInvalidRepositoryEntry }
