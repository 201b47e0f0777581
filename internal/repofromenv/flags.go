// SPDX-License-Identifier: MPL-2.0

package repofromenv

import (
	"errors"
	"strings"

	"github.com/spf13/cast"

	"github.com/mvnenv/mvnenv/internal/configsource"
)

const (
	// KeyLogVerbose promotes repository progress messages to info level.
	KeyLogVerbose = "MVN_SETTINGS_REPO_LOG_VERBOSE"
	// KeyEnvReposFirst makes discovered repositories take precedence over
	// those already configured in settings.xml.
	KeyEnvReposFirst = "MVN_SETTINGS_ENV_REPOS_FIRST"
	// KeyDisableBypassMirrors keeps existing mirrors untouched.
	KeyDisableBypassMirrors = "MVN_DISABLE_BYPASS_MIRRORS"
	// KeyAddDefaultRepos adds the default repositories (Maven Central) to the
	// generated profile.
	KeyAddDefaultRepos = "MVN_SETTINGS_ADD_DEFAULT_REPOS"
)

// Flags are the boolean toggles read alongside the repository keys.
type Flags struct {
	Verbose                bool
	EnvReposFirst          bool
	DisableBypassMirrors   bool
	AddDefaultRepositories bool
}

// ReadFlags reads the toggles from src. Absent or blank keys keep the value
// from defaults. Values that are neither truthy nor falsy ("1", "t", "true",
// "0", "f", "false" in any case) also keep the default and are reported as
// *InvalidFlagError values joined into the returned error; the returned
// Flags are usable either way.
func ReadFlags(src configsource.Lookup, defaults Flags) (Flags, error) {
	flags := defaults
	var errs []error

	for _, f := range []struct {
		key    string
		target *bool
	}{
		{KeyLogVerbose, &flags.Verbose},
		{KeyEnvReposFirst, &flags.EnvReposFirst},
		{KeyDisableBypassMirrors, &flags.DisableBypassMirrors},
		{KeyAddDefaultRepos, &flags.AddDefaultRepositories},
	} {
		raw, ok := src.Get(f.key)
		if !ok || isBlank(raw) {
			continue
		}
		v, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(raw)))
		if err != nil {
			errs = append(errs, &InvalidFlagError{Key: f.key, Value: raw})
			continue
		}
		*f.target = v
	}

	return flags, errors.Join(errs...)
}
