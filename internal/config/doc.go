// SPDX-License-Identifier: MPL-2.0

// Package config handles mvnenv's own configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from config.cue in the platform config directory
// ($XDG_CONFIG_HOME/mvnenv on Linux, ~/Library/Application Support/mvnenv on
// macOS, %APPDATA%\mvnenv on Windows) and validated against the embedded
// schema (config_schema.cue). It holds host defaults: where the existing
// settings live, where to write the result, the generated profile id, the
// toggle defaults and the default repositories.
//
// Every value can also be overridden with an MVNENV_ environment variable,
// e.g. MVNENV_PROFILE_ID or MVNENV_DEFAULTS_ENV_REPOS_FIRST.
package config
