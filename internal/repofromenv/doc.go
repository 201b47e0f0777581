// SPDX-License-Identifier: MPL-2.0

// Package repofromenv discovers Maven repository definitions encoded in
// environment variables and system properties.
//
// Repositories follow the naming convention
//
//	MVN_SETTINGS_REPO[_NAME]_URL        repository URL (required, blank disables)
//	MVN_SETTINGS_REPO[_NAME]_USERNAME   basic-auth username
//	MVN_SETTINGS_REPO[_NAME]_PASSWORD   basic-auth password (required with a username)
//	MVN_SETTINGS_REPO[_NAME]_API_TOKEN  bearer token (wins over username/password)
//
// The unnamed form produces the repository "sysEnvRepo", a named form such as
// MVN_SETTINGS_REPO_NEXUS_URL produces "sysEnvRepoNEXUS". A directory
// .mvn/repository below the project root is registered as an additional file
// repository ahead of all others.
package repofromenv
