// SPDX-License-Identifier: MPL-2.0

// Package settings models the subset of Maven's settings.xml that mvnenv
// reads and writes, and applies discovered repositories to it.
//
// Apply adds one profile holding every discovered repository (as both a
// repository and a plugin repository), a server entry per credentialed
// repository, activates the profile and, unless disabled, excludes the
// discovered repository ids from every mirror so that requests to them are
// not redirected.
//
// Elements outside the model are dropped when a file is loaded, except for
// the free-form server configuration, profile properties and activation
// conditions, which are carried through verbatim.
package settings
