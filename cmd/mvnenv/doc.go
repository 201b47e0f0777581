// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the mvnenv CLI commands.
//
// The commands are built around an App composition root: every command
// handler receives the App and reaches configuration, the filesystem and the
// host environment only through it, so tests can run the whole command tree
// against an in-memory filesystem and a fixed environment.
package cmd
