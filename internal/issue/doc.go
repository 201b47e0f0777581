// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help
// pages for the failures mvnenv users run into most.
//
// An ActionableError names the failed operation, the resource involved and
// suggestions for fixing it. It may reference a catalog Issue, whose page is
// rendered with glamour when the user asks for verbose output.
package issue
