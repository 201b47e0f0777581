// SPDX-License-Identifier: MPL-2.0

// Package configsource provides the read-only key/value view that repository
// discovery runs against.
//
// A Composite queries its sources in priority order and the first source that
// contains a key wins, even when the stored value is blank. Sources are built
// from the process environment, dotenv files, Java-style .properties files,
// -D defines given on the command line and the -D defines recorded in a
// project's .mvn/maven.config.
package configsource
