// SPDX-License-Identifier: MPL-2.0

package configsource

import (
	"os"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

type (
	// Options lists the inputs a Builder layers into a Composite.
	Options struct {
		// Defines are "key=value" strings from -D/--define flags.
		Defines []string
		// PropertyFiles are .properties files; later files win over earlier ones.
		PropertyFiles []string
		// EnvFiles are dotenv files; later files win over earlier ones.
		EnvFiles []string
		// ProjectRoot is where .mvn/maven.config is looked up. Empty skips it.
		ProjectRoot string
	}

	// Builder assembles the configuration lookup for one invocation.
	// It applies a 5-level precedence hierarchy (higher number wins):
	//
	//  1. --env-file dotenv files
	//  2. Process environment
	//  3. -D defines in .mvn/maven.config
	//  4. --properties files
	//  5. -D/--define flags - HIGHEST priority
	//
	// Levels 3-5 play the role of Java system properties, which take
	// precedence over environment variables.
	Builder struct {
		// FS is the filesystem files are read from. When nil, the OS filesystem is used.
		FS vfs.FileSystem
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used.
		Environ func() []string
	}
)

// Build constructs the Composite for opts.
func (b *Builder) Build(opts Options) (*Composite, error) {
	fs := b.FS
	if fs == nil {
		fs = osfs.New()
	}
	environ := b.Environ
	if environ == nil {
		environ = os.Environ
	}

	var layers []Lookup

	// 5. -D/--define flags
	defines, err := ParseDefines("--define", opts.Defines)
	if err != nil {
		return nil, err
	}
	layers = append(layers, defines)

	// 4. --properties files, last file first
	for i := len(opts.PropertyFiles) - 1; i >= 0; i-- {
		props, err := LoadProperties(fs, opts.PropertyFiles[i])
		if err != nil {
			return nil, err
		}
		layers = append(layers, props)
	}

	// 3. .mvn/maven.config
	if opts.ProjectRoot != "" {
		mvnConfig, err := LoadMavenConfig(fs, opts.ProjectRoot)
		if err != nil {
			return nil, err
		}
		layers = append(layers, mvnConfig)
	}

	// 2. Process environment
	layers = append(layers, FromEnviron("environment", environ()))

	// 1. --env-file dotenv files, last file first
	for i := len(opts.EnvFiles) - 1; i >= 0; i-- {
		env, err := LoadDotenv(fs, opts.EnvFiles[i])
		if err != nil {
			return nil, err
		}
		layers = append(layers, env)
	}

	return NewComposite(layers...), nil
}
