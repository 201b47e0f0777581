// SPDX-License-Identifier: MPL-2.0

package configsource

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"gopkg.in/ini.v1"
	"mvdan.cc/sh/v3/shell"
)

// MavenConfigPath is the location of Maven's per-project CLI arguments file,
// relative to the project root.
const MavenConfigPath = ".mvn/maven.config"

// LoadDotenv reads a dotenv file into a Source named after the file.
// Paths suffixed with '?' are optional; a missing optional file yields an
// empty source.
func LoadDotenv(fs vfs.FileSystem, path string) (*Source, error) {
	path, data, err := readOptional(fs, path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return NewSource(path, nil), nil
	}

	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file '%s': %w", path, err)
	}
	return &Source{name: path, values: values}, nil
}

// LoadProperties reads a Java-style .properties file ("key=value" or
// "key: value" lines, '#' comments) into a Source. Keys inside [sections]
// are ignored. Paths suffixed with '?' are optional.
func LoadProperties(fs vfs.FileSystem, path string) (*Source, error) {
	path, data, err := readOptional(fs, path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return NewSource(path, nil), nil
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		KeyValueDelimiters:      "=:",
		PreserveSurroundedQuote: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties file '%s': %w", path, err)
	}

	values := make(map[string]string)
	for _, key := range f.Section(ini.DefaultSection).Keys() {
		values[key.Name()] = key.String()
	}
	return &Source{name: path, values: values}, nil
}

// LoadMavenConfig collects the -D defines recorded in <projectRoot>/.mvn/maven.config.
// The file holds Maven CLI arguments; they are split into words with shell
// quoting rules but without parameter expansion. A missing file yields an
// empty source.
func LoadMavenConfig(fs vfs.FileSystem, projectRoot string) (*Source, error) {
	path := vfs.Join(fs, projectRoot, MavenConfigPath)
	name := MavenConfigPath
	exists, err := vfs.FileExists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check '%s': %w", path, err)
	}
	if !exists {
		return NewSource(name, nil), nil
	}

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}

	words, err := shell.Fields(escapeExpansions(string(data)), func(string) string { return "" })
	if err != nil {
		return nil, fmt.Errorf("failed to split arguments in '%s': %w", path, err)
	}

	var defines []string
	for i := 0; i < len(words); i++ {
		w := words[i]
		switch {
		case w == "-D" || w == "--define":
			if i+1 < len(words) {
				defines = append(defines, words[i+1])
				i++
			}
		case strings.HasPrefix(w, "--define="):
			defines = append(defines, strings.TrimPrefix(w, "--define="))
		case strings.HasPrefix(w, "-D"):
			defines = append(defines, strings.TrimPrefix(w, "-D"))
		}
	}

	return ParseDefines(name, defines)
}

// ParseDefines turns "key=value" strings into a Source. A define without
// '=' is set to "true", as Maven does for "-Dflag".
func ParseDefines(name string, defines []string) (*Source, error) {
	values := make(map[string]string, len(defines))
	for _, d := range defines {
		key, value, found := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%s: invalid define %q (empty property name)", name, d)
		}
		if !found {
			value = "true"
		}
		values[key] = value
	}
	return &Source{name: name, values: values}, nil
}

// readOptional reads path from fs. A trailing '?' marks the file optional, in
// which case a missing file returns nil data and no error. The returned path
// has the marker removed.
func readOptional(fs vfs.FileSystem, path string) (string, []byte, error) {
	optional := strings.HasSuffix(path, "?")
	if optional {
		path = strings.TrimSuffix(path, "?")
	}

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		if optional && vfs.IsErrNotExist(err) {
			return path, nil, nil
		}
		return path, nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return path, data, nil
}

// escapeExpansions backslash-escapes every '$' outside single quotes so that
// placeholders such as ${maven.multiModuleProjectDirectory} survive word
// splitting literally.
func escapeExpansions(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSingle, inDouble, escaped := false, false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case r == '$' && !inSingle:
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
