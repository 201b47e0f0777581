// SPDX-License-Identifier: MPL-2.0

package configsource

import (
	"maps"
	"slices"
	"strings"
)

type (
	// Lookup is the minimal read-only view used by repository discovery.
	Lookup interface {
		// Get returns the value stored for key and whether key is present.
		Get(key string) (string, bool)
		// Keys returns every key known to the lookup.
		Keys() []string
	}

	// Source is a named, immutable key/value mapping.
	Source struct {
		name   string
		values map[string]string
	}

	// Composite is an ordered list of lookups queried in priority order.
	Composite struct {
		sources []Lookup
	}
)

// NewSource creates a Source holding a private copy of values.
func NewSource(name string, values map[string]string) *Source {
	if values == nil {
		return &Source{name: name, values: map[string]string{}}
	}
	return &Source{name: name, values: maps.Clone(values)}
}

// FromEnviron creates a Source from "KEY=VALUE" strings as returned by os.Environ.
// Entries without '=' or with an empty key (Windows "=C:" entries) are skipped.
func FromEnviron(name string, environ []string) *Source {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		values[key] = value
	}
	return &Source{name: name, values: values}
}

// Name returns the human-readable origin of the source (e.g. "environment").
func (s *Source) Name() string { return s.name }

// Get implements Lookup.
func (s *Source) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys implements Lookup. Keys are returned sorted.
func (s *Source) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of keys in the source.
func (s *Source) Len() int { return len(s.values) }

// NewComposite creates a Composite over sources, highest priority first.
// Nil sources are dropped.
func NewComposite(sources ...Lookup) *Composite {
	kept := make([]Lookup, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Composite{sources: kept}
}

// Get returns the value from the first source containing key.
func (c *Composite) Get(key string) (string, bool) {
	for _, s := range c.sources {
		if v, ok := s.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Keys returns the sorted union of all keys across sources.
func (c *Composite) Keys() []string {
	seen := make(map[string]struct{})
	for _, s := range c.sources {
		for _, k := range s.Keys() {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Origin returns the name of the source that supplies key. Sources that do
// not expose a name are reported as "unnamed".
func (c *Composite) Origin(key string) (string, bool) {
	for _, s := range c.sources {
		if _, ok := s.Get(key); !ok {
			continue
		}
		if named, ok := s.(interface{ Name() string }); ok {
			return named.Name(), true
		}
		return "unnamed", true
	}
	return "", false
}

// Sources returns the number of sources in the composite.
func (c *Composite) Sources() int { return len(c.sources) }
