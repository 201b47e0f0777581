// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Parse decodes a settings document.
func Parse(data []byte) (*Settings, error) {
	s := &Settings{}
	if err := xml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.XMLName.Local != "settings" {
		return nil, fmt.Errorf("failed to parse settings: unexpected root element <%s>", s.XMLName.Local)
	}
	normalize(s)
	return s, nil
}

// Load reads the settings file at path from fs. A missing file yields an
// empty document.
func Load(fs vfs.FileSystem, path string) (*Settings, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		if vfs.IsErrNotExist(err) {
			return NewSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewSettings(), nil
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode renders s as an indented XML document with declaration.
func Encode(s *Settings) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write encodes s into path on fs, creating parent directories as needed.
func Write(fs vfs.FileSystem, path string, s *Settings) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(vfs.Dir(fs, path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := vfs.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// normalize drops the resolved namespaces the decoder records on element
// names, which the encoder would otherwise repeat as xmlns attributes on
// every carried-through element.
func normalize(s *Settings) {
	s.XMLName = xml.Name{Local: "settings"}
	if s.XMLNs == "" {
		s.XMLNs = Namespace
	}
	if s.XMLNs == Namespace {
		s.XMLNsXsi = NamespaceXSI
		s.XsiSchemaLocation = SchemaLocation
	}

	for i := range s.Servers {
		if c := s.Servers[i].Configuration; c != nil {
			stripNamespaces(c.Extra)
		}
	}
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.Activation != nil {
			stripNamespaces(p.Activation.Conditions)
		}
		if p.Properties != nil {
			stripNamespaces(p.Properties.Entries)
		}
	}
}

func stripNamespaces(elems []RawElement) {
	for i := range elems {
		elems[i].XMLName.Space = ""
		attrs := elems[i].Attrs[:0]
		for _, a := range elems[i].Attrs {
			if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
				continue
			}
			attrs = append(attrs, a)
		}
		elems[i].Attrs = attrs
	}
}
