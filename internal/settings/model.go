// SPDX-License-Identifier: MPL-2.0

package settings

import "encoding/xml"

const (
	// Namespace is the XML namespace of settings 1.0.0 documents.
	Namespace = "http://maven.apache.org/SETTINGS/1.0.0"
	// NamespaceXSI is the XML schema instance namespace.
	NamespaceXSI = "http://www.w3.org/2001/XMLSchema-instance"
	// SchemaLocation points at the settings 1.0.0 schema.
	SchemaLocation = "http://maven.apache.org/SETTINGS/1.0.0 https://maven.apache.org/xsd/settings-1.0.0.xsd"
)

type (
	// Settings is the root element of settings.xml.
	Settings struct {
		XMLName           xml.Name
		XMLNs             string `xml:"xmlns,attr,omitempty"`
		XMLNsXsi          string `xml:"xmlns:xsi,attr,omitempty"`
		XsiSchemaLocation string `xml:"xsi:schemaLocation,attr,omitempty"`

		LocalRepository string    `xml:"localRepository,omitempty"`
		InteractiveMode string    `xml:"interactiveMode,omitempty"`
		Offline         string    `xml:"offline,omitempty"`
		PluginGroups    []string  `xml:"pluginGroups>pluginGroup,omitempty"`
		Servers         []Server  `xml:"servers>server,omitempty"`
		Mirrors         []Mirror  `xml:"mirrors>mirror,omitempty"`
		Profiles        []Profile `xml:"profiles>profile,omitempty"`
		ActiveProfiles  []string  `xml:"activeProfiles>activeProfile,omitempty"`
	}

	// Server holds the credentials Maven uses for the repository or mirror
	// with the same id.
	Server struct {
		ID                   string               `xml:"id"`
		Username             string               `xml:"username,omitempty"`
		Password             string               `xml:"password,omitempty"`
		PrivateKey           string               `xml:"privateKey,omitempty"`
		Passphrase           string               `xml:"passphrase,omitempty"`
		FilePermissions      string               `xml:"filePermissions,omitempty"`
		DirectoryPermissions string               `xml:"directoryPermissions,omitempty"`
		Configuration        *ServerConfiguration `xml:"configuration,omitempty"`
	}

	// ServerConfiguration is the transport configuration of a server. Only
	// HTTP headers and the wagon provider are modelled; other children are
	// kept in Extra.
	ServerConfiguration struct {
		HTTPHeaders   []HTTPHeader `xml:"httpHeaders>property,omitempty"`
		WagonProvider string       `xml:"wagonProvider,omitempty"`
		Extra         []RawElement `xml:",any"`
	}

	// HTTPHeader is a header sent with every request to a server.
	HTTPHeader struct {
		Name  string `xml:"name"`
		Value string `xml:"value"`
	}

	// Mirror redirects requests for the repositories matched by MirrorOf.
	Mirror struct {
		ID       string `xml:"id"`
		Name     string `xml:"name,omitempty"`
		URL      string `xml:"url"`
		MirrorOf string `xml:"mirrorOf"`
		Layout   string `xml:"layout,omitempty"`
		Blocked  string `xml:"blocked,omitempty"`
	}

	// Profile groups repositories that can be activated together.
	Profile struct {
		ID                 string       `xml:"id"`
		Activation         *Activation  `xml:"activation,omitempty"`
		Properties         *Properties  `xml:"properties,omitempty"`
		Repositories       []Repository `xml:"repositories>repository,omitempty"`
		PluginRepositories []Repository `xml:"pluginRepositories>pluginRepository,omitempty"`
	}

	// Activation holds the conditions that activate a profile.
	Activation struct {
		ActiveByDefault bool         `xml:"activeByDefault,omitempty"`
		Conditions      []RawElement `xml:",any"`
	}

	// Properties are free-form profile properties.
	Properties struct {
		Entries []RawElement `xml:",any"`
	}

	// Repository is a remote repository declared in a profile.
	Repository struct {
		ID        string            `xml:"id"`
		Name      string            `xml:"name,omitempty"`
		URL       string            `xml:"url"`
		Layout    string            `xml:"layout,omitempty"`
		Releases  *RepositoryPolicy `xml:"releases,omitempty"`
		Snapshots *RepositoryPolicy `xml:"snapshots,omitempty"`
	}

	// RepositoryPolicy controls downloads of one artifact kind.
	RepositoryPolicy struct {
		Enabled        *bool  `xml:"enabled,omitempty"`
		UpdatePolicy   string `xml:"updatePolicy,omitempty"`
		ChecksumPolicy string `xml:"checksumPolicy,omitempty"`
	}

	// RawElement is an element carried through without interpretation.
	RawElement struct {
		XMLName  xml.Name
		Attrs    []xml.Attr `xml:",any,attr"`
		InnerXML string     `xml:",innerxml"`
	}
)

// NewSettings returns an empty document with the settings 1.0.0 namespace.
func NewSettings() *Settings {
	return &Settings{
		XMLName:           xml.Name{Local: "settings"},
		XMLNs:             Namespace,
		XMLNsXsi:          NamespaceXSI,
		XsiSchemaLocation: SchemaLocation,
	}
}

// IsEnabled reports whether the policy allows downloads. A missing policy or
// a missing enabled element counts as enabled, as in Maven.
func (p *RepositoryPolicy) IsEnabled() bool {
	return p == nil || p.Enabled == nil || *p.Enabled
}

// IsActive reports whether the profile is active by default or listed in
// activeProfiles.
func (s *Settings) IsActive(p Profile) bool {
	if p.Activation != nil && p.Activation.ActiveByDefault {
		return true
	}
	for _, id := range s.ActiveProfiles {
		if id == p.ID {
			return true
		}
	}
	return false
}

// activeProfiles returns the active profiles in document order.
func (s *Settings) activeProfiles() []Profile {
	var active []Profile
	for _, p := range s.Profiles {
		if s.IsActive(p) {
			active = append(active, p)
		}
	}
	return active
}

// Server returns the server with the given id.
func (s *Settings) Server(id string) (Server, bool) {
	for _, srv := range s.Servers {
		if srv.ID == id {
			return srv, true
		}
	}
	return Server{}, false
}

// Profile returns the profile with the given id.
func (s *Settings) Profile(id string) (Profile, bool) {
	for _, p := range s.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}
