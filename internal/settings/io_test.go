// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"strings"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

const existingSettings = `<?xml version="1.0" encoding="UTF-8"?>
<settings xmlns="http://maven.apache.org/SETTINGS/1.0.0"
          xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
          xsi:schemaLocation="http://maven.apache.org/SETTINGS/1.0.0 https://maven.apache.org/xsd/settings-1.0.0.xsd">
  <localRepository>/cache/m2</localRepository>
  <servers>
    <server>
      <id>corp</id>
      <username>deployer</username>
      <password>secret</password>
      <configuration>
        <timeout>30000</timeout>
      </configuration>
    </server>
  </servers>
  <mirrors>
    <mirror>
      <id>corp-mirror</id>
      <url>https://mirror.example.com/maven</url>
      <mirrorOf>*</mirrorOf>
    </mirror>
  </mirrors>
  <profiles>
    <profile>
      <id>corp</id>
      <activation>
        <jdk>17</jdk>
      </activation>
      <properties>
        <env>ci</env>
      </properties>
      <repositories>
        <repository>
          <id>corp</id>
          <url>https://repo.example.com/maven</url>
          <snapshots>
            <enabled>false</enabled>
          </snapshots>
        </repository>
      </repositories>
    </profile>
  </profiles>
  <activeProfiles>
    <activeProfile>corp</activeProfile>
  </activeProfiles>
</settings>
`

func TestParse(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(existingSettings))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.LocalRepository != "/cache/m2" {
		t.Errorf("LocalRepository = %q", s.LocalRepository)
	}
	srv, ok := s.Server("corp")
	if !ok || srv.Username != "deployer" || srv.Password != "secret" {
		t.Fatalf("Server(corp) = %+v, %v", srv, ok)
	}
	if srv.Configuration == nil || len(srv.Configuration.Extra) != 1 || srv.Configuration.Extra[0].XMLName.Local != "timeout" {
		t.Errorf("server configuration not carried through: %+v", srv.Configuration)
	}
	if len(s.Mirrors) != 1 || s.Mirrors[0].MirrorOf != "*" {
		t.Errorf("Mirrors = %+v", s.Mirrors)
	}

	p, ok := s.Profile("corp")
	if !ok {
		t.Fatal("Profile(corp) not found")
	}
	if len(p.Repositories) != 1 {
		t.Fatalf("Repositories = %+v", p.Repositories)
	}
	if !p.Repositories[0].Releases.IsEnabled() || p.Repositories[0].Snapshots.IsEnabled() {
		t.Errorf("policies: releases=%v snapshots=%v", p.Repositories[0].Releases.IsEnabled(), p.Repositories[0].Snapshots.IsEnabled())
	}
	if !s.IsActive(p) {
		t.Error("profile corp should be active")
	}
}

func TestParse_InvalidDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: "<settings><servers>"},
		{name: "wrong root", data: "<project></project>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestEncode_RoundTripCarriesUnknownChildren(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(existingSettings))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<settings xmlns="http://maven.apache.org/SETTINGS/1.0.0"`,
		`xsi:schemaLocation="http://maven.apache.org/SETTINGS/1.0.0 https://maven.apache.org/xsd/settings-1.0.0.xsd"`,
		`<timeout>30000</timeout>`,
		`<jdk>17</jdk>`,
		`<env>ci</env>`,
		`<enabled>false</enabled>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded document lacks %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "xmlns=") != 1 {
		t.Errorf("namespace should be declared once:\n%s", out)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()) error = %v", err)
	}
	if len(again.Profiles) != 1 || len(again.Servers) != 1 || len(again.Mirrors) != 1 {
		t.Errorf("round trip lost elements: %+v", again)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()
	if err := fs.MkdirAll("/home/user/.m2", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := vfs.WriteFile(fs, "/home/user/.m2/settings.xml", []byte(existingSettings), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := vfs.WriteFile(fs, "/home/user/.m2/empty.xml", []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(fs, "/home/user/.m2/settings.xml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Profiles) != 1 {
		t.Errorf("Load() profiles = %d, want 1", len(s.Profiles))
	}

	for _, path := range []string{"/home/user/.m2/missing.xml", "/home/user/.m2/empty.xml"} {
		s, err := Load(fs, path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if s.XMLNs != Namespace || len(s.Profiles) != 0 {
			t.Errorf("Load(%s) = %+v, want empty document", path, s)
		}
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()
	s := NewSettings()
	s.ActiveProfiles = []string{"p"}

	if err := Write(fs, "/out/nested/settings.xml", s); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Load(fs, "/out/nested/settings.xml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.ActiveProfiles) != 1 || got.ActiveProfiles[0] != "p" {
		t.Errorf("ActiveProfiles = %v", got.ActiveProfiles)
	}
}
