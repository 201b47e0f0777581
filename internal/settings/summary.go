// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"fmt"
	"strings"
)

// Summary describes the repositories and plugin repositories of the active
// profiles and all mirrors of s:
//
//	Configured in settings.xml:
//	repositories:
//	  central(https://repo.maven.apache.org/maven2,releases:true,snapshots:false)
//	plugin repositories:
//	  ...
//	mirrors:
//	  corp(mirrorOf:*,url=https://mirror.example.com)
//
// The plugin repository and mirror sections are omitted when empty.
func Summary(s *Settings) string {
	var repos, pluginRepos []string
	for _, p := range s.activeProfiles() {
		for _, r := range p.Repositories {
			repos = append(repos, describeRepository(r))
		}
		for _, r := range p.PluginRepositories {
			pluginRepos = append(pluginRepos, describeRepository(r))
		}
	}

	var b strings.Builder
	b.WriteString("Configured in settings.xml:\nrepositories:\n  ")
	b.WriteString(strings.Join(repos, ",\n  "))
	if len(pluginRepos) > 0 {
		b.WriteString("\nplugin repositories:\n  ")
		b.WriteString(strings.Join(pluginRepos, ",\n  "))
	}
	if len(s.Mirrors) > 0 {
		mirrors := make([]string, 0, len(s.Mirrors))
		for _, m := range s.Mirrors {
			mirrors = append(mirrors, fmt.Sprintf("%s(mirrorOf:%s,url=%s)", m.ID, m.MirrorOf, m.URL))
		}
		b.WriteString("\nmirrors:\n  ")
		b.WriteString(strings.Join(mirrors, ",\n  "))
	}
	return b.String()
}

func describeRepository(r Repository) string {
	return fmt.Sprintf("%s(%s,releases:%t,snapshots:%t)", r.ID, r.URL, r.Releases.IsEnabled(), r.Snapshots.IsEnabled())
}
