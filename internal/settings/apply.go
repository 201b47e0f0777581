// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"slices"
	"strings"

	"github.com/mvnenv/mvnenv/internal/logging"
	"github.com/mvnenv/mvnenv/internal/repofromenv"
)

const (
	// DefaultProfileID is the id of the profile holding discovered repositories.
	DefaultProfileID = "repositoriesFromSysEnv"

	// AuthorizationHeader carries bearer tokens.
	AuthorizationHeader = "Authorization"
	// BearerWagonProvider is the transport required for custom HTTP headers.
	BearerWagonProvider = "httpClient"
)

// CentralRepository is Maven Central, the default repository added with
// ApplyOptions.AddDefaultRepositories.
var CentralRepository = repofromenv.Repository{
	ID:         "central",
	URL:        "https://repo.maven.apache.org/maven2",
	Credential: repofromenv.NoCredential{},
}

// ApplyOptions control how discovered repositories are merged into settings.
type ApplyOptions struct {
	// ProfileID names the generated profile. Empty means DefaultProfileID.
	ProfileID string
	// EnvReposFirst places the generated profile after the existing ones so
	// that Maven queries the discovered repositories before them.
	EnvReposFirst bool
	// DisableBypassMirrors leaves mirrorOf of existing mirrors untouched.
	DisableBypassMirrors bool
	// AddDefaultRepositories prepends DefaultRepositories to the profile.
	AddDefaultRepositories bool
	// DefaultRepositories are added with AddDefaultRepositories. Empty means
	// CentralRepository.
	DefaultRepositories []repofromenv.Repository
	// Logger receives detail messages. When nil, nothing is logged.
	Logger *logging.Logger
}

// Apply returns a copy of s extended with repos. s is not modified. With no
// repositories the copy equals s.
//
// Applying to a document produced by an earlier Apply with the same profile
// id replaces the earlier profile and servers instead of duplicating them.
func Apply(s *Settings, repos []repofromenv.Repository, opts ApplyOptions) *Settings {
	if s == nil {
		s = NewSettings()
	}
	out := s.clone()
	if len(repos) == 0 {
		return out
	}

	log := logging.OrDiscard(opts.Logger)
	profileID := opts.ProfileID
	if profileID == "" {
		profileID = DefaultProfileID
	}

	profile := Profile{ID: profileID}
	if opts.AddDefaultRepositories {
		for _, r := range missingDefaults(opts.DefaultRepositories, repos) {
			profile.Repositories = append(profile.Repositories, repositoryFor(r))
			profile.PluginRepositories = append(profile.PluginRepositories, repositoryFor(r))
			log.Detail("Default repository " + r.URL + " (id: " + r.ID + ") added")
		}
	}
	for _, r := range repos {
		profile.Repositories = append(profile.Repositories, repositoryFor(r))
		profile.PluginRepositories = append(profile.PluginRepositories, repositoryFor(r))
		if srv, ok := serverFor(r); ok {
			out.putServer(srv)
		}
	}

	out.Profiles = slices.DeleteFunc(out.Profiles, func(p Profile) bool { return p.ID == profileID })
	if opts.EnvReposFirst {
		log.Detail("Repos from environment are queried *before* default repositories from settings.xml (" +
			repofromenv.KeyEnvReposFirst + "=true)")
		out.Profiles = append(out.Profiles, profile)
	} else {
		log.Detail("Repos from environment are queried *after* default repositories from settings.xml (" +
			repofromenv.KeyEnvReposFirst + "=false)")
		out.Profiles = slices.Insert(out.Profiles, 0, profile)
	}

	if !slices.Contains(out.ActiveProfiles, profileID) {
		out.ActiveProfiles = append(out.ActiveProfiles, profileID)
	}

	if !opts.DisableBypassMirrors {
		ids := make([]string, 0, len(repos))
		for _, r := range repos {
			ids = append(ids, r.ID)
		}
		for i := range out.Mirrors {
			m := &out.Mirrors[i]
			m.MirrorOf = bypass(m.MirrorOf, ids)
			log.Detail("Reconfigured mirror " + m.ID + " to only act as mirror of " + m.MirrorOf)
		}
	}

	return out
}

// bypass appends an exclusion for every id not yet excluded by mirrorOf.
func bypass(mirrorOf string, ids []string) string {
	existing := strings.Split(mirrorOf, ",")
	parts := make([]string, 0, len(ids)+1)
	if mirrorOf != "" {
		parts = append(parts, mirrorOf)
	}
	for _, id := range ids {
		exclusion := "!" + id
		if slices.Contains(existing, exclusion) {
			continue
		}
		parts = append(parts, exclusion)
	}
	return strings.Join(parts, ",")
}

func missingDefaults(defaults, repos []repofromenv.Repository) []repofromenv.Repository {
	if len(defaults) == 0 {
		defaults = []repofromenv.Repository{CentralRepository}
	}
	var missing []repofromenv.Repository
	for _, d := range defaults {
		if !slices.ContainsFunc(repos, func(r repofromenv.Repository) bool { return r.ID == d.ID }) {
			missing = append(missing, d)
		}
	}
	return missing
}

func repositoryFor(r repofromenv.Repository) Repository {
	return Repository{
		ID:        r.ID,
		URL:       r.URL,
		Releases:  enabledPolicy(),
		Snapshots: enabledPolicy(),
	}
}

func enabledPolicy() *RepositoryPolicy {
	enabled := true
	return &RepositoryPolicy{Enabled: &enabled}
}

func serverFor(r repofromenv.Repository) (Server, bool) {
	switch c := r.Auth().(type) {
	case repofromenv.BasicAuth:
		return Server{ID: r.ID, Username: c.Username, Password: c.Password}, true
	case repofromenv.BearerToken:
		return Server{
			ID: r.ID,
			Configuration: &ServerConfiguration{
				HTTPHeaders:   []HTTPHeader{{Name: AuthorizationHeader, Value: "Bearer " + c.Token}},
				WagonProvider: BearerWagonProvider,
			},
		}, true
	default:
		return Server{}, false
	}
}

// putServer replaces the server with the same id or appends srv.
func (s *Settings) putServer(srv Server) {
	for i := range s.Servers {
		if s.Servers[i].ID == srv.ID {
			s.Servers[i] = srv
			return
		}
	}
	s.Servers = append(s.Servers, srv)
}

// clone copies s deeply enough for Apply to modify the copy.
func (s *Settings) clone() *Settings {
	c := *s
	c.PluginGroups = slices.Clone(s.PluginGroups)
	c.Servers = slices.Clone(s.Servers)
	c.Mirrors = slices.Clone(s.Mirrors)
	c.Profiles = slices.Clone(s.Profiles)
	c.ActiveProfiles = slices.Clone(s.ActiveProfiles)
	return &c
}
