// SPDX-License-Identifier: MPL-2.0

package repofromenv

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mvnenv/mvnenv/internal/configsource"
	"github.com/mvnenv/mvnenv/internal/logging"
)

const (
	// KeyPrefix starts every repository key.
	KeyPrefix = "MVN_SETTINGS_REPO"
	// KeySuffixURL ends the key holding the repository URL.
	KeySuffixURL = "_URL"
	// KeySuffixUsername ends the key holding the basic-auth username.
	KeySuffixUsername = "_USERNAME"
	// KeySuffixPassword ends the key holding the basic-auth password.
	KeySuffixPassword = "_PASSWORD"
	// KeySuffixAPIToken ends the key holding the bearer token.
	KeySuffixAPIToken = "_API_TOKEN"

	// RepoIDPrefix starts the id of every discovered repository.
	RepoIDPrefix = "sysEnvRepo"

	// PlaceholderProjectDir is replaced by the project root in repository URLs.
	PlaceholderProjectDir = "${maven.multiModuleProjectDirectory}"
	// PlaceholderProjectBaseDir is the environment-style alias set by the mvn launcher.
	PlaceholderProjectBaseDir = "${MAVEN_PROJECTBASEDIR}"

	// ImplicitRepoPath is the project-relative location of the implicit file repository.
	ImplicitRepoPath = ".mvn/repository"
	// ImplicitRepoID is the id of the implicit file repository.
	ImplicitRepoID = "repository-in-mvn-ext-folder"
)

// Discoverer scans a configuration lookup for repository definitions.
type Discoverer struct {
	// FS is used by the implicit repository probe. When nil, the OS filesystem is used.
	FS vfs.FileSystem
	// Logger receives progress messages. When nil, nothing is logged.
	Logger *logging.Logger
}

// Discover returns the repositories defined in src, using a Discoverer with
// the OS filesystem and no logging.
func Discover(src configsource.Lookup, projectRoot string) ([]Repository, error) {
	return (&Discoverer{}).Discover(src, projectRoot)
}

// ProbeImplicit reports the implicit file repository below projectRoot on fs
// without logging.
func ProbeImplicit(fs vfs.FileSystem, projectRoot string) (Repository, bool, error) {
	return (&Discoverer{FS: fs}).Probe(projectRoot)
}

// Collect returns the implicit file repository (when present) followed by the
// repositories defined in src.
func (d *Discoverer) Collect(src configsource.Lookup, projectRoot string) ([]Repository, error) {
	repos, err := d.Discover(src, projectRoot)
	if err != nil {
		return nil, err
	}

	implicit, found, err := d.Probe(projectRoot)
	if err != nil {
		return nil, err
	}
	if found {
		repos = slices.Insert(repos, 0, implicit)
	}
	return repos, nil
}

// Discover returns one Repository per NAME for which src holds a non-blank
// MVN_SETTINGS_REPO[_NAME]_URL, ordered by NAME with the unnamed repository
// first. A username without a password fails the whole pass with a
// *ConfigError and no repositories.
func (d *Discoverer) Discover(src configsource.Lookup, projectRoot string) ([]Repository, error) {
	log := logging.OrDiscard(d.Logger)

	names := repoNames(src.Keys(), log)
	rootPath := uriPath(projectRoot)

	repos := make([]Repository, 0, len(names))
	for _, name := range names {
		keys := keysFor(name)

		rawURL := lookup(src, keys.url)
		if isBlank(rawURL) {
			log.Detail("Property/Variable " + keys.url + " is configured but blank, not adding a repository")
			continue
		}

		username := lookup(src, keys.username)
		password := lookup(src, keys.password)
		token := lookup(src, keys.apiToken)
		if !isBlank(username) && isBlank(password) {
			return nil, &ConfigError{UsernameKey: keys.username, PasswordKey: keys.password}
		}

		repoURL := rawURL
		if containsPlaceholder(repoURL) {
			repoURL = substituteProjectDir(repoURL, rootPath)
			log.Detail("Replaced " + PlaceholderProjectDir + " in url with " + rootPath)
		}

		repo := Repository{ID: RepoIDPrefix + name, URL: repoURL, Credential: NoCredential{}}
		switch {
		case !isBlank(token):
			repo.Credential = BearerToken{Token: token}
			if !isBlank(username) {
				log.Detail("Repository " + repoURL + " has both " + keys.apiToken + " and " + keys.username + " set, using the token")
			}
		case !isBlank(username):
			repo.Credential = BasicAuth{Username: username, Password: password}
		default:
			log.Detail("Repository " + repoURL + " has NOT configured credentials (env variables " +
				keys.username + " and " + keys.password + " or " + keys.apiToken + " are missing)")
		}
		repos = append(repos, repo)
	}

	// Always reported, independent of the verbose toggle.
	for _, r := range repos {
		log.Info("Repository added from system properties or environment variables: " + r.String())
	}

	return repos, nil
}

// Probe reports the implicit file repository at <projectRoot>/.mvn/repository.
// found is false when nothing exists at that path.
func (d *Discoverer) Probe(projectRoot string) (repo Repository, found bool, err error) {
	fs := d.FS
	if fs == nil {
		fs = osfs.New()
	}

	path := vfs.Join(fs, projectRoot, ImplicitRepoPath)
	exists, err := vfs.Exists(fs, path)
	if err != nil || !exists {
		return Repository{}, false, err
	}
	isDir, err := vfs.IsDir(fs, path)
	if err != nil {
		return Repository{}, false, err
	}

	repo = Repository{
		ID:         ImplicitRepoID,
		URL:        fileURI(path, isDir),
		Credential: NoCredential{},
	}
	logging.OrDiscard(d.Logger).Info("Implicit file repository added for directory " + ImplicitRepoPath)
	return repo, true, nil
}

// URLKey returns the key holding the URL of the discovered repository id.
// ok is false for ids Discover does not produce.
func URLKey(id string) (key string, ok bool) {
	name, found := strings.CutPrefix(id, RepoIDPrefix)
	if !found {
		return "", false
	}
	return keysFor(name).url, true
}

type repoKeys struct {
	url, username, password, apiToken string
}

func keysFor(name string) repoKeys {
	infix := ""
	if name != "" {
		infix = "_" + name
	}
	base := KeyPrefix + infix
	return repoKeys{
		url:      base + KeySuffixURL,
		username: base + KeySuffixUsername,
		password: base + KeySuffixPassword,
		apiToken: base + KeySuffixAPIToken,
	}
}

// repoNames extracts the sorted, distinct repository names from keys. The
// empty name stands for the unnamed repository.
func repoNames(keys []string, log *logging.Logger) []string {
	seen := make(map[string]struct{})
	for _, key := range keys {
		if !strings.HasPrefix(key, KeyPrefix) || !strings.HasSuffix(key, KeySuffixURL) ||
			len(key) < len(KeyPrefix)+len(KeySuffixURL) {
			continue
		}
		infix := key[len(KeyPrefix) : len(key)-len(KeySuffixURL)]
		switch {
		case infix == "":
			seen[""] = struct{}{}
		case strings.HasPrefix(infix, "_") && len(infix) > 1:
			seen[infix[1:]] = struct{}{}
		default:
			log.Detail("Ignoring " + key + ": expected " + KeyPrefix + "_<NAME>" + KeySuffixURL)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookup(src configsource.Lookup, key string) string {
	v, _ := src.Get(key)
	return v
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func containsPlaceholder(s string) bool {
	return strings.Contains(s, PlaceholderProjectDir) || strings.Contains(s, PlaceholderProjectBaseDir)
}

// substituteProjectDir replaces every project directory placeholder with
// rootPath. A '/' is inserted when the placeholder is directly followed by
// something other than a slash, so "${maven.multiModuleProjectDirectory}.mvn"
// and "${maven.multiModuleProjectDirectory}/.mvn" render the same.
func substituteProjectDir(s, rootPath string) string {
	for _, placeholder := range []string{PlaceholderProjectDir, PlaceholderProjectBaseDir} {
		var b strings.Builder
		rest := s
		for {
			i := strings.Index(rest, placeholder)
			if i < 0 {
				b.WriteString(rest)
				break
			}
			b.WriteString(rest[:i])
			b.WriteString(rootPath)
			rest = rest[i+len(placeholder):]
			if rest != "" && rest[0] != '/' {
				b.WriteByte('/')
			}
		}
		s = b.String()
	}
	return s
}

// uriPath renders path as the path component of a file URI: absolute, with
// forward slashes, a leading slash before Windows drive letters and no
// trailing slash.
func uriPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

// fileURI renders path as a file URI. Directories get a trailing slash.
func fileURI(path string, isDir bool) string {
	p := uriPath(path)
	if isDir {
		p += "/"
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
