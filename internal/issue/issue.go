// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// None marks an ActionableError without a catalog page.
const None Id = 0

const (
	ConfigLoadFailedId Id = iota + 1
	IncompleteCredentialsId
	InvalidFlagValueId
	SourceLoadFailedId
	SettingsParseFailedId
	SettingsWriteFailedId
	ProjectRootNotFoundId
)

type (
	// Id identifies a catalog page.
	Id int

	// MarkdownMsg is the Markdown body of a catalog page.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog page: Markdown help for one kind of failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Markdown returns the page body followed by its documentation links.
func (i *Issue) Markdown() string {
	var b strings.Builder
	b.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		b.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			b.WriteString("- <" + string(link) + ">\n")
		}
	}
	return b.String()
}

// Render renders the page for the terminal with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	mavenSettingsDoc HttpLink = "https://maven.apache.org/settings.html"

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The mvnenv configuration file could not be read or does not match the schema.

## Things you can try:
- Print the location mvnenv reads its configuration from:
~~~
$ mvnenv config path
~~~

- Compare your file with the defaults:
~~~
$ mvnenv config dump
~~~

- Recreate the file from scratch:
~~~
$ mvnenv config init --force
~~~

## Example configuration:
~~~cue
profile_id: "repositoriesFromSysEnv"
defaults: {
	env_repos_first: true
}
default_repositories: [
	{id: "central", url: "https://repo.maven.apache.org/maven2"},
]
~~~`,
	}

	incompleteCredentialsIssue = &Issue{
		id: IncompleteCredentialsId,
		mdMsg: `
# Repository credentials are incomplete!

A username was configured for a repository but its password is missing or
blank. No repository was added.

## Things you can try:
- Set the password next to the username:
~~~
$ export MVN_SETTINGS_REPO_MYCOMP_USERNAME=deployer
$ export MVN_SETTINGS_REPO_MYCOMP_PASSWORD=...
~~~

- Use a token instead of username and password:
~~~
$ export MVN_SETTINGS_REPO_MYCOMP_API_TOKEN=...
~~~

- Remove the username if the repository allows anonymous access.`,
		docLinks: []HttpLink{mavenSettingsDoc},
	}

	invalidFlagValueIssue = &Issue{
		id: InvalidFlagValueId,
		mdMsg: `
# Invalid toggle value!

One of the boolean toggles holds a value that is neither true nor false.
The default from the configuration file was used instead.

## Accepted values:
- true: ` + "`1`, `t`, `true`" + `
- false: ` + "`0`, `f`, `false`" + `

Case does not matter.`,
	}

	sourceLoadFailedIssue = &Issue{
		id: SourceLoadFailedId,
		mdMsg: `
# Failed to read a property source!

A file passed with ` + "`--env-file`" + ` or ` + "`--properties`" + `, or the
project's ` + "`.mvn/maven.config`" + `, could not be read.

## Things you can try:
- Check that the path exists and is readable
- Append ` + "`?`" + ` to the path to skip the file when it is missing:
~~~
$ mvnenv apply --env-file .env.local?
~~~`,
	}

	settingsParseFailedIssue = &Issue{
		id: SettingsParseFailedId,
		mdMsg: `
# Failed to parse settings.xml!

The existing Maven settings file is not a well-formed settings document.

## Things you can try:
- Validate the file with Maven itself:
~~~
$ mvn help:effective-settings
~~~

- Point mvnenv at another file:
~~~
$ mvnenv apply --settings path/to/settings.xml
~~~`,
		docLinks: []HttpLink{mavenSettingsDoc},
	}

	settingsWriteFailedIssue = &Issue{
		id: SettingsWriteFailedId,
		mdMsg: `
# Failed to write settings!

The generated settings could not be written.

## Things you can try:
- Check the permissions of the output directory
- Write to standard output and redirect:
~~~
$ mvnenv apply > settings.xml
~~~`,
	}

	projectRootNotFoundIssue = &Issue{
		id: ProjectRootNotFoundId,
		mdMsg: `
# Project root not found!

The directory given with ` + "`--project-root`" + ` does not exist.

## Things you can try:
- Omit the flag to use the nearest directory containing ` + "`.mvn`" + `
- Pass the directory holding the top-level ` + "`pom.xml`" + ``,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		incompleteCredentialsIssue.Id(): incompleteCredentialsIssue,
		invalidFlagValueIssue.Id():      invalidFlagValueIssue,
		sourceLoadFailedIssue.Id():      sourceLoadFailedIssue,
		settingsParseFailedIssue.Id():   settingsParseFailedIssue,
		settingsWriteFailedIssue.Id():   settingsWriteFailedIssue,
		projectRootNotFoundIssue.Id():   projectRootNotFoundIssue,
	}
)

// Ids returns the ids of all catalog pages in ascending order.
func Ids() []Id {
	return slices.Sorted(maps.Keys(issues))
}

// Get returns the catalog page for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
