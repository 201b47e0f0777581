// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mvnenv/mvnenv/internal/repofromenv"
)

// renderMarkdown is replaced in tests.
var renderMarkdown = glamour.Render

func newKeysCommand(app *App) *cobra.Command {
	var (
		raw   bool
		style string
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the recognized configuration keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md := keysReference()
			if raw {
				fmt.Fprint(app.stdout, md)
				return nil
			}
			rendered, err := renderMarkdown(md, style)
			if err != nil {
				return fmt.Errorf("failed to render key reference: %w", err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source instead of rendering it")
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style used for rendering (dark, light, notty, ...)")

	return cmd
}

// keysReference returns the Markdown reference of every key mvnenv reads.
func keysReference() string {
	var b strings.Builder

	b.WriteString("# Recognized keys\n\n")
	b.WriteString("Keys are read from `-D` defines, `--properties` files, `.mvn/maven.config`, ")
	b.WriteString("the environment and `--env-file` files, in that order of precedence.\n\n")

	b.WriteString("## Repositories\n\n")
	b.WriteString("`NAME` is empty for the unnamed repository, otherwise `_` followed by any name. ")
	b.WriteString("Repositories are added ordered by name, the unnamed one first.\n\n")
	b.WriteString("| Key | Meaning |\n|---|---|\n")
	for _, row := range [][2]string{
		{repofromenv.KeyPrefix + "NAME" + repofromenv.KeySuffixURL, "Repository URL. Blank disables the repository."},
		{repofromenv.KeyPrefix + "NAME" + repofromenv.KeySuffixUsername, "Basic auth username. Requires the password."},
		{repofromenv.KeyPrefix + "NAME" + repofromenv.KeySuffixPassword, "Basic auth password."},
		{repofromenv.KeyPrefix + "NAME" + repofromenv.KeySuffixAPIToken, "Bearer token. Wins over username and password."},
	} {
		fmt.Fprintf(&b, "| `%s` | %s |\n", row[0], row[1])
	}
	fmt.Fprintf(&b, "\nThe repository id is `%sNAME` without the leading underscore. ", repofromenv.RepoIDPrefix)
	fmt.Fprintf(&b, "`%s` and `%s` in URLs are replaced by the project root.\n\n",
		repofromenv.PlaceholderProjectDir, repofromenv.PlaceholderProjectBaseDir)

	b.WriteString("## Toggles\n\n")
	b.WriteString("| Key | Effect when true |\n|---|---|\n")
	for _, row := range [][2]string{
		{repofromenv.KeyLogVerbose, "Log repository progress at info level instead of debug."},
		{repofromenv.KeyEnvReposFirst, "Query discovered repositories before the existing ones."},
		{repofromenv.KeyDisableBypassMirrors, "Leave existing mirrors untouched."},
		{repofromenv.KeyAddDefaultRepos, "Also add the default repositories (Maven Central)."},
	} {
		fmt.Fprintf(&b, "| `%s` | %s |\n", row[0], row[1])
	}

	b.WriteString("\n## Implicit repository\n\n")
	fmt.Fprintf(&b, "A file or directory at `%s` below the project root is added as repository `%s`.\n",
		repofromenv.ImplicitRepoPath, repofromenv.ImplicitRepoID)

	return b.String()
}
