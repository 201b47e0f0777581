// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mvnenv/mvnenv/internal/repofromenv"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"

	// originFilesystem is reported for the implicit file repository.
	originFilesystem = "filesystem"
)

// repositoryView is the redacted form of a repository printed by discover.
// Passwords and tokens never appear in it.
type repositoryView struct {
	ID       string `json:"id" yaml:"id"`
	URL      string `json:"url" yaml:"url"`
	Auth     string `json:"auth" yaml:"auth"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Origin   string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

func newDiscoverCommand(app *App, opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the repositories defined in the environment",
		Long: `List the repositories found in the layered configuration sources and the
implicit file repository in .mvn/repository, in the order apply adds them.

Credentials are redacted: only the username of basic credentials is shown.`,
		Example: `  mvnenv discover
  mvnenv discover --format json
  mvnenv discover --env-file .env.ci --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatYAML, formatJSON:
			default:
				return fmt.Errorf("invalid --format %q: must be one of %s, %s, %s", format, formatText, formatYAML, formatJSON)
			}
			if err := runDiscover(cmd.Context(), app, opts, format); err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, yaml or json")

	return cmd
}

func runDiscover(ctx context.Context, app *App, opts *globalOptions, format string) error {
	inv, err := app.prepare(ctx, opts)
	if err != nil {
		return err
	}

	repos, err := (&repofromenv.Discoverer{FS: app.FS, Logger: inv.log}).Collect(inv.src, inv.projectRoot)
	if err != nil {
		return err
	}

	views := make([]repositoryView, 0, len(repos))
	for _, r := range repos {
		views = append(views, viewOf(r, inv))
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case formatYAML:
		enc := yaml.NewEncoder(app.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	default:
		renderRepositories(app.stdout, views)
		return nil
	}
}

func viewOf(r repofromenv.Repository, inv *invocation) repositoryView {
	v := repositoryView{
		ID:   r.ID,
		URL:  r.URL,
		Auth: r.Auth().Kind().String(),
	}
	if basic, ok := r.Auth().(repofromenv.BasicAuth); ok {
		v.Username = basic.Username
	}
	if key, ok := repofromenv.URLKey(r.ID); ok {
		v.Origin, _ = inv.src.Origin(key)
	} else if r.ID == repofromenv.ImplicitRepoID {
		v.Origin = originFilesystem
	}
	return v
}

func renderRepositories(w io.Writer, views []repositoryView) {
	if len(views) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No repositories found."))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Repositories (%d)", len(views))))
	for _, v := range views {
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(v.ID), v.URL)
		details := "auth: " + v.Auth
		if v.Username != "" {
			details += ", user: " + v.Username
		}
		if v.Origin != "" {
			details += ", from: " + v.Origin
		}
		fmt.Fprintf(w, "    %s\n", VerboseStyle.Render(details))
	}
}
