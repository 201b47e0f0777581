// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvnenv/mvnenv/internal/settings"
)

func newSummaryCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize repositories and mirrors of settings.xml",
		Long: `Print the repositories of the active profiles and the mirrors configured
in settings.xml, in the format mvnenv logs before and after apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), opts)
			if err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			s, _, err := loadSettings(app, &invocation{cfg: cfg}, opts)
			if err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			fmt.Fprintln(app.stdout, settings.Summary(s))
			return nil
		},
	}
}
