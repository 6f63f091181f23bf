package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shelf/internal/library"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog counts for the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				stats, err := sess.store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Profile:  %s\n", sess.profile.ID)
				fmt.Fprintf(out, "Database: %s\n", sess.store.Path())

				rows := [][]string{
					{"Items", strconv.Itoa(stats.Items)},
					{"Watched", strconv.Itoa(stats.Watched)},
				}
				for _, format := range []library.Format{library.FormatDVD, library.FormatBluRay, library.Format4K} {
					if count := stats.ByFormat[format]; count > 0 {
						rows = append(rows, []string{string(format), strconv.Itoa(count)})
					}
				}
				rows = append(rows, []string{"Lists", strconv.Itoa(stats.Lists)})

				fmt.Fprintln(out, renderTable(
					[]string{"Metric", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
