package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/library"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		yearFlag     int
		formatFlag   string
		watchedFlag  bool
		locationFlag string
		notesFlag    string
		plotFlag     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an item to the catalog by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				draft := library.ItemDraft{
					Title:    args[0],
					Year:     yearFlag,
					Plot:     plotFlag,
					Format:   library.ParseFormat(formatFlag),
					Watched:  watchedFlag,
					Location: locationFlag,
					Notes:    notesFlag,
				}
				item, err := sess.store.AddItem(cmd.Context(), draft)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", item.ID, titleLine(item))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&yearFlag, "year", 0, "Release year")
	cmd.Flags().StringVar(&formatFlag, "format", string(library.DefaultFormat), "Format (DVD, Blu-ray, 4K)")
	cmd.Flags().BoolVar(&watchedFlag, "watched", false, "Mark as watched")
	cmd.Flags().StringVar(&locationFlag, "location", "", "Physical location")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&plotFlag, "plot", "", "Plot summary")

	return cmd
}

func newLsCommand(ctx *commandContext) *cobra.Command {
	var (
		queryFlag string
		sortFlag  string
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				items, err := sess.store.Items(cmd.Context(), queryFlag, library.ParseSortKey(sortFlag))
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No items.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(itemHeaders, itemRows(items), itemAligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Filter by title substring")
	cmd.Flags().StringVar(&sortFlag, "sort", string(library.SortTitleAsc), "Sort order (title_asc, title_desc, year_desc, added_desc)")

	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			return ctx.withSession(func(sess *session) error {
				item, err := sess.store.ItemByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("no item with id %d", id)
				}
				printItem(cmd, item)
				return nil
			})
		},
	}
}

func printItem(cmd *cobra.Command, item *library.Item) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d %s\n", item.ID, titleLine(item))
	fmt.Fprintf(out, "  Format:   %s\n", item.Format)
	fmt.Fprintf(out, "  Watched:  %s\n", watchedLabel(item.Watched))
	if item.Location != "" {
		fmt.Fprintf(out, "  Location: %s\n", item.Location)
	}
	if item.Plot != "" {
		fmt.Fprintf(out, "  Plot:     %s\n", item.Plot)
	}
	if item.PosterPath != "" {
		fmt.Fprintf(out, "  Poster:   %s\n", item.PosterPath)
	}
	if item.Source != "" {
		source := item.Source
		if item.SourceID != "" {
			source += " (" + item.SourceID + ")"
		}
		fmt.Fprintf(out, "  Source:   %s\n", source)
	}
	if item.Notes != "" {
		fmt.Fprintf(out, "  Notes:    %s\n", strings.ReplaceAll(item.Notes, "\n", "\n            "))
	}
	fmt.Fprintf(out, "  Added:    %s\n", item.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		titleFlag    string
		yearFlag     int
		plotFlag     string
		formatFlag   string
		watchedFlag  bool
		locationFlag string
		notesFlag    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an existing item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			var update library.ItemUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &titleFlag
			}
			if cmd.Flags().Changed("year") {
				update.Year = &yearFlag
			}
			if cmd.Flags().Changed("plot") {
				update.Plot = &plotFlag
			}
			if cmd.Flags().Changed("format") {
				format := library.ParseFormat(formatFlag)
				update.Format = &format
			}
			if cmd.Flags().Changed("watched") {
				update.Watched = &watchedFlag
			}
			if cmd.Flags().Changed("location") {
				update.Location = &locationFlag
			}
			if cmd.Flags().Changed("notes") {
				update.Notes = &notesFlag
			}

			return ctx.withSession(func(sess *session) error {
				if err := sess.store.UpdateItem(cmd.Context(), id, update); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "New title")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "New release year (0 clears it)")
	cmd.Flags().StringVar(&plotFlag, "plot", "", "New plot summary")
	cmd.Flags().StringVar(&formatFlag, "format", "", "New format (DVD, Blu-ray, 4K)")
	cmd.Flags().BoolVar(&watchedFlag, "watched", false, "Watched state")
	cmd.Flags().StringVar(&locationFlag, "location", "", "New physical location")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "New notes")

	return cmd
}

func newRmCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			return ctx.withSession(func(sess *session) error {
				removed, err := sess.store.DeleteItem(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no item with id %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d\n", id)
				return nil
			})
		},
	}
}

func newWatchCommand(ctx *commandContext, watched bool) *cobra.Command {
	use := "watch <id>"
	short := "Mark an item as watched"
	if !watched {
		use = "unwatch <id>"
		short = "Mark an item as unwatched"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			return ctx.withSession(func(sess *session) error {
				value := watched
				if err := sess.store.UpdateItem(cmd.Context(), id, library.ItemUpdate{Watched: &value}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked #%d %s\n", id, watchedLabel(watched))
				return nil
			})
		},
	}
}
