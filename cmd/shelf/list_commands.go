package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shelf/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage named, ordered lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCreateCommand(ctx))
	cmd.AddCommand(newListLsCommand(ctx))
	cmd.AddCommand(newListShowCommand(ctx))
	cmd.AddCommand(newListAddCommand(ctx))
	cmd.AddCommand(newListRmCommand(ctx))
	cmd.AddCommand(newListMoveCommand(ctx, library.MoveUp))
	cmd.AddCommand(newListMoveCommand(ctx, library.MoveDown))
	cmd.AddCommand(newListDeleteCommand(ctx))

	return cmd
}

// resolveList accepts either a list name or a numeric id.
func resolveList(cmd *cobra.Command, sess *session, ref string) (*library.List, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		list, err := sess.store.ListByID(cmd.Context(), id)
		if err != nil {
			return nil, err
		}
		if list != nil {
			return list, nil
		}
	}
	list, err := sess.store.ListByName(cmd.Context(), ref)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("no list named %q", ref)
	}
	return list, nil
}

func newListCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				list, err := sess.store.CreateList(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created list %q\n", list.Name)
				return nil
			})
		},
	}
}

func newListLsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show all lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				lists, err := sess.store.Lists(cmd.Context())
				if err != nil {
					return err
				}
				if len(lists) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No lists.")
					return nil
				}
				rows := make([][]string, 0, len(lists))
				for _, list := range lists {
					entries, err := sess.store.ListItems(cmd.Context(), list.ID)
					if err != nil {
						return err
					}
					rows = append(rows, []string{
						strconv.FormatInt(list.ID, 10),
						list.Name,
						strconv.Itoa(len(entries)),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Items"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newListShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list>",
		Short: "Show a list's items in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				list, err := resolveList(cmd, sess, args[0])
				if err != nil {
					return err
				}
				entries, err := sess.store.ListItems(cmd.Context(), list.ID)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "List %q is empty.\n", list.Name)
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for i, entry := range entries {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						strconv.FormatInt(entry.Item.ID, 10),
						entry.Item.Title,
						yearLabel(entry.Item.Year),
						watchedLabel(entry.Item.Watched),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "ID", "Title", "Year", "Watched"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newListAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <item-id>",
		Short: "Append an item to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(func(sess *session) error {
				list, err := resolveList(cmd, sess, args[0])
				if err != nil {
					return err
				}
				item, err := sess.store.ItemByID(cmd.Context(), itemID)
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("no item with id %d", itemID)
				}
				if err := sess.store.AddToList(cmd.Context(), list.ID, itemID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %q\n", titleLine(item), list.Name)
				return nil
			})
		},
	}
}

func newListRmCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <list> <item-id>",
		Short: "Remove an item from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(func(sess *session) error {
				list, err := resolveList(cmd, sess, args[0])
				if err != nil {
					return err
				}
				removed, err := sess.store.RemoveFromList(cmd.Context(), list.ID, itemID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("item %d is not on list %q", itemID, list.Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d from %q\n", itemID, list.Name)
				return nil
			})
		},
	}
}

func newListMoveCommand(ctx *commandContext, direction library.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   string(direction) + " <list> <item-id>",
		Short: "Move an item " + string(direction) + " one position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(func(sess *session) error {
				list, err := resolveList(cmd, sess, args[0])
				if err != nil {
					return err
				}
				if err := sess.store.MoveItem(cmd.Context(), list.ID, itemID, direction); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved #%d %s in %q\n", itemID, direction, list.Name)
				return nil
			})
		},
	}
}

func newListDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list>",
		Short: "Delete a list (items stay in the catalog)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				list, err := resolveList(cmd, sess, args[0])
				if err != nil {
					return err
				}
				removed, err := sess.store.DeleteList(cmd.Context(), list.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no list named %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %q\n", list.Name)
				return nil
			})
		},
	}
}
