package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/enrich"
	"shelf/internal/library"
	"shelf/internal/scanner"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <title>",
		Short: "Search the film database by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.resolver()
			if err != nil {
				return err
			}
			if !resolver.SearchConfigured() {
				return errors.New("no OMDb API key configured; set omdb.api_key or OMDB_API_KEY")
			}

			query := strings.Join(args, " ")
			results, err := resolver.SearchByTitle(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No matches for %q.\n", query)
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				rows = append(rows, []string{result.IMDbID, result.Title, result.Year})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"IMDb ID", "Title", "Year"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

type formFlags struct {
	format   string
	watched  bool
	location string
	notes    string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", string(library.DefaultFormat), "Format (DVD, Blu-ray, 4K)")
	cmd.Flags().BoolVar(&f.watched, "watched", false, "Mark as watched")
	cmd.Flags().StringVar(&f.location, "location", "", "Physical location")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *formFlags) form() enrich.ItemForm {
	return enrich.ItemForm{
		Format:   library.ParseFormat(f.format),
		Watched:  f.watched,
		Location: f.location,
		Notes:    f.notes,
	}
}

func newPullCommand(ctx *commandContext) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "pull <imdb-id>",
		Short: "Add an item from its film database id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				pipeline, err := ctx.pipeline(sess)
				if err != nil {
					return err
				}
				item, err := pipeline.AddFromSearchResult(cmd.Context(), args[0], flags.form())
				if errors.Is(err, enrich.ErrUnavailable) {
					return errors.New("no OMDb API key configured; set omdb.api_key or OMDB_API_KEY")
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", item.ID, titleLine(item))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		flags     formFlags
		imageFlag string
	)

	cmd := &cobra.Command{
		Use:   "scan [code]",
		Short: "Add an item from a barcode, given directly or decoded from an image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := scanCode(cmd, args, imageFlag)
			if err != nil {
				return err
			}

			return ctx.withSession(func(sess *session) error {
				pipeline, err := ctx.pipeline(sess)
				if err != nil {
					return err
				}
				item, err := pipeline.AddFromScan(cmd.Context(), code, flags.form())
				if err != nil {
					var unresolved *enrich.UnresolvedError
					if errors.As(err, &unresolved) {
						fmt.Fprintf(cmd.OutOrStdout(), "Code %s did not resolve to a film.\n", unresolved.Code)
						if len(unresolved.Raw) > 0 {
							fmt.Fprintf(cmd.OutOrStdout(), "Provider response:\n%s\n", unresolved.Raw)
						}
						fmt.Fprintln(cmd.OutOrStdout(), "Use `shelf add` to enter it by hand.")
						return nil
					}
					if errors.Is(err, enrich.ErrUnavailable) {
						return errors.New("no UPC API key configured; set upc.api_key or UPC_API_KEY")
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", item.ID, titleLine(item))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&imageFlag, "image", "", "Decode the barcode from an image file")

	return cmd
}

func scanCode(cmd *cobra.Command, args []string, imagePath string) (string, error) {
	if len(args) == 1 {
		code := strings.TrimSpace(args[0])
		if code == "" {
			return "", errors.New("code must not be blank")
		}
		return code, nil
	}
	if imagePath == "" {
		return "", errors.New("provide a code argument or --image")
	}

	decoder, err := scanner.NewZbarDecoder()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	code, err := decoder.Decode(cmd.Context(), data)
	if errors.Is(err, scanner.ErrNoCode) {
		return "", fmt.Errorf("no barcode found in %s", imagePath)
	}
	if err != nil {
		return "", err
	}
	return code, nil
}
