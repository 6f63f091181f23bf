package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"shelf/internal/backup"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog and cached posters to a zip archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session) error {
				postersDir, err := sess.profile.PostersDir()
				if err != nil {
					return err
				}

				path := outFlag
				if path == "" {
					path = fmt.Sprintf("shelf-backup-%s.zip", time.Now().Format("20060102-150405"))
				}

				file, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create archive: %w", err)
				}
				if err := backup.Export(file, sess.store.Path(), postersDir); err != nil {
					_ = file.Close()
					_ = os.Remove(path)
					return err
				}
				if err := file.Close(); err != nil {
					return fmt.Errorf("close archive: %w", err)
				}

				abs, err := filepath.Abs(path)
				if err != nil {
					abs = path
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", abs)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Archive path (default shelf-backup-<timestamp>.zip)")

	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "import <archive>",
		Short: "Replace the catalog and posters from an exported archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !forceFlag {
				return errors.New("import replaces the current catalog; re-run with --force to confirm")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read archive: %w", err)
			}

			return ctx.withSession(func(sess *session) error {
				postersDir, err := sess.profile.PostersDir()
				if err != nil {
					return err
				}
				dbPath := sess.store.Path()

				// The store must not hold the database open while its file
				// is swapped out.
				if err := sess.store.Close(); err != nil {
					return fmt.Errorf("close store: %w", err)
				}

				if err := backup.Import(bytes.NewReader(data), int64(len(data)), dbPath, postersDir); err != nil {
					if errors.Is(err, backup.ErrMissingDatabase) {
						return fmt.Errorf("%s is not a shelf backup: %w", args[0], err)
					}
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Confirm replacing the current catalog")

	return cmd
}
