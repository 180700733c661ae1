package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"airplane-seating-cli/manifest"
	"airplane-seating-cli/model"
)

func newManifestCmd(opts *rootOptions) *cobra.Command {
	var (
		out          string
		title        string
		sortBy       string
		occupiedOnly bool
	)
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the passenger manifest as a PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(sortBy)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := opts.open(ctx, false)
			if err != nil {
				return err
			}
			defer rt.close()
			if err := rt.loadLocal(ctx); err != nil {
				return err
			}
			seats, err := rt.svc.Seats(ctx, key)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			err = manifest.Write(f, manifest.Manifest{
				Title:        title,
				GeneratedAt:  time.Now(),
				Seats:        seats,
				OccupiedOnly: occupiedOnly,
			})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Manifest written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "manifest.pdf", "output file")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.Flags().StringVar(&sortBy, "sort", "seat", "sort order: seat or name")
	cmd.Flags().BoolVar(&occupiedOnly, "occupied-only", false, "list occupied seats only")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Free every seat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := opts.open(ctx, false)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.svc.Reset(ctx); err != nil {
				return err
			}
			if err := rt.saveLocal(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All seats are free")
			return nil
		},
	}
}
