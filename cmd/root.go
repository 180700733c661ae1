package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"airplane-seating-cli/config"
	"airplane-seating-cli/tui"
)

type rootOptions struct {
	server string
	store  string
	state  string

	version string
	commit  string

	cfg config.Config
}

// NewRootCmd builds the full command tree.
func NewRootCmd(version, commit string) *cobra.Command {
	opts := &rootOptions{version: version, commit: commit}

	rootCmd := &cobra.Command{
		Use:   "seating",
		Short: "Airplane seat assignment",
		Long: `Assign First and Economy class seats to passengers, browse the cabin
and keep the seating saved between runs. Run without a command for the
interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.close()
			return tui.Run(rt.svc, opts.cfg.LogFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", "", "seating service URL (default $SEATING_SERVER_URL; empty for local state)")
	flags.StringVar(&opts.store, "store", "", "state backend: file, redis or mysql (default $SEATING_STORE)")
	flags.StringVar(&opts.state, "state", "", "state file path for the file backend (default $SEATING_STATE_PATH)")

	rootCmd.AddCommand(
		newSeatsCmd(opts),
		newAvailabilityCmd(opts),
		newAssignCmd(opts),
		newManifestCmd(opts),
		newResetCmd(opts),
		newServeCmd(opts),
		newEventsCmd(opts),
		newVersionCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.server != "" {
		cfg.ServerURL = o.server
	}
	if o.store != "" {
		cfg.Store = o.store
	}
	if o.state != "" {
		cfg.StatePath = o.state
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(version, commit string) {
	if err := NewRootCmd(version, commit).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seating %s", opts.version)
			if opts.commit != "none" && opts.commit != "" {
				fmt.Fprintf(out, " (%s)", opts.commit)
			}
			fmt.Fprintln(out)
		},
	}
}
