package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"airplane-seating-cli/api"
	"airplane-seating-cli/model"
	"airplane-seating-cli/service"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr     string
		autosave bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the seating HTTP service",
		Long: `Serve the seating operations over HTTP. State is loaded from the
configured backend at startup and saved again on shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := opts.open(ctx, true)
			if err != nil {
				return err
			}
			defer rt.close()

			found, err := rt.session.Load(ctx)
			if err != nil {
				return err
			}
			rt.logger.Printf("state action=load store=%s found=%t", opts.cfg.Store, found)

			var svc service.Seating = rt.session
			if autosave {
				svc = autosaving{Seating: rt.session, logger: rt.logger}
			}

			e := api.New(svc, rt.logger)
			rt.logger.Printf("http action=listen addr=%s", addr)
			serveErr := api.Serve(ctx, e, addr)

			if err := rt.session.Save(context.Background()); err != nil {
				rt.logger.Printf("state action=save err=%q", err)
				if serveErr == nil {
					serveErr = err
				}
			}
			return serveErr
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $SEATING_HTTP_ADDR or :8080)")
	cmd.Flags().BoolVar(&autosave, "autosave", true, "save state after every booking and reset")
	return cmd
}

// autosaving persists state after each successful mutation.
type autosaving struct {
	service.Seating
	logger *log.Logger
}

func (a autosaving) Assign(ctx context.Context, req model.AssignmentRequest) (model.Booking, error) {
	booking, err := a.Seating.Assign(ctx, req)
	if err != nil {
		return booking, err
	}
	if err := a.Seating.Save(ctx); err != nil {
		a.logger.Printf("state action=autosave booking=%s err=%q", booking.ID, err)
	}
	return booking, nil
}

func (a autosaving) Reset(ctx context.Context) error {
	if err := a.Seating.Reset(ctx); err != nil {
		return err
	}
	return a.Seating.Save(ctx)
}
