package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"airplane-seating-cli/queue"
)

func newEventsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Follow booking confirmations from the message broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.AMQPURL == "" {
				return errors.New("SEATING_AMQP_URL is not set")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger, closer, err := newLogger(opts.cfg, true)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			out := cmd.OutOrStdout()
			consumer := queue.NewConsumer(opts.cfg.AMQPURL, opts.cfg.AMQPQueue, logger)
			return consumer.Run(ctx, func(event queue.BookingConfirmedEvent) error {
				_, err := fmt.Fprintln(out, formatEvent(event))
				return err
			})
		},
	}
}

func formatEvent(event queue.BookingConfirmedEvent) string {
	pairs := make([]string, 0, len(event.Seats))
	for i, seat := range event.Seats {
		if i < len(event.Passengers) {
			pairs = append(pairs, seat+" "+event.Passengers[i])
		} else {
			pairs = append(pairs, seat)
		}
	}
	return fmt.Sprintf("%s  %s  %s Class  %s",
		event.ConfirmedAt.Local().Format(time.DateTime), event.BookingID, event.Class, strings.Join(pairs, ", "))
}
