package cmd

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"airplane-seating-cli/model"
)

func newSeatsCmd(opts *rootOptions) *cobra.Command {
	var (
		sortBy string
		class  string
	)
	cmd := &cobra.Command{
		Use:   "seats",
		Short: "List every seat",
		Long:  `List every seat with its class, status and passenger, sorted by seat number or passenger name.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			var filter model.FareClass
			if class != "" {
				if filter, err = model.ParseFareClass(class); err != nil {
					return err
				}
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
			if filter != 0 {
				seats = model.FilterClass(seats, filter)
			}
			renderSeats(cmd.OutOrStdout(), seats)
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "seat", "sort order: seat or name")
	cmd.Flags().StringVar(&class, "class", "", "only show seats of this class (first or economy)")
	return cmd
}

func renderSeats(out io.Writer, seats []model.SeatSummary) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Seat", "Class", "Status", "Passenger"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 30},
	})

	items := make([]table.Row, 0, len(seats))
	for _, seat := range seats {
		items = append(items, table.Row{seat.SeatID, seat.Class.String(), seat.Status, seat.PassengerName})
	}
	t.AppendRows(items)
	t.Render()
}

func newAvailabilityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "availability",
		Short: "Show free seats per class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := opts.open(ctx, false)
			if err != nil {
				return err
			}
			defer rt.close()
			if err := rt.loadLocal(ctx); err != nil {
				return err
			}

			avail, err := rt.svc.Availability(ctx)
			if err != nil {
				return err
			}
			renderAvailability(cmd.OutOrStdout(), avail)
			return nil
		},
	}
}

func renderAvailability(out io.Writer, avail model.Availability) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Class", "Capacity", "Available", "Max per booking"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Style().Options.SeparateRows = true
	for _, c := range avail.Classes {
		t.AppendRow(table.Row{c.Class.String(), strconv.Itoa(c.Capacity), strconv.Itoa(c.Available), strconv.Itoa(c.MaxPerBooking)})
	}
	t.Render()
}
