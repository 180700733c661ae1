package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"airplane-seating-cli/model"
)

var classByLabel = map[string]model.FareClass{
	"First Class":   model.First,
	"Economy Class": model.Economy,
}

// Interactive prompts, replaced in tests.
var (
	promptClass = promptSelectClass
	promptCount = promptSeatCount
	promptName  = promptPassengerName
)

func newAssignCmd(opts *rootOptions) *cobra.Command {
	var (
		class string
		count int
		names []string
	)
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Book seats for a group of passengers",
		Long: `Book count seats of one class, one per passenger name. Missing values
are asked for interactively.`,
		Example: `  seating assign --class first --count 2 --name "Ada Lovelace" --name "Alan Turing"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				fare model.FareClass
				err  error
			)
			if class == "" {
				if fare, err = promptClass(); err != nil {
					return err
				}
			} else if fare, err = model.ParseFareClass(class); err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				if count, err = promptCount(fare); err != nil {
					return err
				}
			}
			if len(names) == 0 {
				for i := 0; i < count; i++ {
					name, err := promptName(i + 1)
					if err != nil {
						return err
					}
					names = append(names, name)
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

			booking, err := rt.svc.Assign(ctx, model.AssignmentRequest{Class: fare, Count: count, Names: names})
			if err != nil {
				return err
			}
			if err := rt.saveLocal(ctx); err != nil {
				return fmt.Errorf("booking %s confirmed but not saved: %w", booking.ID, err)
			}
			renderBooking(cmd.OutOrStdout(), booking)
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "fare class: first or economy")
	cmd.Flags().IntVar(&count, "count", 0, "number of seats")
	cmd.Flags().StringArrayVar(&names, "name", nil, "passenger name, once per seat")
	return cmd
}

func renderBooking(out io.Writer, booking model.Booking) {
	fmt.Fprintf(out, "Booking %s confirmed (%s Class)\n", booking.ID, booking.Class)
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Seat", "Passenger"})
	for i, seat := range booking.SeatIDs {
		name := ""
		if i < len(booking.Passengers) {
			name = booking.Passengers[i]
		}
		t.AppendRow(table.Row{seat, name})
	}
	t.Render()
}

func promptSelectClass() (model.FareClass, error) {
	labels := maps.Keys(classByLabel)
	sort.Strings(labels)
	selectClass := promptui.Select{
		Label: "Select Class",
		Items: labels,
		Size:  len(labels),
	}
	_, label, err := selectClass.Run()
	if err != nil {
		return 0, err
	}
	class, ok := classByLabel[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", model.ErrUnknownFareClass, label)
	}
	return class, nil
}

func promptSeatCount(class model.FareClass) (int, error) {
	validate := func(input string) error {
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || n < 1 {
			return errors.New("enter a positive number")
		}
		return nil
	}
	prompt := promptui.Prompt{
		Label:    fmt.Sprintf("Seats in %s Class", class),
		Validate: validate,
	}
	result, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(result))
}

func promptPassengerName(n int) (string, error) {
	validate := func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New("name cannot be empty")
		}
		return nil
	}
	prompt := promptui.Prompt{
		Label:    fmt.Sprintf("Passenger %d", n),
		Validate: validate,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
