package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Inventory owns the full ordered seat set of one aircraft. It is not safe for
// concurrent use; service.Session serializes access to it.
type Inventory struct {
	seats []Seat
	index map[string]int
	scan  []int
}

// NewInventory builds the fixed cabin with every seat available.
func NewInventory() *Inventory {
	inv, err := newInventory(cabinLayout.seats())
	if err != nil {
		panic(fmt.Sprintf("model: invalid cabin layout: %v", err))
	}
	return inv
}

// RestoreInventory rebuilds an inventory from a previously saved seat list.
// The list must describe exactly the cabin layout, once per seat, and every
// seat must satisfy the occupied/passenger invariant. Order is preserved.
func RestoreInventory(seats []Seat) (*Inventory, error) {
	expected := cabinLayout.seats()
	if len(seats) != len(expected) {
		return nil, fmt.Errorf("expected %d seats, got %d", len(expected), len(seats))
	}
	for _, seat := range seats {
		class, ok := cabinLayout.ClassOf(seat.Row, seat.Column)
		if !ok {
			return nil, fmt.Errorf("seat %s is not part of the cabin", seat.ID())
		}
		if class != seat.Class {
			return nil, fmt.Errorf("seat %s must be %s class, got %s", seat.ID(), class, seat.Class)
		}
	}
	return newInventory(seats)
}

func newInventory(seats []Seat) (*Inventory, error) {
	inv := &Inventory{
		seats: make([]Seat, len(seats)),
		index: make(map[string]int, len(seats)),
		scan:  make([]int, len(seats)),
	}
	copy(inv.seats, seats)
	for i, seat := range inv.seats {
		if err := seat.validate(); err != nil {
			return nil, err
		}
		id := seat.ID()
		if _, exists := inv.index[id]; exists {
			return nil, fmt.Errorf("duplicate seat %s", id)
		}
		inv.index[id] = i
		inv.scan[i] = i
	}
	sort.SliceStable(inv.scan, func(a, b int) bool {
		return seatLess(inv.seats[inv.scan[a]], inv.seats[inv.scan[b]])
	})
	return inv, nil
}

func seatLess(a, b Seat) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

func (inv *Inventory) Len() int {
	return len(inv.seats)
}

// Seats returns a copy of every seat in inventory order.
func (inv *Inventory) Seats() []Seat {
	out := make([]Seat, len(inv.seats))
	copy(out, inv.seats)
	return out
}

// ScanOrder returns a copy of every seat ordered by row, then column.
func (inv *Inventory) ScanOrder() []Seat {
	out := make([]Seat, 0, len(inv.scan))
	for _, i := range inv.scan {
		out = append(out, inv.seats[i])
	}
	return out
}

func (inv *Inventory) Seat(id string) (Seat, bool) {
	i, ok := inv.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Seat{}, false
	}
	return inv.seats[i], true
}

// AvailableCount returns how many seats of the class are unoccupied.
func (inv *Inventory) AvailableCount(class FareClass) int {
	count := 0
	for _, seat := range inv.seats {
		if seat.Class == class && !seat.Occupied {
			count++
		}
	}
	return count
}

func (inv *Inventory) Capacity(class FareClass) int {
	count := 0
	for _, seat := range inv.seats {
		if seat.Class == class {
			count++
		}
	}
	return count
}

// Occupy marks every listed seat occupied by the passenger at the same
// position. Nothing is modified unless every seat exists, is free and is
// listed once, and every name is non-blank.
func (inv *Inventory) Occupy(ids []string, names []string) error {
	if len(ids) != len(names) {
		return &AllocationError{Kind: ErrNameCountMismatch, Requested: len(ids), Names: len(names)}
	}
	positions := make([]int, len(ids))
	seen := make(map[int]bool, len(ids))
	for i, id := range ids {
		pos, ok := inv.index[strings.ToUpper(strings.TrimSpace(id))]
		if !ok {
			return fmt.Errorf("%w: %s", ErrSeatNotFound, id)
		}
		if seen[pos] {
			return fmt.Errorf("seat %s listed twice: %w", id, ErrSeatOccupied)
		}
		if inv.seats[pos].Occupied {
			return fmt.Errorf("%w: %s", ErrSeatOccupied, id)
		}
		if strings.TrimSpace(names[i]) == "" {
			return fmt.Errorf("%w: seat %s has a blank name", ErrInvalidPassengerName, id)
		}
		seen[pos] = true
		positions[i] = pos
	}
	for i, pos := range positions {
		inv.seats[pos].Occupied = true
		inv.seats[pos].PassengerName = strings.TrimSpace(names[i])
	}
	return nil
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{
		seats: inv.Seats(),
		index: make(map[string]int, len(inv.index)),
		scan:  make([]int, len(inv.scan)),
	}
	for id, i := range inv.index {
		out.index[id] = i
	}
	copy(out.scan, inv.scan)
	return out
}

// Check verifies the occupied/passenger invariant on every seat.
func (inv *Inventory) Check() error {
	var errs []error
	for _, seat := range inv.seats {
		if err := seat.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
