package model

import (
	"errors"
	"testing"
)

func TestSortedView_BySeatNumber(t *testing.T) {
	inv := NewInventory()
	rows := inv.SortedView(BySeatNumber)
	if len(rows) != 200 {
		t.Fatalf("expected 200 rows, got %d", len(rows))
	}
	if rows[0].SeatID != "1A" || rows[1].SeatID != "1B" || rows[2].SeatID != "1E" {
		t.Fatalf("unexpected leading seats: %s %s %s", rows[0].SeatID, rows[1].SeatID, rows[2].SeatID)
	}
	if rows[len(rows)-1].SeatID != "35G" {
		t.Fatalf("expected last seat 35G, got %s", rows[len(rows)-1].SeatID)
	}

	before := ids(rows)
	if err := inv.Occupy([]string{"3E", "20A"}, []string{"Zed", "Amy"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	after := ids(inv.SortedView(BySeatNumber))
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected seat order to ignore names, position %d changed %s -> %s", i, before[i], after[i])
		}
	}
}

func TestSortedView_ByPassengerName(t *testing.T) {
	inv := NewInventory()
	if err := inv.Occupy([]string{"10A", "2B", "1A", "6C"}, []string{"carol", "Bob", "alice", "Bob"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	rows := inv.SortedView(ByPassengerName)
	want := []string{"1A", "2B", "6C", "10A"}
	for i, id := range want {
		if rows[i].SeatID != id {
			t.Fatalf("position %d: expected %s, got %s (%s)", i, id, rows[i].SeatID, rows[i].PassengerName)
		}
	}
	for _, row := range rows[len(want):] {
		if row.PassengerName != "" || row.Status != StatusAvailable {
			t.Fatalf("expected unnamed seats last, got %+v", row)
		}
	}
	if rows[len(want)].SeatID != "1B" {
		t.Fatalf("expected unnamed seats in seat order, got %s first", rows[len(want)].SeatID)
	}
}

func TestSummary_Labels(t *testing.T) {
	inv := NewInventory()
	_ = inv.Occupy([]string{"1A"}, []string{"Alice"})
	row := inv.SortedView(BySeatNumber)[0]
	if row.Status != StatusOccupied || row.Class.String() != "First" || row.Column != "A" || row.Row != 1 {
		t.Fatalf("unexpected summary: %+v", row)
	}
}

func TestParseSortKey(t *testing.T) {
	if key, err := ParseSortKey("Passenger Name"); err != nil || key != ByPassengerName {
		t.Fatalf("expected ByPassengerName, got %v (%v)", key, err)
	}
	if key, err := ParseSortKey(""); err != nil || key != BySeatNumber {
		t.Fatalf("expected BySeatNumber default, got %v (%v)", key, err)
	}
	if _, err := ParseSortKey("price"); !errors.Is(err, ErrUnknownSortKey) {
		t.Fatalf("expected ErrUnknownSortKey, got %v", err)
	}
	if BySeatNumber.Next() != ByPassengerName || ByPassengerName.Next() != BySeatNumber {
		t.Fatal("expected Next to toggle")
	}
}

func TestFilterClassAndAvailability(t *testing.T) {
	inv := NewInventory()
	_ = inv.Occupy([]string{"1A", "6A"}, []string{"A", "B"})

	first := FilterClass(inv.SortedView(BySeatNumber), First)
	if len(first) != 20 {
		t.Fatalf("expected 20 first class rows, got %d", len(first))
	}

	avail := AvailabilityOf(inv, Policy{MaxPerBooking: map[FareClass]int{Economy: 4}})
	fc, _ := avail.For(First)
	ec, _ := avail.For(Economy)
	if fc.Available != 19 || fc.Capacity != 20 || fc.MaxPerBooking != DefaultMaxFirst {
		t.Fatalf("unexpected first availability: %+v", fc)
	}
	if ec.Available != 179 || ec.MaxPerBooking != 4 {
		t.Fatalf("unexpected economy availability: %+v", ec)
	}
}

func ids(rows []SeatSummary) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.SeatID
	}
	return out
}
