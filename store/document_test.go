package store

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"airplane-seating-cli/model"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	savedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := model.NewInventory()

	mixed := model.NewInventory()
	if err := mixed.Occupy([]string{"1A", "1B", "20G"}, []string{"Alice", "Bob", "Zoë"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	fullFirst := model.NewInventory()
	var ids, names []string
	for _, seat := range fullFirst.ScanOrder() {
		if seat.Class == model.First {
			ids = append(ids, seat.ID())
			names = append(names, "Passenger "+seat.ID())
		}
	}
	if err := fullFirst.Occupy(ids, names); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cases := map[string]*model.Inventory{
		"fresh":      fresh,
		"mixed":      mixed,
		"full first": fullFirst,
	}
	for name, inv := range cases {
		t.Run(name, func(t *testing.T) {
			payload, err := Encode(inv, savedAt)
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			got, err := Decode(payload)
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			assertSameSeats(t, inv, got)
			for _, class := range model.FareClasses {
				if inv.AvailableCount(class) != got.AvailableCount(class) {
					t.Fatalf("expected %d available %s seats, got %d", inv.AvailableCount(class), class, got.AvailableCount(class))
				}
			}
		})
	}
}

func TestEncode_WritesVersionAndClassKeys(t *testing.T) {
	payload, err := Encode(model.NewInventory(), time.Now())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	text := string(payload)
	if !strings.Contains(text, `"version": 1`) {
		t.Fatalf("expected version field, got %s", text[:80])
	}
	if !strings.Contains(text, `"class": "first"`) || !strings.Contains(text, `"class": "economy"`) {
		t.Fatal("expected fare classes to be written as keys")
	}
}

func TestDecode_RejectsCorruptDocuments(t *testing.T) {
	valid := mutateDocument(t, func(doc *document) {})

	cases := []struct {
		name    string
		payload []byte
	}{
		{name: "not json", payload: []byte("{seats: nope")},
		{name: "empty", payload: []byte("")},
		{name: "wrong version", payload: mutateDocument(t, func(doc *document) { doc.Version = 99 })},
		{name: "missing seat", payload: mutateDocument(t, func(doc *document) { doc.Seats = doc.Seats[1:] })},
		{name: "duplicate seat", payload: mutateDocument(t, func(doc *document) { doc.Seats[1] = doc.Seats[0] })},
		{name: "occupied without name", payload: mutateDocument(t, func(doc *document) { doc.Seats[0].Occupied = true })},
		{name: "name without occupied", payload: mutateDocument(t, func(doc *document) { doc.Seats[0].PassengerName = "Ghost" })},
		{name: "blank name", payload: mutateDocument(t, func(doc *document) {
			doc.Seats[0].Occupied = true
			doc.Seats[0].PassengerName = "   "
		})},
		{name: "wrong class", payload: mutateDocument(t, func(doc *document) { doc.Seats[0].Class = model.Economy })},
		{name: "aisle seat", payload: mutateDocument(t, func(doc *document) { doc.Seats[0].Column = "D" })},
		{name: "wide column", payload: mutateDocument(t, func(doc *document) { doc.Seats[0].Column = "AB" })},
		{name: "unknown class", payload: []byte(strings.Replace(string(valid), `"class": "first"`, `"class": "business"`, 1))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := Decode(tc.payload)
			if !errors.Is(err, model.ErrCorruptState) {
				t.Fatalf("expected ErrCorruptState, got %v", err)
			}
			if inv != nil {
				t.Fatal("expected no inventory for corrupt payload")
			}
		})
	}
}

func mutateDocument(t *testing.T, mutate func(doc *document)) []byte {
	t.Helper()
	payload, err := Encode(model.NewInventory(), time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	mutate(&doc)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return out
}
