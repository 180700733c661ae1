package store

import (
	"encoding/json"
	"fmt"
	"time"

	"airplane-seating-cli/model"
)

// DocumentVersion is the schema version written by Encode.
const DocumentVersion = 1

type document struct {
	Version int          `json:"version"`
	SavedAt time.Time    `json:"saved_at"`
	Seats   []seatRecord `json:"seats"`
}

type seatRecord struct {
	Row           int             `json:"row"`
	Column        string          `json:"column"`
	Class         model.FareClass `json:"class"`
	Occupied      bool            `json:"occupied"`
	PassengerName string          `json:"passenger_name"`
}

// Encode serializes every seat of inv, in inventory order.
func Encode(inv *model.Inventory, savedAt time.Time) ([]byte, error) {
	seats := inv.Seats()
	doc := document{
		Version: DocumentVersion,
		SavedAt: savedAt.UTC(),
		Seats:   make([]seatRecord, 0, len(seats)),
	}
	for _, seat := range seats {
		doc.Seats = append(doc.Seats, seatRecord{
			Row:           seat.Row,
			Column:        string(seat.Column),
			Class:         seat.Class,
			Occupied:      seat.Occupied,
			PassengerName: seat.PassengerName,
		})
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode seating state: %w", err)
	}
	return payload, nil
}

// Decode parses a payload written by Encode. Any parse failure, unsupported
// version or invariant violation yields an error wrapping model.ErrCorruptState
// and no inventory.
func Decode(payload []byte) (*model.Inventory, error) {
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptState, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", model.ErrCorruptState, doc.Version)
	}

	seats := make([]model.Seat, 0, len(doc.Seats))
	for i, rec := range doc.Seats {
		if len(rec.Column) != 1 {
			return nil, fmt.Errorf("%w: seat %d has column %q", model.ErrCorruptState, i, rec.Column)
		}
		seats = append(seats, model.Seat{
			Row:           rec.Row,
			Column:        rec.Column[0],
			Class:         rec.Class,
			Occupied:      rec.Occupied,
			PassengerName: rec.PassengerName,
		})
	}
	inv, err := model.RestoreInventory(seats)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptState, err)
	}
	return inv, nil
}
