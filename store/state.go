package store

import (
	"context"
	"errors"
	"time"

	"airplane-seating-cli/model"
)

// ErrStateNotFound is returned by a Backend when nothing has been saved.
var ErrStateNotFound = errors.New("no saved seating state")

// Backend reads and writes one opaque state payload.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}

// StateStore converts inventories to documents and keeps them in a Backend.
type StateStore struct {
	backend Backend
	now     func() time.Time
}

func NewStateStore(backend Backend) *StateStore {
	return &StateStore{
		backend: backend,
		now:     time.Now,
	}
}

func (s *StateStore) Save(ctx context.Context, inv *model.Inventory) error {
	payload, err := Encode(inv, s.now())
	if err != nil {
		return err
	}
	return s.backend.Write(ctx, payload)
}

// Load returns the saved inventory. found is false, with a nil error, when the
// backend holds no state.
func (s *StateStore) Load(ctx context.Context) (*model.Inventory, bool, error) {
	payload, err := s.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	inv, err := Decode(payload)
	if err != nil {
		return nil, false, err
	}
	return inv, true, nil
}
