package service

import (
	"strings"

	"airplane-seating-cli/model"
)

// Allocator picks seats first-fit in row/column order. It keeps no state
// between calls beyond its policy.
type Allocator struct {
	policy model.Policy
}

func NewAllocator(policy model.Policy) Allocator {
	return Allocator{policy: policy}
}

func (a Allocator) Policy() model.Policy {
	return a.policy
}

// Assign reserves req.Count seats of req.Class for req.Names and returns the
// seat ids in scan order. On any error inv is left untouched.
//
// Assign is not idempotent: repeating a request books a second set of seats.
func (a Allocator) Assign(inv *model.Inventory, req model.AssignmentRequest) ([]string, error) {
	if len(req.Names) != req.Count {
		return nil, &model.AllocationError{
			Kind:      model.ErrNameCountMismatch,
			Class:     req.Class,
			Requested: req.Count,
			Names:     len(req.Names),
		}
	}
	if !req.Class.Valid() {
		return nil, model.ErrUnknownFareClass
	}
	limit := a.policy.Limit(req.Class)
	if req.Count < 1 || req.Count > limit {
		return nil, &model.AllocationError{
			Kind:      model.ErrInvalidSeatCount,
			Class:     req.Class,
			Requested: req.Count,
			Limit:     limit,
		}
	}
	for _, name := range req.Names {
		if strings.TrimSpace(name) == "" {
			return nil, model.ErrInvalidPassengerName
		}
	}

	picked := make([]string, 0, req.Count)
	available := 0
	for _, seat := range inv.ScanOrder() {
		if seat.Class != req.Class || seat.Occupied {
			continue
		}
		available++
		if len(picked) < req.Count {
			picked = append(picked, seat.ID())
		}
	}
	if len(picked) < req.Count {
		return nil, &model.AllocationError{
			Kind:      model.ErrInsufficientSeats,
			Class:     req.Class,
			Requested: req.Count,
			Available: available,
		}
	}

	if err := inv.Occupy(picked, req.Names); err != nil {
		return nil, err
	}
	return picked, nil
}
