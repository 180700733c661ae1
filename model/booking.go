package model

import "time"

// AssignmentRequest asks for Count seats of Class, one per name in Names.
type AssignmentRequest struct {
	Class FareClass `json:"class"`
	Count int       `json:"count"`
	Names []string  `json:"passengers"`
}

// Policy bounds how many seats a single request may take per class.
type Policy struct {
	MaxPerBooking map[FareClass]int
}

const (
	DefaultMaxFirst   = 2
	DefaultMaxEconomy = 3
)

func DefaultPolicy() Policy {
	return Policy{MaxPerBooking: map[FareClass]int{
		First:   DefaultMaxFirst,
		Economy: DefaultMaxEconomy,
	}}
}

// Limit returns the per-request maximum for the class, falling back to the
// default policy when unset.
func (p Policy) Limit(class FareClass) int {
	if n, ok := p.MaxPerBooking[class]; ok && n > 0 {
		return n
	}
	return DefaultPolicy().MaxPerBooking[class]
}

type ClassAvailability struct {
	Class         FareClass `json:"class"`
	Capacity      int       `json:"capacity"`
	Available     int       `json:"available"`
	MaxPerBooking int       `json:"max_per_booking"`
}

type Availability struct {
	Classes []ClassAvailability `json:"classes"`
}

// AvailabilityOf summarizes inv under the given policy.
func AvailabilityOf(inv *Inventory, policy Policy) Availability {
	out := Availability{Classes: make([]ClassAvailability, 0, len(FareClasses))}
	for _, class := range FareClasses {
		out.Classes = append(out.Classes, ClassAvailability{
			Class:         class,
			Capacity:      inv.Capacity(class),
			Available:     inv.AvailableCount(class),
			MaxPerBooking: policy.Limit(class),
		})
	}
	return out
}

func (a Availability) For(class FareClass) (ClassAvailability, bool) {
	for _, c := range a.Classes {
		if c.Class == class {
			return c, true
		}
	}
	return ClassAvailability{}, false
}

// Booking is the confirmation of one successful assignment.
type Booking struct {
	ID         string    `json:"id"`
	Class      FareClass `json:"class"`
	SeatIDs    []string  `json:"seats"`
	Passengers []string  `json:"passengers"`
	CreatedAt  time.Time `json:"created_at"`
}
