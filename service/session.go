package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"airplane-seating-cli/model"
)

// StateStore persists a whole inventory. Load reports found=false, with a nil
// error, when nothing has been saved yet.
type StateStore interface {
	Save(ctx context.Context, inv *model.Inventory) error
	Load(ctx context.Context) (*model.Inventory, bool, error)
}

// BookingPublisher announces confirmed bookings to other systems.
type BookingPublisher interface {
	PublishBookingConfirmed(ctx context.Context, booking model.Booking) error
}

var ErrNoStateStore = errors.New("no state store configured")

// Session owns one inventory and serializes every operation on it behind a
// single mutex, so an availability scan and its commit are never interleaved
// with another Assign, Save, Load or Reset.
type Session struct {
	mu        sync.Mutex
	inventory *model.Inventory
	allocator Allocator
	store     StateStore
	publisher BookingPublisher
	logger    *log.Logger
	now       func() time.Time
	newID     func() string
}

type SessionOption func(*Session)

func WithPolicy(policy model.Policy) SessionOption {
	return func(s *Session) {
		s.allocator = NewAllocator(policy)
	}
}

func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithPublisher(publisher BookingPublisher) SessionOption {
	return func(s *Session) {
		s.publisher = publisher
	}
}

// WithClock overrides the time source used for booking timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInventory starts the session from an existing inventory instead of a
// fresh cabin.
func WithInventory(inv *model.Inventory) SessionOption {
	return func(s *Session) {
		if inv != nil {
			s.inventory = inv
		}
	}
}

// NewSession creates a session over a fresh inventory. store may be nil, in
// which case Save and Load fail with ErrNoStateStore.
func NewSession(store StateStore, opts ...SessionOption) *Session {
	s := &Session{
		inventory: model.NewInventory(),
		allocator: NewAllocator(model.DefaultPolicy()),
		store:     store,
		logger:    log.New(io.Discard, "", 0),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Policy() model.Policy {
	return s.allocator.Policy()
}

// Assign books seats and returns the confirmation. Publishing the booking
// event is best effort; a failure is logged and does not undo the booking.
func (s *Session) Assign(ctx context.Context, req model.AssignmentRequest) (model.Booking, error) {
	booking, err := s.assign(req)
	if err != nil {
		return model.Booking{}, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
			s.logger.Printf("booking action=publish id=%s err=%q", booking.ID, err)
		}
	}
	return booking, nil
}

func (s *Session) assign(req model.AssignmentRequest) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seatIDs, err := s.allocator.Assign(s.inventory, req)
	if err != nil {
		s.logger.Printf("booking action=assign class=%s count=%d result=rejected err=%q", req.Class, req.Count, err)
		return model.Booking{}, err
	}

	booking := model.Booking{
		ID:         s.newID(),
		Class:      req.Class,
		SeatIDs:    seatIDs,
		Passengers: trimNames(req.Names),
		CreatedAt:  s.now(),
	}
	s.logger.Printf("booking action=assign id=%s class=%s seats=%s result=ok", booking.ID, booking.Class, strings.Join(seatIDs, ","))
	return booking, nil
}

func (s *Session) Seats(_ context.Context, key model.SortKey) ([]model.SeatSummary, error) {
	if key != model.BySeatNumber && key != model.ByPassengerName {
		return nil, model.ErrUnknownSortKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.SortedView(key), nil
}

func (s *Session) Availability(_ context.Context) (model.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.AvailabilityOf(s.inventory, s.allocator.Policy()), nil
}

// Inventory returns a copy of the current inventory.
func (s *Session) Inventory() *model.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Clone()
}

func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNoStateStore
	}
	if err := s.store.Save(ctx, s.inventory); err != nil {
		s.logger.Printf("state action=save err=%q", err)
		return err
	}
	s.logger.Printf("state action=save result=ok")
	return nil
}

// Load replaces the inventory with the saved one. When nothing was saved, or
// the saved state is unusable, the current inventory is kept.
func (s *Session) Load(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return false, ErrNoStateStore
	}
	inv, found, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Printf("state action=load err=%q", err)
		return false, err
	}
	if !found {
		s.logger.Printf("state action=load result=not_found")
		return false, nil
	}
	s.inventory = inv
	s.logger.Printf("state action=load result=ok")
	return true, nil
}

// Reset discards every booking and starts over with a fresh cabin.
func (s *Session) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = model.NewInventory()
	s.logger.Printf("state action=reset result=ok")
	return nil
}

func trimNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.TrimSpace(name)
	}
	return out
}
