// Package ledger holds the per-flight seat occupancy authority.
//
// A SeatLedger is the only place where a seat moves from available to
// booked. All mutations on one ledger are serialized by its mutex, so the
// "is the seat free" check and the commit happen as one atomic step.
// Occupancy is append-only: a booked seat is never released.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/google/uuid"
)

type SeatLedger struct {
	flightID domain.FlightID
	seats    []domain.SeatNumber
	index    map[domain.SeatNumber]int

	mu       sync.RWMutex
	occupied map[domain.SeatNumber]domain.Booking
	// every seat before cursor is occupied
	cursor int

	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*SeatLedger)

// WithClock overrides the booking timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *SeatLedger) {
		l.now = now
	}
}

// WithIDGenerator overrides the booking id source.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(l *SeatLedger) {
		l.newID = newID
	}
}

func New(flightID domain.FlightID, capacity int, opts ...Option) (*SeatLedger, error) {
	if capacity <= 0 || capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("capacity %d for flight %s must be between 1 and %d: %w",
			capacity, flightID, domain.MaxCapacity, domain.ErrInvalidCapacity)
	}

	seats := domain.SeatLayout(capacity)
	index := make(map[domain.SeatNumber]int, capacity)
	for i, s := range seats {
		index[s] = i
	}

	l := &SeatLedger{
		flightID: flightID,
		seats:    seats,
		index:    index,
		occupied: make(map[domain.SeatNumber]domain.Booking, capacity),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *SeatLedger) FlightID() domain.FlightID {
	return l.flightID
}

func (l *SeatLedger) Capacity() int {
	return len(l.seats)
}

// Seats returns the full seat set in generation order.
func (l *SeatLedger) Seats() []domain.SeatNumber {
	out := make([]domain.SeatNumber, len(l.seats))
	copy(out, l.seats)
	return out
}

// AvailableSeats returns a snapshot of the free seats in generation order.
func (l *SeatLedger) AvailableSeats() []domain.SeatNumber {
	l.mu.RLock()
	defer l.mu.RUnlock()

	available := make([]domain.SeatNumber, 0, len(l.seats)-len(l.occupied))
	for _, s := range l.seats[l.cursor:] {
		if _, taken := l.occupied[s]; !taken {
			available = append(available, s)
		}
	}
	return available
}

func (l *SeatLedger) HasAvailableSeats() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.occupied) < len(l.seats)
}

func (l *SeatLedger) BookedCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.occupied)
}

// BookAnySeat commits the first free seat in generation order to the passenger.
func (l *SeatLedger) BookAnySeat(passenger domain.Passenger) (domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advanceCursor()
	if l.cursor == len(l.seats) {
		return domain.Booking{}, fmt.Errorf("flight %s: %w", l.flightID, domain.ErrNoSeatsAvailable)
	}
	return l.commit(passenger, l.seats[l.cursor]), nil
}

func (l *SeatLedger) BookSpecificSeat(passenger domain.Passenger, seat domain.SeatNumber) (domain.Booking, error) {
	if _, ok := l.index[seat]; !ok {
		return domain.Booking{}, fmt.Errorf("seat %s on flight %s: %w", seat, l.flightID, domain.ErrInvalidSeat)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.occupied[seat]; taken {
		return domain.Booking{}, fmt.Errorf("seat %s on flight %s: %w", seat, l.flightID, domain.ErrSeatAlreadyBooked)
	}
	return l.commit(passenger, seat), nil
}

// Booking returns the booking holding seat, if any.
func (l *SeatLedger) Booking(seat domain.SeatNumber) (domain.Booking, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.occupied[seat]
	return b, ok
}

// Bookings returns a snapshot of every booking, ordered by seat.
func (l *SeatLedger) Bookings() []domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Booking, 0, len(l.occupied))
	for _, s := range l.seats {
		if b, ok := l.occupied[s]; ok {
			out = append(out, b)
		}
	}
	return out
}

func (l *SeatLedger) Summary() domain.FlightSummary {
	booked := l.BookedCount()
	return domain.FlightSummary{
		FlightID:  l.flightID,
		Capacity:  len(l.seats),
		Booked:    booked,
		Available: len(l.seats) - booked,
	}
}

// commit must be called with mu held for writing.
func (l *SeatLedger) commit(passenger domain.Passenger, seat domain.SeatNumber) domain.Booking {
	b := domain.Booking{
		ID:        l.newID(),
		Passenger: passenger,
		FlightID:  l.flightID,
		Seat:      seat,
		CreatedAt: l.now(),
	}
	l.occupied[seat] = b
	l.advanceCursor()
	return b
}

func (l *SeatLedger) advanceCursor() {
	for l.cursor < len(l.seats) {
		if _, taken := l.occupied[l.seats[l.cursor]]; !taken {
			return
		}
		l.cursor++
	}
}
