package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Passenger struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func NewPassenger(name, email string) (Passenger, error) {
	return NewPassengerWithID(uuid.New(), name, email)
}

func NewPassengerWithID(id uuid.UUID, name, email string) (Passenger, error) {
	if strings.TrimSpace(name) == "" {
		return Passenger{}, fmt.Errorf("name cannot be blank: %w", ErrInvalidPassenger)
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return Passenger{}, fmt.Errorf("invalid email format %q: %w", email, ErrInvalidPassenger)
	}
	return Passenger{ID: id, Name: name, Email: email}, nil
}

// BookingRequest asks for a seat on a flight. An empty Seat lets the
// flight pick the next free seat.
type BookingRequest struct {
	Passenger Passenger
	FlightID  FlightID
	Seat      SeatNumber
}

func (r BookingRequest) String() string {
	if r.Seat == "" {
		return fmt.Sprintf("%s -> %s", r.Passenger.Email, r.FlightID)
	}
	return fmt.Sprintf("%s -> %s/%s", r.Passenger.Email, r.FlightID, r.Seat)
}

// Booking is the immutable record of one passenger occupying one seat.
type Booking struct {
	ID        uuid.UUID  `json:"id"`
	Passenger Passenger  `json:"passenger"`
	FlightID  FlightID   `json:"flight_id"`
	Seat      SeatNumber `json:"seat"`
	CreatedAt time.Time  `json:"created_at"`
}
