package domain

import (
	"fmt"
	"regexp"
)

const (
	SeatsPerRow = 6
	MaxRows     = 999
	MaxCapacity = SeatsPerRow * MaxRows
)

var (
	flightIDFormat   = regexp.MustCompile(`^EDR\d{5}$`)
	seatNumberFormat = regexp.MustCompile(`^[0-9]{1,3}[A-F]$`)
)

type FlightID string

func ParseFlightID(value string) (FlightID, error) {
	if !flightIDFormat.MatchString(value) {
		return "", fmt.Errorf("%q: %w", value, ErrInvalidFlightID)
	}
	return FlightID(value), nil
}

func (id FlightID) String() string {
	return string(id)
}

type SeatNumber string

func ParseSeatNumber(value string) (SeatNumber, error) {
	if !seatNumberFormat.MatchString(value) {
		return "", fmt.Errorf("%q: %w", value, ErrInvalidSeatNumber)
	}
	return SeatNumber(value), nil
}

func (s SeatNumber) String() string {
	return string(s)
}

// SeatLayout returns the seats of a flight with the given capacity in
// generation order: 1A..1F, 2A..2F and so on.
func SeatLayout(capacity int) []SeatNumber {
	seats := make([]SeatNumber, 0, capacity)
	for i := 0; i < capacity; i++ {
		row := i/SeatsPerRow + 1
		letter := rune('A' + i%SeatsPerRow)
		seats = append(seats, SeatNumber(fmt.Sprintf("%d%c", row, letter)))
	}
	return seats
}

// FlightSummary is a point-in-time view of a flight's occupancy.
type FlightSummary struct {
	FlightID  FlightID `json:"flight_id"`
	Capacity  int      `json:"capacity"`
	Booked    int      `json:"booked"`
	Available int      `json:"available"`
}
