package domain

import "errors"

var (
	ErrInvalidCapacity   = errors.New("invalid capacity")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrFlightExists      = errors.New("flight already exists")
	ErrNoSeatsAvailable  = errors.New("no seats available")
	ErrInvalidSeat       = errors.New("seat does not exist on flight")
	ErrSeatAlreadyBooked = errors.New("seat already booked")

	ErrInvalidFlightID   = errors.New("flight id must follow format EDR followed by 5 digits")
	ErrInvalidSeatNumber = errors.New("seat number must be a row number (1-999) followed by a seat letter (A-F)")
	ErrInvalidPassenger  = errors.New("invalid passenger")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidCapacity, "INVALID_CAPACITY"},
	{ErrFlightNotFound, "FLIGHT_NOT_FOUND"},
	{ErrFlightExists, "FLIGHT_EXISTS"},
	{ErrNoSeatsAvailable, "NO_SEATS_AVAILABLE"},
	{ErrInvalidSeat, "INVALID_SEAT"},
	{ErrSeatAlreadyBooked, "SEAT_ALREADY_BOOKED"},
	{ErrInvalidFlightID, "INVALID_FLIGHT_ID"},
	{ErrInvalidSeatNumber, "INVALID_SEAT_NUMBER"},
	{ErrInvalidPassenger, "INVALID_PASSENGER"},
}

// ErrorCode returns a stable code for err, or "UNKNOWN" when err does not
// wrap any of the domain errors.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return "UNKNOWN"
}
