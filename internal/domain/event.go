package domain

import "time"

const EventBookingCreated = "booking_created"

// BookingEvent is the message published for every committed booking.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	FlightID      string    `json:"flight_id"`
	Seat          string    `json:"seat"`
	PassengerName string    `json:"passenger_name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewBookingEvent(eventType string, b Booking) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID.String(),
		FlightID:      b.FlightID.String(),
		Seat:          b.Seat.String(),
		PassengerName: b.Passenger.Name,
		Email:         b.Passenger.Email,
		CreatedAt:     b.CreatedAt,
	}
}
