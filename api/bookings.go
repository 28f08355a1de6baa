package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID      string `json:"flight_id"`
	Seat          string `json:"seat"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email"`
}

type bookingResponse struct {
	ID            string `json:"id"`
	FlightID      string `json:"flight_id"`
	Seat          string `json:"seat"`
	PassengerID   string `json:"passenger_id"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email"`
	CreatedAt     string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.BookSeat(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (r createBookingRequest) toDomain() (domain.BookingRequest, error) {
	id, err := domain.ParseFlightID(r.FlightID)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	var seat domain.SeatNumber
	if r.Seat != "" {
		if seat, err = domain.ParseSeatNumber(r.Seat); err != nil {
			return domain.BookingRequest{}, err
		}
	}
	passenger, err := domain.NewPassenger(r.PassengerName, r.Email)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	return domain.BookingRequest{Passenger: passenger, FlightID: id, Seat: seat}, nil
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID.String(),
		FlightID:      b.FlightID.String(),
		Seat:          b.Seat.String(),
		PassengerID:   b.Passenger.ID.String(),
		PassengerName: b.Passenger.Name,
		Email:         b.Passenger.Email,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339Nano),
	}
}
