package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/service/booking"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFlightExists),
		errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrSeatAlreadyBooked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrInvalidFlightID),
		errors.Is(err, domain.ErrInvalidSeatNumber),
		errors.Is(err, domain.ErrInvalidSeat),
		errors.Is(err, domain.ErrInvalidPassenger),
		errors.Is(err, booking.ErrUnknownStrategy):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": domain.ErrorCode(err)})
}
