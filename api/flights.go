package api

import (
	"net/http"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightID string `json:"flight_id"`
	Capacity int    `json:"capacity"`
}

type seatsResponse struct {
	FlightID  string   `json:"flight_id"`
	Available []string `json:"available"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.GET("/:id/seats", h.seats)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := domain.ParseFlightID(req.FlightID)
	if err != nil {
		writeError(c, err)
		return
	}

	flight, err := h.service.CreateFlight(c.Request.Context(), id, req.Capacity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight.Summary())
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := domain.ParseFlightID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) seats(c *gin.Context) {
	id, err := domain.ParseFlightID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	seats, err := h.service.AvailableSeats(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := seatsResponse{FlightID: id.String(), Available: make([]string, 0, len(seats))}
	for _, s := range seats {
		resp.Available = append(resp.Available, s.String())
	}
	c.JSON(http.StatusOK, resp)
}
