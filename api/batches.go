package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	service         booking.BookingUseCase
	defaultStrategy booking.Strategy
}

type batchRequest struct {
	Strategy string                 `json:"strategy"`
	Workers  int                    `json:"workers"`
	Requests []createBookingRequest `json:"requests"`
}

type batchResponse struct {
	Strategy       string         `json:"strategy"`
	Total          int            `json:"total"`
	Successes      int            `json:"successes"`
	Failures       int            `json:"failures"`
	SuccessRate    float64        `json:"success_rate"`
	DurationMillis int64          `json:"duration_ms"`
	FailuresByCode map[string]int `json:"failures_by_code"`
}

func NewBatchHandler(service booking.BookingUseCase, defaultStrategy booking.Strategy) *BatchHandler {
	return &BatchHandler{service: service, defaultStrategy: defaultStrategy}
}

func (h *BatchHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.run)
}

func (h *BatchHandler) run(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy := h.defaultStrategy
	if req.Strategy != "" {
		parsed, err := booking.ParseStrategy(req.Strategy)
		if err != nil {
			writeError(c, err)
			return
		}
		strategy = parsed
	}

	// malformed entries are rejected as a whole; a batch only carries valid requests
	requests := make([]domain.BookingRequest, 0, len(req.Requests))
	for i, r := range req.Requests {
		input, err := r.toDomain()
		if err != nil {
			writeError(c, fmt.Errorf("request %d: %w", i, err))
			return
		}
		requests = append(requests, input)
	}

	result, err := h.service.Process(c.Request.Context(), strategy, requests, req.Workers)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, batchResponse{
		Strategy:       string(strategy),
		Total:          result.Total(),
		Successes:      result.SuccessCount(),
		Failures:       result.FailureCount(),
		SuccessRate:    result.SuccessRate(),
		DurationMillis: result.Duration().Milliseconds(),
		FailuresByCode: result.FailuresByCode(),
	})
}
