package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) CreateFlight(ctx context.Context, id domain.FlightID, capacity int) (*ledger.SeatLedger, error) {
	args := m.Called(ctx, id, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SeatLedger), args.Error(1)
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.FlightSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id domain.FlightID) (domain.FlightSummary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.FlightSummary), args.Error(1)
}

func (m *MockFlightUseCase) AvailableSeats(ctx context.Context, id domain.FlightID) ([]domain.SeatNumber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatNumber), args.Error(1)
}

func newTestContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("POST", "/flights", createFlightRequest{FlightID: "EDR10000", Capacity: 150})

	flight, err := ledger.New("EDR10000", 150)
	require.NoError(t, err)
	mockService.On("CreateFlight", c.Request.Context(), domain.FlightID("EDR10000"), 150).Return(flight, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response domain.FlightSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.FlightSummary{FlightID: "EDR10000", Capacity: 150, Available: 150}, response)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_create_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		body     createFlightRequest
		mockErr  error
		expected int
	}{
		{"invalid id", createFlightRequest{FlightID: "XYZ", Capacity: 10}, nil, http.StatusBadRequest},
		{"invalid capacity", createFlightRequest{FlightID: "EDR10000", Capacity: 0}, domain.ErrInvalidCapacity, http.StatusBadRequest},
		{"duplicate", createFlightRequest{FlightID: "EDR10000", Capacity: 10}, domain.ErrFlightExists, http.StatusConflict},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockFlightUseCase{}
			handler := NewFlightHandler(mockService)
			c, w := newTestContext("POST", "/flights", tc.body)
			if tc.mockErr != nil {
				mockService.On("CreateFlight", c.Request.Context(), domain.FlightID(tc.body.FlightID), tc.body.Capacity).Return(nil, tc.mockErr)
			}

			handler.create(c)

			assert.Equal(t, tc.expected, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/flights", nil)

	flights := []domain.FlightSummary{
		{FlightID: "EDR10000", Capacity: 150, Booked: 50, Available: 100},
	}
	mockService.On("List", c.Request.Context()).Return(flights, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response []domain.FlightSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, flights, response)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/flights/EDR10000", nil)
	c.Params = gin.Params{{Key: "id", Value: "EDR10000"}}

	flight := domain.FlightSummary{FlightID: "EDR10000", Capacity: 100, Booked: 50, Available: 50}
	mockService.On("GetByID", c.Request.Context(), domain.FlightID("EDR10000")).Return(flight, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/flights/EDR99999", nil)
	c.Params = gin.Params{{Key: "id", Value: "EDR99999"}}

	mockService.On("GetByID", c.Request.Context(), domain.FlightID("EDR99999")).Return(domain.FlightSummary{}, domain.ErrFlightNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FLIGHT_NOT_FOUND")
}

func TestFlightHandler_seats(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/flights/EDR10000/seats", nil)
	c.Params = gin.Params{{Key: "id", Value: "EDR10000"}}

	mockService.On("AvailableSeats", c.Request.Context(), domain.FlightID("EDR10000")).Return([]domain.SeatNumber{"1B", "1C"}, nil)

	handler.seats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response seatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, seatsResponse{FlightID: "EDR10000", Available: []string{"1B", "1C"}}, response)
}
