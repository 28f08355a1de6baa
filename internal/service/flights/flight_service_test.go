package flights

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.FlightSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.FlightSummary) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFlightService_CreateFlight(t *testing.T) {
	service := NewFlightService()
	ctx := context.Background()

	l, err := service.CreateFlight(ctx, "EDR10000", 150)
	require.NoError(t, err)
	assert.Equal(t, 150, l.Capacity())

	got, ok := service.Lookup("EDR10000")
	require.True(t, ok)
	assert.Same(t, l, got)

	_, ok = service.Lookup("EDR99999")
	assert.False(t, ok)
}

func TestFlightService_CreateFlight_InvalidCapacity(t *testing.T) {
	service := NewFlightService()

	l, err := service.CreateFlight(context.Background(), "EDR10000", 0)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	_, ok := service.Lookup("EDR10000")
	assert.False(t, ok)
}

func TestFlightService_CreateFlight_DuplicateRejected(t *testing.T) {
	service := NewFlightService()
	ctx := context.Background()

	original, err := service.CreateFlight(ctx, "EDR10000", 10)
	require.NoError(t, err)
	_, err = original.BookAnySeat(domain.Passenger{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = service.CreateFlight(ctx, "EDR10000", 20)
	assert.ErrorIs(t, err, domain.ErrFlightExists)

	got, _ := service.Lookup("EDR10000")
	assert.Same(t, original, got)
	assert.Equal(t, 1, got.BookedCount())
}

func TestFlightService_CreateFlight_ConcurrentSameID(t *testing.T) {
	service := NewFlightService()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateFlight(ctx, "EDR10000", 10)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			assert.ErrorIs(t, err, domain.ErrFlightExists)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockCache := &MockCache{}
	service := NewFlightService(WithCache(mockCache))
	ctx := context.Background()

	mockCache.On("InvalidateFlights", ctx).Return(nil).Twice()
	_, err := service.CreateFlight(ctx, "EDR10001", 12)
	require.NoError(t, err)
	_, err = service.CreateFlight(ctx, "EDR10000", 6)
	require.NoError(t, err)

	expected := []domain.FlightSummary{
		{FlightID: "EDR10000", Capacity: 6, Booked: 0, Available: 6},
		{FlightID: "EDR10001", Capacity: 12, Booked: 0, Available: 12},
	}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockCache.On("SetFlights", ctx, expected).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockCache := &MockCache{}
	service := NewFlightService(WithCache(mockCache))
	ctx := context.Background()

	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()
	_, err := service.CreateFlight(ctx, "EDR10000", 150)
	require.NoError(t, err)

	cached := []domain.FlightSummary{
		{FlightID: "EDR10000", Capacity: 150, Booked: 0, Available: 150},
		{FlightID: "EDR77777", Capacity: 6, Booked: 0, Available: 6},
	}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []domain.FlightSummary{{FlightID: "EDR10000", Capacity: 150, Booked: 0, Available: 150}}, result)
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "SetFlights")
}

// memoryCache keeps whatever was stored last, like Redis within its TTL.
type memoryCache struct {
	mu      sync.Mutex
	flights []domain.FlightSummary
}

func (c *memoryCache) GetFlights(context.Context) ([]domain.FlightSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flights, nil
}

func (c *memoryCache) SetFlights(_ context.Context, flights []domain.FlightSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flights = flights
	return nil
}

func (c *memoryCache) InvalidateFlights(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flights = nil
	return nil
}

func TestFlightService_List_CachedListingReflectsBookings(t *testing.T) {
	cache := &memoryCache{}
	service := NewFlightService(WithCache(cache))
	ctx := context.Background()

	l, err := service.CreateFlight(ctx, "EDR10000", 6)
	require.NoError(t, err)

	first, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.FlightSummary{{FlightID: "EDR10000", Capacity: 6, Booked: 0, Available: 6}}, first)
	require.NotNil(t, cache.flights)

	_, err = l.BookAnySeat(domain.Passenger{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	second, err := service.List(ctx)
	require.NoError(t, err)
	summary, err := service.GetByID(ctx, "EDR10000")
	require.NoError(t, err)
	assert.Equal(t, []domain.FlightSummary{summary}, second)
	assert.Equal(t, 1, second[0].Booked)
	assert.Equal(t, 5, second[0].Available)
}

func TestFlightService_List_CacheError(t *testing.T) {
	mockCache := &MockCache{}
	service := NewFlightService(WithCache(mockCache))
	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(nil, errors.New("cache error")).Once()
	mockCache.On("SetFlights", ctx, []domain.FlightSummary{}).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Empty(t, result)
	mockCache.AssertExpectations(t)
}

func TestFlightService_CreateFlight_InvalidateErrorIgnored(t *testing.T) {
	mockCache := &MockCache{}
	service := NewFlightService(WithCache(mockCache))
	ctx := context.Background()

	mockCache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	_, err := service.CreateFlight(ctx, "EDR10000", 6)
	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestFlightService_GetByID(t *testing.T) {
	service := NewFlightService()
	ctx := context.Background()

	l, err := service.CreateFlight(ctx, "EDR10000", 6)
	require.NoError(t, err)
	_, err = l.BookSpecificSeat(domain.Passenger{Name: "A", Email: "a@example.com"}, "1B")
	require.NoError(t, err)

	summary, err := service.GetByID(ctx, "EDR10000")
	require.NoError(t, err)
	assert.Equal(t, domain.FlightSummary{FlightID: "EDR10000", Capacity: 6, Booked: 1, Available: 5}, summary)

	seats, err := service.AvailableSeats(ctx, "EDR10000")
	require.NoError(t, err)
	assert.Equal(t, []domain.SeatNumber{"1A", "1C", "1D", "1E", "1F"}, seats)

	_, err = service.GetByID(ctx, "EDR99999")
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	_, err = service.AvailableSeats(ctx, "EDR99999")
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestFlightService_NoCache(t *testing.T) {
	service := NewFlightService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.CreateFlight(ctx, domain.FlightID(fmt.Sprintf("EDR1000%d", 2-i)), 6)
		require.NoError(t, err)
	}

	result, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, domain.FlightID("EDR10000"), result[0].FlightID)
	assert.Equal(t, domain.FlightID("EDR10002"), result[2].FlightID)
}
