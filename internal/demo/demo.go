// Package demo compares the batch strategies on identical workloads.
package demo

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightseats/config"
	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/service/booking"
	"github.com/Domenick1991/flightseats/internal/service/flights"
)

// Run is the outcome of one strategy on a freshly seeded registry.
type Run struct {
	Strategy booking.Strategy
	Result   *booking.BatchResult
}

func (r Run) String() string {
	return fmt.Sprintf("%-10s %s", r.Strategy, r.Result)
}

// FlightIDs returns count sequential ids starting at EDR10000.
func FlightIDs(count int) []domain.FlightID {
	ids := make([]domain.FlightID, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, domain.FlightID(fmt.Sprintf("EDR%05d", 10000+i)))
	}
	return ids
}

// Requests builds n any-seat requests spread round-robin over flights.
func Requests(n int, flights []domain.FlightID) ([]domain.BookingRequest, error) {
	if n > 0 && len(flights) == 0 {
		return nil, fmt.Errorf("no flights to book")
	}
	requests := make([]domain.BookingRequest, 0, n)
	for i := 0; i < n; i++ {
		p, err := domain.NewPassenger(fmt.Sprintf("Passenger %d", i), fmt.Sprintf("passenger%d@example.com", i))
		if err != nil {
			return nil, err
		}
		requests = append(requests, domain.BookingRequest{Passenger: p, FlightID: flights[i%len(flights)]})
	}
	return requests, nil
}

// Compare seeds a new registry per strategy and processes the same requests
// on each. Options are applied to every booking service it builds.
func Compare(ctx context.Context, cfg config.DemoConfig, workers int, opts ...booking.BookingServiceOption) ([]Run, error) {
	ids := FlightIDs(cfg.Flights)
	requests, err := Requests(cfg.Requests, ids)
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(booking.Strategies()))
	for _, strategy := range booking.Strategies() {
		registry := flights.NewFlightService()
		for _, id := range ids {
			if _, err := registry.CreateFlight(ctx, id, cfg.SeatsPerFlight); err != nil {
				return nil, fmt.Errorf("seed %s: %w", id, err)
			}
		}

		result, err := booking.NewBookingService(registry, opts...).Process(ctx, strategy, requests, workers)
		if err != nil {
			return nil, err
		}
		runs = append(runs, Run{Strategy: strategy, Result: result})
	}
	return runs, nil
}
