package booking

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/ledger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BookingUseCase interface {
	BookSeat(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	Process(ctx context.Context, strategy Strategy, requests []domain.BookingRequest, workers int) (*BatchResult, error)
}

// FlightLookup resolves a flight id to its ledger.
type FlightLookup interface {
	Lookup(id domain.FlightID) (*ledger.SeatLedger, bool)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService drives booking attempts against the registered flights,
// one at a time or as batches under a chosen Strategy.
type BookingService struct {
	flights            FlightLookup
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	latency            time.Duration
	workers            int
	logger             *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithLatency sets the simulated I/O cost paid by every booking attempt.
func WithLatency(latency time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.latency = latency
	}
}

// WithWorkers sets the default pool size for StrategyFixedPool.
func WithWorkers(workers int) BookingServiceOption {
	return func(s *BookingService) {
		s.workers = workers
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(flights FlightLookup, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		flights: flights,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookSeat performs a single booking attempt and publishes its event.
// Requests without a seat get the next free seat on the flight.
func (s *BookingService) BookSeat(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	booking, err := s.book(req)
	if err != nil {
		return domain.Booking{}, err
	}
	s.announce(ctx, booking)
	return booking, nil
}

// book is one attempt: lookup, injected latency, ledger commit. Nothing else
// may block here.
func (s *BookingService) book(req domain.BookingRequest) (domain.Booking, error) {
	flight, ok := s.flights.Lookup(req.FlightID)
	if !ok {
		return domain.Booking{}, fmt.Errorf("flight %s: %w", req.FlightID, domain.ErrFlightNotFound)
	}

	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	if req.Seat == "" {
		return flight.BookAnySeat(req.Passenger)
	}
	return flight.BookSpecificSeat(req.Passenger, req.Seat)
}

func (s *BookingService) Process(ctx context.Context, strategy Strategy, requests []domain.BookingRequest, workers int) (*BatchResult, error) {
	switch strategy {
	case StrategySequential:
		return s.ProcessSequential(ctx, requests), nil
	case StrategyFixedPool:
		if workers <= 0 {
			workers = s.workers
		}
		return s.ProcessFixedPool(ctx, requests, workers), nil
	case StrategyUnbounded:
		return s.ProcessUnbounded(ctx, requests), nil
	}
	return nil, fmt.Errorf("%q: %w", strategy, ErrUnknownStrategy)
}

// ProcessSequential books requests one by one in input order.
func (s *BookingService) ProcessSequential(ctx context.Context, requests []domain.BookingRequest) *BatchResult {
	agg := NewAggregator(len(requests))
	start := time.Now()
	for _, req := range requests {
		s.attempt(agg, req)
	}
	return s.finish(ctx, StrategySequential, agg, start)
}

// ProcessFixedPool books requests on at most workers goroutines at a time.
// A non-positive workers uses GOMAXPROCS.
func (s *BookingService) ProcessFixedPool(ctx context.Context, requests []domain.BookingRequest, workers int) *BatchResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	return s.runGroup(ctx, StrategyFixedPool, &g, requests)
}

// ProcessUnbounded books every request on its own goroutine.
func (s *BookingService) ProcessUnbounded(ctx context.Context, requests []domain.BookingRequest) *BatchResult {
	var g errgroup.Group
	return s.runGroup(ctx, StrategyUnbounded, &g, requests)
}

func (s *BookingService) runGroup(ctx context.Context, strategy Strategy, g *errgroup.Group, requests []domain.BookingRequest) *BatchResult {
	agg := NewAggregator(len(requests))
	start := time.Now()
	for _, req := range requests {
		req := req
		g.Go(func() error {
			s.attempt(agg, req)
			return nil
		})
	}
	// attempts never return an error; failures live in the aggregator
	_ = g.Wait()
	return s.finish(ctx, strategy, agg, start)
}

func (s *BookingService) attempt(agg *Aggregator, req domain.BookingRequest) {
	booking, err := s.book(req)
	if err != nil {
		agg.RecordFailure(req, err)
		return
	}
	agg.RecordSuccess(booking)
}

// finish stops the clock, then publishes events for the batch's bookings.
func (s *BookingService) finish(ctx context.Context, strategy Strategy, agg *Aggregator, start time.Time) *BatchResult {
	result := agg.Finalize(time.Since(start))
	s.logger.Info("booking batch completed",
		zap.String("strategy", string(strategy)),
		zap.Int("total", result.Total()),
		zap.Int("successes", result.SuccessCount()),
		zap.Int("failures", result.FailureCount()),
		zap.Duration("duration", result.Duration()),
	)
	for _, booking := range result.Successes() {
		s.announce(ctx, booking)
	}
	return result
}

func (s *BookingService) announce(ctx context.Context, booking domain.Booking) {
	if err := s.publish(ctx, domain.EventBookingCreated, booking); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("booking_id", booking.ID.String()), zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := domain.NewBookingEvent(eventType, booking)
	key := booking.ID.String()
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
