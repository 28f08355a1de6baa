package flights

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Domenick1991/flightseats/internal/domain"
	"github.com/Domenick1991/flightseats/internal/ledger"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	CreateFlight(ctx context.Context, id domain.FlightID, capacity int) (*ledger.SeatLedger, error)
	List(ctx context.Context) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id domain.FlightID) (domain.FlightSummary, error)
	AvailableSeats(ctx context.Context, id domain.FlightID) ([]domain.SeatNumber, error)
}

// FlightCache stores the flight listing between reads.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.FlightSummary, error)
	SetFlights(ctx context.Context, flights []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

// FlightService is the registry of seat ledgers keyed by flight id.
type FlightService struct {
	mu      sync.RWMutex
	ledgers map[domain.FlightID]*ledger.SeatLedger

	cache  FlightCache
	opts   []ledger.Option
	logger *zap.Logger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithLogger(logger *zap.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.logger = logger
	}
}

// WithLedgerOptions applies opts to every ledger the service creates.
func WithLedgerOptions(opts ...ledger.Option) FlightServiceOption {
	return func(s *FlightService) {
		s.opts = append(s.opts, opts...)
	}
}

func NewFlightService(opts ...FlightServiceOption) *FlightService {
	s := &FlightService{
		ledgers: make(map[domain.FlightID]*ledger.SeatLedger),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFlight registers a new ledger. An id that is already registered is
// rejected so bookings held by the existing ledger are never orphaned.
func (s *FlightService) CreateFlight(ctx context.Context, id domain.FlightID, capacity int) (*ledger.SeatLedger, error) {
	l, err := ledger.New(id, capacity, s.opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.ledgers[id]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrFlightExists)
	}
	s.ledgers[id] = l
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.logger.Warn("failed to invalidate flights cache", zap.Error(err))
		}
	}
	s.logger.Info("flight created", zap.String("flight_id", id.String()), zap.Int("capacity", capacity))
	return l, nil
}

func (s *FlightService) Lookup(id domain.FlightID) (*ledger.SeatLedger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[id]
	return l, ok
}

func (s *FlightService) List(ctx context.Context) ([]domain.FlightSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return s.withLiveCounts(cached), nil
		}
	}

	s.mu.RLock()
	flights := make([]domain.FlightSummary, 0, len(s.ledgers))
	for _, l := range s.ledgers {
		flights = append(flights, l.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(flights, func(i, j int) bool { return flights[i].FlightID < flights[j].FlightID })

	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

// withLiveCounts keeps the cached order but reads every summary from the
// ledgers, which change on every booking. Entries for flights this
// registry does not hold are dropped.
func (s *FlightService) withLiveCounts(cached []domain.FlightSummary) []domain.FlightSummary {
	flights := make([]domain.FlightSummary, 0, len(cached))
	for _, f := range cached {
		if l, ok := s.Lookup(f.FlightID); ok {
			flights = append(flights, l.Summary())
		}
	}
	return flights
}

func (s *FlightService) GetByID(_ context.Context, id domain.FlightID) (domain.FlightSummary, error) {
	l, ok := s.Lookup(id)
	if !ok {
		return domain.FlightSummary{}, fmt.Errorf("flight %s: %w", id, domain.ErrFlightNotFound)
	}
	return l.Summary(), nil
}

func (s *FlightService) AvailableSeats(_ context.Context, id domain.FlightID) ([]domain.SeatNumber, error) {
	l, ok := s.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrFlightNotFound)
	}
	return l.AvailableSeats(), nil
}

var _ FlightUseCase = (*FlightService)(nil)
