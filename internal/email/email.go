package email

import (
	"context"

	"github.com/Domenick1991/flightseats/internal/domain"
	"go.uber.org/zap"
)

// Sender delivers booking notifications. Delivery is a structured log line;
// there is no mail transport.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(_ context.Context, event domain.BookingEvent) error {
	s.logger.Info("send email",
		zap.String("to", event.Email),
		zap.String("type", event.Type),
		zap.String("flight_id", event.FlightID),
		zap.String("seat", event.Seat),
		zap.String("booking_id", event.BookingID),
	)
	return nil
}
