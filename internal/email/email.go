package email

import (
	"context"

	"github.com/vshevel/roombooking/internal/kafka"
	"go.uber.org/zap"
)

// Sender turns booking events into customer notifications. Delivery is a
// stand-in for a real mail integration: the notification is logged with
// everything a template would need.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("notify customer",
		zap.Uint32("customerId", event.CustomerID),
		zap.String("event", event.Type),
		zap.Uint32("bookingId", event.BookingID),
		zap.String("checkInDate", event.CheckInDate),
		zap.String("status", event.Status),
	)
	return nil
}
