package booking

import (
	"context"
	"strconv"

	"github.com/vshevel/roombooking/internal/domain"
	"github.com/vshevel/roombooking/internal/kafka"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)
	Complete(ctx context.Context, id uint32) bool
	Cancel(ctx context.Context, id uint32) bool
	GetByID(ctx context.Context, id uint32) (domain.Booking, bool)
	List(ctx context.Context) []domain.Booking
	ListByCustomer(ctx context.Context, customerID uint32) []domain.Booking
	ListByRoomType(ctx context.Context, roomTypeID uint8) []domain.Booking
	ListByCheckInDate(ctx context.Context, date string) []domain.Booking
}

// Store is the persistent booking collection the service delegates to.
// Satisfied by *store.Store.
type Store interface {
	Create(b domain.Booking) (domain.Booking, error)
	SetStatus(id uint32, status domain.BookingStatus) bool
	FetchByID(id uint32) (domain.Booking, bool)
	FetchAll() []domain.Booking
	FetchByCustomerID(customerID uint32) []domain.Booking
	FetchByRoomTypeID(roomTypeID uint8) []domain.Booking
	FetchByCheckInDate(date string) []domain.Booking
}

type Cache interface {
	GetBookings(ctx context.Context) ([]domain.Booking, error)
	SetBookings(ctx context.Context, bookings []domain.Booking) error
	InvalidateBookings(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService layers caching and event publication on top of the store.
// Cache and producer are optional; with both nil the service is a plain
// pass-through and the store remains the single source of truth either way.
type BookingService struct {
	store              Store
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	log                *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(store Store, cache Cache, producer Producer, eventsTopic string, log *zap.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		store:       store,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		log:         log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	created, err := s.store.Create(b)
	if err != nil {
		return domain.Booking{}, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_created", created)
	return created, nil
}

func (s *BookingService) Complete(ctx context.Context, id uint32) bool {
	return s.setStatus(ctx, id, domain.BookingStatusComplete, "booking_completed")
}

func (s *BookingService) Cancel(ctx context.Context, id uint32) bool {
	return s.setStatus(ctx, id, domain.BookingStatusCancelled, "booking_cancelled")
}

func (s *BookingService) setStatus(ctx context.Context, id uint32, status domain.BookingStatus, eventType string) bool {
	if !s.store.SetStatus(id, status) {
		return false
	}

	s.invalidate(ctx)
	if b, ok := s.store.FetchByID(id); ok {
		s.publish(ctx, eventType, b)
	}
	return true
}

func (s *BookingService) GetByID(ctx context.Context, id uint32) (domain.Booking, bool) {
	return s.store.FetchByID(id)
}

func (s *BookingService) List(ctx context.Context) []domain.Booking {
	if s.cache != nil {
		cached, err := s.cache.GetBookings(ctx)
		if err != nil {
			s.log.Warn("bookings cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached
		}
	}

	bookings := s.store.FetchAll()
	if s.cache != nil {
		if err := s.cache.SetBookings(ctx, bookings); err != nil {
			s.log.Warn("bookings cache write failed", zap.Error(err))
		}
	}
	return bookings
}

func (s *BookingService) ListByCustomer(ctx context.Context, customerID uint32) []domain.Booking {
	return s.store.FetchByCustomerID(customerID)
}

func (s *BookingService) ListByRoomType(ctx context.Context, roomTypeID uint8) []domain.Booking {
	return s.store.FetchByRoomTypeID(roomTypeID)
}

func (s *BookingService) ListByCheckInDate(ctx context.Context, date string) []domain.Booking {
	return s.store.FetchByCheckInDate(date)
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBookings(ctx); err != nil {
		s.log.Warn("bookings cache invalidation failed", zap.Error(err))
	}
}

// publish emits a booking event on the events topic and, when configured,
// the notifications topic. Failures are logged and swallowed: event
// delivery never fails the booking operation that produced it.
func (s *BookingService) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}

	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    b.BookingID,
		CustomerID:   b.CustomerID,
		RoomTypeID:   b.RoomTypeID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Status:       string(b.Status),
	}
	key := strconv.FormatUint(uint64(b.BookingID), 10)

	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		s.log.Warn("publish booking event failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("publish notification failed", zap.String("type", eventType), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
