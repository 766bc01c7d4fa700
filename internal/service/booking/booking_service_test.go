package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vshevel/roombooking/internal/domain"
	"go.uber.org/zap"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(b domain.Booking) (domain.Booking, error) {
	args := m.Called(b)
	return args.Get(0).(domain.Booking), args.Error(1)
}

func (m *MockStore) SetStatus(id uint32, status domain.BookingStatus) bool {
	args := m.Called(id, status)
	return args.Bool(0)
}

func (m *MockStore) FetchByID(id uint32) (domain.Booking, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.Booking), args.Bool(1)
}

func (m *MockStore) FetchAll() []domain.Booking {
	args := m.Called()
	return args.Get(0).([]domain.Booking)
}

func (m *MockStore) FetchByCustomerID(customerID uint32) []domain.Booking {
	args := m.Called(customerID)
	return args.Get(0).([]domain.Booking)
}

func (m *MockStore) FetchByRoomTypeID(roomTypeID uint8) []domain.Booking {
	args := m.Called(roomTypeID)
	return args.Get(0).([]domain.Booking)
}

func (m *MockStore) FetchByCheckInDate(date string) []domain.Booking {
	args := m.Called(date)
	return args.Get(0).([]domain.Booking)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockCache) SetBookings(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *MockCache) InvalidateBookings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func confirmedBooking() domain.Booking {
	return domain.Booking{
		BookingID:    1,
		CustomerID:   1,
		RoomTypeID:   3,
		CheckInDate:  "2020-01-01",
		CheckOutDate: "2020-01-08",
		Status:       domain.BookingStatusConfirmed,
	}
}

func TestBookingService_Create_Success(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockStore, mockCache, mockProducer, "booking-events", zap.NewNop())

	ctx := context.Background()
	input := domain.Booking{CustomerID: 1, RoomTypeID: 3, CheckInDate: "2020-01-01", CheckOutDate: "2020-01-08"}
	stored := confirmedBooking()

	mockStore.On("Create", input).Return(stored, nil).Once()
	mockCache.On("InvalidateBookings", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", "1", mock.Anything).Return(nil).Once()

	created, err := service.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, stored, created)

	mockStore.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Create_StoreError(t *testing.T) {
	mockStore := &MockStore{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockStore, nil, mockProducer, "booking-events", zap.NewNop())

	ctx := context.Background()
	input := domain.Booking{BookingID: 7}
	mockStore.On("Create", input).Return(domain.Booking{}, errors.New("bookingId is assigned by the store")).Once()

	_, err := service.Create(ctx, input)

	assert.Error(t, err)
	mockStore.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_Create_PublishFailureIsSwallowed(t *testing.T) {
	mockStore := &MockStore{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockStore, nil, mockProducer, "booking-events", zap.NewNop())

	ctx := context.Background()
	input := domain.Booking{CustomerID: 1}
	mockStore.On("Create", input).Return(confirmedBooking(), nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", "1", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.Create(ctx, input)

	assert.NoError(t, err)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Complete_PublishesEvent(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockStore, mockCache, mockProducer, "booking-events", zap.NewNop(),
		WithNotificationsTopic("booking-notifications"))

	ctx := context.Background()
	completed := confirmedBooking()
	completed.Status = domain.BookingStatusComplete

	mockStore.On("SetStatus", uint32(1), domain.BookingStatusComplete).Return(true).Once()
	mockStore.On("FetchByID", uint32(1)).Return(completed, true).Once()
	mockCache.On("InvalidateBookings", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", "1", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-notifications", "1", mock.Anything).Return(nil).Once()

	assert.True(t, service.Complete(ctx, 1))

	mockStore.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Cancel_RejectedTransition(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockStore, mockCache, mockProducer, "booking-events", zap.NewNop())

	mockStore.On("SetStatus", uint32(1), domain.BookingStatusCancelled).Return(false).Once()

	assert.False(t, service.Cancel(context.Background(), 1))

	mockStore.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "InvalidateBookings")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_List_CacheHit(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}

	service := NewBookingService(mockStore, mockCache, nil, "", zap.NewNop())

	ctx := context.Background()
	cached := []domain.Booking{confirmedBooking()}
	mockCache.On("GetBookings", ctx).Return(cached, nil).Once()

	assert.Equal(t, cached, service.List(ctx))

	mockCache.AssertExpectations(t)
	mockStore.AssertNotCalled(t, "FetchAll")
}

func TestBookingService_List_CacheMissFallsBackToStore(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}

	service := NewBookingService(mockStore, mockCache, nil, "", zap.NewNop())

	ctx := context.Background()
	stored := []domain.Booking{confirmedBooking()}
	mockCache.On("GetBookings", ctx).Return(nil, nil).Once()
	mockStore.On("FetchAll").Return(stored).Once()
	mockCache.On("SetBookings", ctx, stored).Return(nil).Once()

	assert.Equal(t, stored, service.List(ctx))

	mockStore.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestBookingService_List_CacheErrorFallsBackToStore(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}

	service := NewBookingService(mockStore, mockCache, nil, "", zap.NewNop())

	ctx := context.Background()
	stored := []domain.Booking{confirmedBooking()}
	mockCache.On("GetBookings", ctx).Return(nil, errors.New("redis down")).Once()
	mockStore.On("FetchAll").Return(stored).Once()
	mockCache.On("SetBookings", ctx, stored).Return(nil).Once()

	assert.Equal(t, stored, service.List(ctx))
}

func TestBookingService_FilteredListsBypassCache(t *testing.T) {
	mockStore := &MockStore{}
	mockCache := &MockCache{}

	service := NewBookingService(mockStore, mockCache, nil, "", zap.NewNop())

	ctx := context.Background()
	stored := []domain.Booking{confirmedBooking()}
	mockStore.On("FetchByCustomerID", uint32(1)).Return(stored).Once()
	mockStore.On("FetchByRoomTypeID", uint8(3)).Return(stored).Once()
	mockStore.On("FetchByCheckInDate", "2020-01-01").Return(stored).Once()

	assert.Equal(t, stored, service.ListByCustomer(ctx, 1))
	assert.Equal(t, stored, service.ListByRoomType(ctx, 3))
	assert.Equal(t, stored, service.ListByCheckInDate(ctx, "2020-01-01"))

	mockStore.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "GetBookings")
}

func TestBookingService_NilCacheAndProducer(t *testing.T) {
	mockStore := &MockStore{}

	service := NewBookingService(mockStore, nil, nil, "", zap.NewNop())

	ctx := context.Background()
	input := domain.Booking{CustomerID: 1}
	mockStore.On("Create", input).Return(confirmedBooking(), nil).Once()
	mockStore.On("FetchAll").Return([]domain.Booking{confirmedBooking()}).Once()

	_, err := service.Create(ctx, input)
	require.NoError(t, err)
	assert.Len(t, service.List(ctx), 1)

	mockStore.AssertExpectations(t)
}
