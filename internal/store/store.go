package store

import (
	"errors"
	"sync"

	"github.com/vshevel/roombooking/internal/domain"
	"github.com/vshevel/roombooking/internal/snapshot"
	"go.uber.org/zap"
)

// ErrServerOwnedFields is returned by Create when the request carries a
// booking id or status. Those fields are assigned by the store; a caller
// setting them is a protocol violation and must retry with a corrected
// request.
var ErrServerOwnedFields = errors.New("bookingId and status are assigned by the store")

// Store owns the authoritative booking collection. A single mutex guards
// the map; every operation, read or write, holds it for its full duration,
// including the snapshot write that follows each mutation. Callers always
// receive copies, never references into the map.
type Store struct {
	mu       sync.Mutex
	bookings map[uint32]domain.Booking
	snap     *snapshot.Manager
	log      *zap.Logger
}

// New builds a store backed by the given snapshot manager. If a snapshot
// file exists it is loaded and replaces the contents wholesale; a load
// failure is logged and the store starts empty rather than aborting
// startup.
func New(snap *snapshot.Manager, log *zap.Logger) *Store {
	s := &Store{
		bookings: make(map[uint32]domain.Booking),
		snap:     snap,
		log:      log,
	}

	if snap.Exists() {
		loaded, err := snap.Load()
		if err != nil {
			log.Warn("snapshot load failed, starting empty", zap.Error(err))
			return s
		}
		s.bookings = loaded
		log.Info("snapshot loaded", zap.String("path", snap.Path()), zap.Int("bookings", len(loaded)))
	}
	return s
}

// Create assigns an id and the Confirmed status to the booking, stores it,
// and returns a copy of the stored record. The snapshot write that follows
// is best effort: its failure does not fail the creation.
func (s *Store) Create(b domain.Booking) (domain.Booking, error) {
	if b.BookingID != 0 || b.Status != "" {
		return domain.Booking{}, ErrServerOwnedFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b.BookingID = nextID(s.bookings)
	b.Status = domain.BookingStatusConfirmed
	s.bookings[b.BookingID] = b
	s.snap.Save(s.bookings)

	return b, nil
}

// SetStatus applies a status transition to the booking with the given id.
// It returns false when no such booking exists or the transition is not
// allowed; the two cases are indistinguishable to the caller, both simply
// mean no change occurred.
func (s *Store) SetStatus(id uint32, status domain.BookingStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || !b.Status.CanTransitionTo(status) {
		return false
	}

	b.Status = status
	s.bookings[id] = b
	s.snap.Save(s.bookings)
	return true
}

func (s *Store) FetchByID(id uint32) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	return b, ok
}

func (s *Store) FetchAll() []domain.Booking {
	return s.filter(func(domain.Booking) bool { return true })
}

func (s *Store) FetchByCustomerID(customerID uint32) []domain.Booking {
	return s.filter(func(b domain.Booking) bool { return b.CustomerID == customerID })
}

func (s *Store) FetchByRoomTypeID(roomTypeID uint8) []domain.Booking {
	return s.filter(func(b domain.Booking) bool { return b.RoomTypeID == roomTypeID })
}

func (s *Store) FetchByCheckInDate(date string) []domain.Booking {
	return s.filter(func(b domain.Booking) bool { return b.CheckInDate == date })
}

// filter returns copies of all bookings matching keep, in no particular
// order. An empty result is a non-nil empty slice.
func (s *Store) filter(keep func(domain.Booking) bool) []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			results = append(results, b)
		}
	}
	return results
}
