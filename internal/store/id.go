package store

import "github.com/vshevel/roombooking/internal/domain"

// nextID returns one plus the highest booking id currently stored, or 1
// for an empty collection. Bookings are never removed, so the maximum is
// monotonically non-decreasing and recomputing it on every creation can
// never hand out a previously used id. The result wraps at
// math.MaxUint32; the allocator assumes the store stays below that bound.
func nextID(bookings map[uint32]domain.Booking) uint32 {
	var max uint32
	for id := range bookings {
		if id > max {
			max = id
		}
	}
	return max + 1
}
