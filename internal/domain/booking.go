package domain

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusComplete  BookingStatus = "Complete"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// CanTransitionTo reports whether a booking in status s may move to next.
// Only Confirmed bookings may change, to either Complete or Cancelled;
// both of those are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusConfirmed {
		return false
	}
	return next == BookingStatusComplete || next == BookingStatusCancelled
}

// Booking is a single room reservation record. BookingID and Status are
// assigned by the store; their zero values mean "not set yet", and a
// creation request that carries either one is rejected.
type Booking struct {
	BookingID    uint32        `json:"bookingId,omitempty"`
	CustomerID   uint32        `json:"customerId"`
	RoomTypeID   uint8         `json:"roomTypeId"`
	CheckInDate  string        `json:"checkInDate"`
	CheckOutDate string        `json:"checkOutDate"`
	Status       BookingStatus `json:"status,omitempty"`
}
