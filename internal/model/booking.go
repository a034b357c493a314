package model

import "time"

// Booking status lifecycle. Bookings are created confirmed and may be
// cancelled; records are never physically deleted.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking records a single user's reservation of a court for the
// half-open interval [BookingTime, BookingTime+Duration). For a given
// court, no two non-cancelled bookings or matches may overlap.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the booking.
//  CourtID     – court being booked.
//  BookingTime – start of the booked window (UTC).
//  Duration    – length of the window in minutes, positive.
//  Status      – pending, confirmed or cancelled.
//  CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	CourtID     uint64    // bookings.court_id
	BookingTime time.Time // bookings.booking_time
	Duration    int       // bookings.duration (minutes)
	Status      string    // bookings.status
	CreatedAt   time.Time // bookings.created_at
}

// End returns the exclusive end of the booked interval.
func (b *Booking) End() time.Time {
	return b.BookingTime.Add(time.Duration(b.Duration) * time.Minute)
}
