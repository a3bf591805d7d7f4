package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a claim on a court for a half-open time interval.
// Only confirmed bookings participate in conflict checks.
type Booking struct {
	ID        string
	CourtID   string
	OwnerID   string
	Interval  Interval
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
