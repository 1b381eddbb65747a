package domain

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// Booking is a time-ranged reservation of an item, requested by the booker and
// arbitrated by the item's owner. Start/End and the references are immutable
// after creation; only Status changes, exactly once, WAITING -> APPROVED or
// WAITING -> REJECTED.
type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
	ItemID   int64         `json:"-"`
	BookerID int64         `json:"-"`

	Item   Item `json:"item"`
	Booker User `json:"booker"`
}
