package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

const (
	// MaxBookingDuration is the longest slot a single booking may cover.
	MaxBookingDuration = 3 * time.Hour
	// MaxAcceptedBookings caps how many accepted bookings one user may hold.
	MaxAcceptedBookings = 3
)

// ActiveStatuses are the statuses that occupy a field's time slot.
var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusAccepted}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusAccepted: {BookingStatusCancelled, BookingStatusCompleted},
}

// statusPriority orders bookings in an owner's listing.
var statusPriority = map[BookingStatus]int{
	BookingStatusPending:   1,
	BookingStatusAccepted:  2,
	BookingStatusCompleted: 3,
	BookingStatusCancelled: 4,
	BookingStatusRejected:  5,
}

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	_, ok := statusPriority[s]
	return ok
}

// IsActive reports whether a booking in status s blocks its time slot.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusAccepted
}

// IsTerminal reports whether no transition can leave s.
func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Re-entering the current status is not a transition and is rejected.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority returns the listing rank of s; unknown statuses sort last.
func (s BookingStatus) Priority() int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return len(statusPriority) + 1
}

// Booking is a reservation of one field for [StartTime, EndTime).
type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	FieldID    uint          `gorm:"column:field_id;not null" json:"field"`
	Field      *Field        `gorm:"foreignKey:FieldID" json:"-"`
	UserID     uint          `gorm:"column:user_id;not null" json:"user"`
	User       *User         `gorm:"foreignKey:UserID" json:"-"`
	StartTime  time.Time     `gorm:"column:start_time;not null" json:"start_time"`
	EndTime    time.Time     `gorm:"column:end_time;not null" json:"end_time"`
	TotalPrice int64         `gorm:"column:total_price;not null" json:"total_price"`
	Status     BookingStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// Overlaps reports whether the booking's slot intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. Touching intervals do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
