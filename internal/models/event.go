package models

import "time"

type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "booking.created"
	BookingEventStatusChanged BookingEventType = "booking.status_changed"
)

// BookingEvent is published after a booking change has been committed.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  uint             `json:"booking_id"`
	FieldID    uint             `json:"field_id"`
	UserID     uint             `json:"user_id"`
	Status     BookingStatus    `json:"status"`
	PrevStatus BookingStatus    `json:"prev_status,omitempty"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    time.Time        `json:"end_time"`
	TotalPrice int64            `json:"total_price"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewBookingEvent snapshots b for publishing.
func NewBookingEvent(typ BookingEventType, b *Booking, prev BookingStatus, now time.Time) BookingEvent {
	return BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		FieldID:    b.FieldID,
		UserID:     b.UserID,
		Status:     b.Status,
		PrevStatus: prev,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TotalPrice: b.TotalPrice,
		OccurredAt: now,
	}
}
