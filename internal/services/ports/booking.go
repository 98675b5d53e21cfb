package ports

import (
	"context"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

// BookingReader answers availability questions about stored bookings.
type BookingReader interface {
	// IsBooked reports whether an active booking of fieldID overlaps [start, end).
	IsBooked(ctx context.Context, fieldID uint, start, end time.Time) (bool, error)
	// BookedFieldIDs returns the fields with an active booking overlapping [start, end).
	BookedFieldIDs(ctx context.Context, start, end time.Time) ([]uint, error)
	CountUserBookings(ctx context.Context, userID uint, statuses ...models.BookingStatus) (int64, error)
}

// BookingTx is the view of the store inside a per-field critical section.
type BookingTx interface {
	BookingReader
	Create(ctx context.Context, b *models.Booking) error
}

type BookingFilter struct {
	UserID uint
	Status models.BookingStatus
}

type BookingRepo interface {
	BookingReader
	// WithFieldLock runs fn in one transaction that excludes every other
	// WithFieldLock call for the same field. fn's error rolls it back.
	WithFieldLock(ctx context.Context, fieldID uint, fn func(tx BookingTx) error) error
	// UpdateStatus loads the booking under a row lock, applies fn and saves it.
	UpdateStatus(ctx context.Context, fieldID, bookingID uint, fn func(b *models.Booking) error) (*models.Booking, error)
	GetByID(ctx context.Context, fieldID, bookingID uint) (*models.Booking, error)
	ListByField(ctx context.Context, fieldID uint, filter BookingFilter) ([]models.Booking, error)
}

type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}
