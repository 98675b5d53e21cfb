package services

import (
	"context"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

// AvailabilityIndex answers whether a field is free for a time window.
// Only pending and accepted bookings occupy a slot.
type AvailabilityIndex struct {
	bookings ports.BookingReader
}

func NewAvailabilityIndex(bookings ports.BookingReader) *AvailabilityIndex {
	return &AvailabilityIndex{bookings: bookings}
}

// IsBooked reports whether an active booking of fieldID overlaps [start, end).
// An empty or inverted window overlaps nothing.
func (a *AvailabilityIndex) IsBooked(ctx context.Context, fieldID uint, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, nil
	}
	return a.bookings.IsBooked(ctx, fieldID, start.UTC(), end.UTC())
}

// BookedFields returns the set of fields unavailable during [start, end).
func (a *AvailabilityIndex) BookedFields(ctx context.Context, start, end time.Time) (map[uint]struct{}, error) {
	set := map[uint]struct{}{}
	if !start.Before(end) {
		return set, nil
	}
	ids, err := a.bookings.BookedFieldIDs(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// IsBookedIn evaluates the same predicate over an in-memory booking list.
func IsBookedIn(bookings []models.Booking, fieldID uint, start, end time.Time) bool {
	for i := range bookings {
		b := &bookings[i]
		if b.FieldID == fieldID && b.Status.IsActive() && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
