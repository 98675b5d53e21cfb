package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

// BookingRequest is the candidate booking the rules run against.
type BookingRequest struct {
	Field     *models.Field
	User      *models.User
	StartTime time.Time
	EndTime   time.Time
}

// BookingRule rejects a request by returning one of the booking error kinds.
type BookingRule interface {
	Name() string
	Check(ctx context.Context, req *BookingRequest) error
}

// RuleFunc adapts a function to BookingRule.
type RuleFunc struct {
	RuleName string
	Fn       func(ctx context.Context, req *BookingRequest) error
}

func (r RuleFunc) Name() string { return r.RuleName }

func (r RuleFunc) Check(ctx context.Context, req *BookingRequest) error {
	return r.Fn(ctx, req)
}

// RuleSet builds the rules for one admission, bound to the clock reading
// and the store view of the enclosing transaction.
type RuleSet func(now time.Time, bookings ports.BookingReader) []BookingRule

// BookingValidator runs rules in order and stops at the first failure.
type BookingValidator struct {
	rules []BookingRule
}

func NewBookingValidator(rules ...BookingRule) *BookingValidator {
	return &BookingValidator{rules: rules}
}

func (v *BookingValidator) AddRule(r BookingRule) {
	v.rules = append(v.rules, r)
}

func (v *BookingValidator) Rules() []BookingRule {
	return v.rules
}

func (v *BookingValidator) Validate(ctx context.Context, req *BookingRequest) error {
	for _, r := range v.rules {
		if err := r.Check(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// TimeSlotRule requires a future start, a slot of at most three hours and
// start before end, checked in that order.
func TimeSlotRule(now time.Time) BookingRule {
	return RuleFunc{RuleName: "time_slot", Fn: func(_ context.Context, req *BookingRequest) error {
		if !req.StartTime.After(now) {
			return models.ErrPastStartTime
		}
		if req.EndTime.Sub(req.StartTime) > models.MaxBookingDuration {
			return models.ErrDurationExceeded
		}
		if !req.StartTime.Before(req.EndTime) {
			return models.ErrInvalidTimeOrder
		}
		return nil
	}}
}

func AvailabilityRule(bookings ports.BookingReader) BookingRule {
	index := NewAvailabilityIndex(bookings)
	return RuleFunc{RuleName: "availability", Fn: func(ctx context.Context, req *BookingRequest) error {
		booked, err := index.IsBooked(ctx, req.Field.ID, req.StartTime, req.EndTime)
		if err != nil {
			return fmt.Errorf("availability: %w", err)
		}
		if booked {
			return models.ErrOverlapConflict
		}
		return nil
	}}
}

// UserQuotaRule limits how many accepted bookings a user may hold.
func UserQuotaRule(bookings ports.BookingReader) BookingRule {
	return RuleFunc{RuleName: "user_quota", Fn: func(ctx context.Context, req *BookingRequest) error {
		n, err := bookings.CountUserBookings(ctx, req.User.ID, models.BookingStatusAccepted)
		if err != nil {
			return fmt.Errorf("user quota: %w", err)
		}
		if n >= models.MaxAcceptedBookings {
			return models.ErrQuotaExceeded
		}
		return nil
	}}
}

// DefaultBookingRules is TimeSlot, Availability, UserQuota.
func DefaultBookingRules(now time.Time, bookings ports.BookingReader) []BookingRule {
	return []BookingRule{
		TimeSlotRule(now),
		AvailabilityRule(bookings),
		UserQuotaRule(bookings),
	}
}
