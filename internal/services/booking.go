package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

// maxBookingHours bounds the hours argument before any duration math.
const maxBookingHours = 1 << 20

type BookingService struct {
	bookings ports.BookingRepo
	fields   ports.FieldRepo
	events   ports.EventPublisher
	rules    RuleSet
	now      func() time.Time
	log      *zap.Logger
	tracer   trace.Tracer

	wg sync.WaitGroup
}

type BookingOption func(*BookingService)

// WithRuleSet replaces the admission rules.
func WithRuleSet(rs RuleSet) BookingOption {
	return func(s *BookingService) { s.rules = rs }
}

// WithExtraRules appends rules after the default ones.
func WithExtraRules(extra ...BookingRule) BookingOption {
	return func(s *BookingService) {
		base := s.rules
		s.rules = func(now time.Time, r ports.BookingReader) []BookingRule {
			return append(base(now, r), extra...)
		}
	}
}

func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

// NewBookingService wires the lifecycle manager. events may be nil.
func NewBookingService(
	bookings ports.BookingRepo,
	fields ports.FieldRepo,
	events ports.EventPublisher,
	log *zap.Logger,
	opts ...BookingOption,
) *BookingService {
	s := &BookingService{
		bookings: bookings,
		fields:   fields,
		events:   events,
		rules:    DefaultBookingRules,
		now:      time.Now,
		log:      log.Named("booking"),
		tracer:   otel.Tracer("field-booking/services/booking"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking reserves [start, start+hours) on the field for user. The
// rules and the insert run under the field's lock; either the booking is
// stored as pending or nothing is.
func (s *BookingService) CreateBooking(ctx context.Context, fieldID uint, user *models.User, start time.Time, hours int) (*models.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.CreateBooking", trace.WithAttributes(
		attribute.Int64("field.id", int64(fieldID)),
		attribute.Int64("user.id", int64(user.ID)),
		attribute.Int("booking.hours", hours),
	))
	defer span.End()

	b, err := s.createBooking(ctx, fieldID, user, start, hours)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("booking.id", int64(b.ID)))

	s.publish(ctx, models.NewBookingEvent(models.BookingEventCreated, b, "", s.now().UTC()))
	return b, nil
}

func (s *BookingService) createBooking(ctx context.Context, fieldID uint, user *models.User, start time.Time, hours int) (*models.Booking, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be positive: %w", models.ErrInvalidTimeOrder)
	}
	if hours > maxBookingHours {
		return nil, models.ErrDurationExceeded
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if !field.IsActive {
		return nil, models.ErrFieldNotFound
	}

	start = start.UTC()
	end := start.Add(time.Duration(hours) * time.Hour)
	b := &models.Booking{
		FieldID:    field.ID,
		UserID:     user.ID,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: field.HourlyPrice * int64(hours),
		Status:     models.BookingStatusPending,
	}
	req := &BookingRequest{Field: field, User: user, StartTime: start, EndTime: end}

	err = s.bookings.WithFieldLock(ctx, field.ID, func(tx ports.BookingTx) error {
		v := NewBookingValidator(s.rules(s.now().UTC(), tx)...)
		if err := v.Validate(ctx, req); err != nil {
			return err
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.Uint("booking_id", b.ID),
		zap.Uint("field_id", b.FieldID),
		zap.Uint("user_id", b.UserID),
		zap.Time("start", b.StartTime),
		zap.Int64("total_price", b.TotalPrice),
	)
	return b, nil
}

// ChangeStatus moves a booking along the status machine. The field owner
// and admins may make any legal move; the booking's own user may only
// cancel it.
func (s *BookingService) ChangeStatus(ctx context.Context, fieldID, bookingID uint, actor *models.User, next models.BookingStatus) (*models.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.ChangeStatus", trace.WithAttributes(
		attribute.Int64("booking.id", int64(bookingID)),
		attribute.String("booking.status", string(next)),
	))
	defer span.End()

	if !next.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", next, models.ErrInvalidTransition)
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	manager := canManage(actor, field)

	var prev models.BookingStatus
	b, err := s.bookings.UpdateStatus(ctx, fieldID, bookingID, func(b *models.Booking) error {
		if !manager && (b.UserID != actor.ID || next != models.BookingStatusCancelled) {
			return models.ErrForbidden
		}
		if !b.Status.CanTransitionTo(next) {
			return fmt.Errorf("%s -> %s: %w", b.Status, next, models.ErrInvalidTransition)
		}
		prev = b.Status
		b.Status = next
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.log.Info("booking status changed",
		zap.Uint("booking_id", b.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(b.Status)),
		zap.Uint("actor_id", actor.ID),
	)
	s.publish(ctx, models.NewBookingEvent(models.BookingEventStatusChanged, b, prev, s.now().UTC()))
	return b, nil
}

func (s *BookingService) GetBooking(ctx context.Context, fieldID, bookingID uint, actor *models.User) (*models.Booking, error) {
	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, fieldID, bookingID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, field) && b.UserID != actor.ID {
		return nil, models.ErrForbidden
	}
	return b, nil
}

// ListFieldBookings returns the field's bookings by status priority, then
// start time. Users who do not manage the field only see their own.
func (s *BookingService) ListFieldBookings(ctx context.Context, fieldID uint, actor *models.User, filter ports.BookingFilter) ([]models.Booking, error) {
	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, field) {
		filter.UserID = actor.ID
	}
	return s.bookings.ListByField(ctx, fieldID, filter)
}

// Wait blocks until in-flight event publishes finish.
func (s *BookingService) Wait() {
	s.wg.Wait()
}

// publish sends the event after commit without blocking the caller.
// Failures are logged only.
func (s *BookingService) publish(ctx context.Context, ev models.BookingEvent) {
	if s.events == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.events.PublishBookingEvent(ctx, ev); err != nil {
			s.log.Warn("publish booking event",
				zap.String("type", string(ev.Type)),
				zap.Uint("booking_id", ev.BookingID),
				zap.Error(err),
			)
		}
	}()
}

func canManage(actor *models.User, field *models.Field) bool {
	return actor.IsAdmin() || field.OwnerID == actor.ID
}
