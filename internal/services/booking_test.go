package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

var testNow = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

func tomorrowAt(hour int) time.Time {
	return time.Date(2030, 1, 2, hour, 0, 0, 0, time.UTC)
}

var (
	owner    = &models.User{ID: 10, UserType: models.UserTypeFieldOwner}
	customer = &models.User{ID: 20, UserType: models.UserTypeCustomer}
	other    = &models.User{ID: 30, UserType: models.UserTypeCustomer}
	admin    = &models.User{ID: 1, UserType: models.UserTypeAdmin}
)

type bookingFixture struct {
	svc      *BookingService
	bookings *memBookings
	fields   *memFields
	events   *mockPublisher
}

func newBookingFixture(t *testing.T, seed []models.Booking, opts ...BookingOption) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		bookings: newMemBookings(seed...),
		fields:   newMemFields(testField(1, owner.ID, "Arena", 41.3, 69.2)),
		events:   &mockPublisher{},
	}
	f.events.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	opts = append([]BookingOption{WithClock(func() time.Time { return testNow })}, opts...)
	f.svc = NewBookingService(f.bookings, f.fields, f.events, zap.NewNop(), opts...)
	return f
}

func TestBookingService_CreateBooking_PriceAndEnd(t *testing.T) {
	f := newBookingFixture(t, nil)

	b, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 2)
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, tomorrowAt(12), b.EndTime)
	assert.Equal(t, int64(200000), b.TotalPrice)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, customer.ID, b.UserID)
	assert.NotZero(t, b.ID)
	assert.Len(t, f.bookings.snapshot(), 1)

	f.events.AssertCalled(t, "PublishBookingEvent", mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
		return e.Type == models.BookingEventCreated && e.BookingID == b.ID && e.TotalPrice == 200000
	}))
}

func TestBookingService_CreateBooking_NormalizesToUTC(t *testing.T) {
	f := newBookingFixture(t, nil)
	tashkent := time.FixedZone("UZT", 5*3600)

	b, err := f.svc.CreateBooking(context.Background(), 1, customer, time.Date(2030, 1, 2, 15, 0, 0, 0, tashkent), 1)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, b.StartTime.Location())
	assert.True(t, b.StartTime.Equal(tomorrowAt(10)))
}

func TestBookingService_CreateBooking_TimeSlotErrors(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		hours int
		want  error
	}{
		{"start in the past", testNow.Add(-time.Hour), 1, models.ErrPastStartTime},
		{"start equal to now", testNow, 1, models.ErrPastStartTime},
		{"past start wins over long duration", testNow.Add(-time.Hour), 5, models.ErrPastStartTime},
		{"four hours", tomorrowAt(10), 4, models.ErrDurationExceeded},
		{"zero hours", tomorrowAt(10), 0, models.ErrInvalidTimeOrder},
		{"negative hours", tomorrowAt(10), -1, models.ErrInvalidTimeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t, nil)
			_, err := f.svc.CreateBooking(context.Background(), 1, customer, tt.start, tt.hours)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.bookings.snapshot())
		})
	}
}

func TestBookingService_CreateBooking_ThreeHoursAllowed(t *testing.T) {
	f := newBookingFixture(t, nil)
	b, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 3)
	require.NoError(t, err)
	assert.Equal(t, tomorrowAt(13), b.EndTime)
}

func TestBookingService_CreateBooking_Overlap(t *testing.T) {
	existing := models.Booking{FieldID: 1, UserID: other.ID, StartTime: tomorrowAt(10), EndTime: tomorrowAt(12), Status: models.BookingStatusPending}

	f := newBookingFixture(t, []models.Booking{existing})

	_, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(11), 2)
	assert.ErrorIs(t, err, models.ErrOverlapConflict)

	_, err = f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(9), 3)
	assert.ErrorIs(t, err, models.ErrOverlapConflict)

	// Touching the existing slot is fine.
	_, err = f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(12), 1)
	assert.NoError(t, err)
}

func TestBookingService_CreateBooking_InactiveBookingsDoNotBlock(t *testing.T) {
	for _, st := range []models.BookingStatus{models.BookingStatusRejected, models.BookingStatusCancelled, models.BookingStatusCompleted} {
		t.Run(string(st), func(t *testing.T) {
			f := newBookingFixture(t, []models.Booking{
				{FieldID: 1, UserID: other.ID, StartTime: tomorrowAt(10), EndTime: tomorrowAt(12), Status: st},
			})
			_, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 2)
			assert.NoError(t, err)
		})
	}
}

func TestBookingService_CreateBooking_OtherFieldDoesNotBlock(t *testing.T) {
	f := newBookingFixture(t, []models.Booking{
		{FieldID: 2, UserID: other.ID, StartTime: tomorrowAt(10), EndTime: tomorrowAt(12), Status: models.BookingStatusAccepted},
	})
	_, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 2)
	assert.NoError(t, err)
}

func TestBookingService_CreateBooking_Quota(t *testing.T) {
	accepted := func(day int) models.Booking {
		start := time.Date(2030, 2, day, 10, 0, 0, 0, time.UTC)
		return models.Booking{FieldID: 1, UserID: customer.ID, StartTime: start, EndTime: start.Add(time.Hour), Status: models.BookingStatusAccepted}
	}

	f := newBookingFixture(t, []models.Booking{accepted(1), accepted(2), accepted(3)})
	_, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	assert.ErrorIs(t, err, models.ErrQuotaExceeded)

	f = newBookingFixture(t, []models.Booking{accepted(1), accepted(2)})
	_, err = f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	assert.NoError(t, err)
}

func TestBookingService_CreateBooking_QuotaCountsAcceptedOnly(t *testing.T) {
	var seed []models.Booking
	for day := 1; day <= 4; day++ {
		start := time.Date(2030, 2, day, 10, 0, 0, 0, time.UTC)
		seed = append(seed, models.Booking{FieldID: 1, UserID: customer.ID, StartTime: start, EndTime: start.Add(time.Hour), Status: models.BookingStatusPending})
	}
	f := newBookingFixture(t, seed)

	_, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	assert.NoError(t, err)
}

func TestBookingService_CreateBooking_FieldErrors(t *testing.T) {
	f := newBookingFixture(t, nil)

	_, err := f.svc.CreateBooking(context.Background(), 99, customer, tomorrowAt(10), 1)
	assert.ErrorIs(t, err, models.ErrFieldNotFound)

	require.NoError(t, f.fields.Deactivate(context.Background(), 1))
	_, err = f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	assert.ErrorIs(t, err, models.ErrFieldNotFound)
}

func TestBookingService_CreateBooking_Concurrent(t *testing.T) {
	f := newBookingFixture(t, nil)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := &models.User{ID: uint(100 + i), UserType: models.UserTypeCustomer}
			_, errs[i] = f.svc.CreateBooking(context.Background(), 1, user, tomorrowAt(10), 2)
		}(i)
	}
	wg.Wait()
	f.svc.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
			continue
		}
		assert.ErrorIs(t, err, models.ErrOverlapConflict)
	}
	assert.Equal(t, 1, success)
	assert.Len(t, f.bookings.snapshot(), 1)
}

func TestBookingService_CreateBooking_ExtraRules(t *testing.T) {
	errClosed := errors.New("closed on thursdays")
	rule := RuleFunc{RuleName: "closed_day", Fn: func(_ context.Context, req *BookingRequest) error {
		if req.StartTime.Weekday() == time.Thursday {
			return errClosed
		}
		return nil
	}}
	f := newBookingFixture(t, nil, WithExtraRules(rule))

	// 2030-01-03 is a Thursday.
	_, err := f.svc.CreateBooking(context.Background(), 1, customer, time.Date(2030, 1, 3, 10, 0, 0, 0, time.UTC), 1)
	assert.ErrorIs(t, err, errClosed)

	_, err = f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	assert.NoError(t, err)
}

func TestBookingService_CreateBooking_CustomRuleSet(t *testing.T) {
	onlyTime := func(now time.Time, _ ports.BookingReader) []BookingRule {
		return []BookingRule{TimeSlotRule(now)}
	}
	existing := models.Booking{FieldID: 1, UserID: other.ID, StartTime: tomorrowAt(10), EndTime: tomorrowAt(12), Status: models.BookingStatusPending}
	f := newBookingFixture(t, []models.Booking{existing}, WithRuleSet(onlyTime))

	_, err := f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(14), 1)
	assert.NoError(t, err)

	// Without the availability rule the store still refuses an overlap.
	_, err = f.svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(11), 1)
	assert.ErrorIs(t, err, models.ErrOverlapConflict)
}

func TestBookingService_CreateBooking_PublishFailureIsNotSurfaced(t *testing.T) {
	bookings := newMemBookings()
	fields := newMemFields(testField(1, owner.ID, "Arena", 41.3, 69.2))
	events := &mockPublisher{}
	events.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	svc := NewBookingService(bookings, fields, events, zap.NewNop(), WithClock(func() time.Time { return testNow }))
	_, err := svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	svc.Wait()

	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestBookingService_CreateBooking_NilPublisher(t *testing.T) {
	svc := NewBookingService(newMemBookings(), newMemFields(testField(1, owner.ID, "Arena", 41.3, 69.2)), nil, zap.NewNop(),
		WithClock(func() time.Time { return testNow }))
	_, err := svc.CreateBooking(context.Background(), 1, customer, tomorrowAt(10), 1)
	assert.NoError(t, err)
}

func pendingBooking() models.Booking {
	return models.Booking{ID: 5, FieldID: 1, UserID: customer.ID, StartTime: tomorrowAt(10), EndTime: tomorrowAt(12), TotalPrice: 200000, Status: models.BookingStatusPending}
}

func TestBookingService_ChangeStatus_OwnerFlow(t *testing.T) {
	f := newBookingFixture(t, []models.Booking{pendingBooking()})
	ctx := context.Background()

	b, err := f.svc.ChangeStatus(ctx, 1, 5, owner, models.BookingStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, b.Status)

	_, err = f.svc.ChangeStatus(ctx, 1, 5, owner, models.BookingStatusAccepted)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.svc.ChangeStatus(ctx, 1, 5, owner, models.BookingStatusPending)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	b, err = f.svc.ChangeStatus(ctx, 1, 5, owner, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, b.Status)

	_, err = f.svc.ChangeStatus(ctx, 1, 5, owner, models.BookingStatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	f.svc.Wait()
	f.events.AssertCalled(t, "PublishBookingEvent", mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
		return e.Type == models.BookingEventStatusChanged &&
			e.PrevStatus == models.BookingStatusPending && e.Status == models.BookingStatusAccepted
	}))
}

func TestBookingService_ChangeStatus_Permissions(t *testing.T) {
	ctx := context.Background()

	f := newBookingFixture(t, []models.Booking{pendingBooking()})
	_, err := f.svc.ChangeStatus(ctx, 1, 5, customer, models.BookingStatusAccepted)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = f.svc.ChangeStatus(ctx, 1, 5, other, models.BookingStatusCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)

	b, err := f.svc.ChangeStatus(ctx, 1, 5, customer, models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)

	f = newBookingFixture(t, []models.Booking{pendingBooking()})
	b, err = f.svc.ChangeStatus(ctx, 1, 5, admin, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, b.Status)
}

func TestBookingService_ChangeStatus_Errors(t *testing.T) {
	f := newBookingFixture(t, []models.Booking{pendingBooking()})
	ctx := context.Background()

	_, err := f.svc.ChangeStatus(ctx, 1, 5, owner, models.BookingStatus("archived"))
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.svc.ChangeStatus(ctx, 1, 404, owner, models.BookingStatusAccepted)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)

	_, err = f.svc.ChangeStatus(ctx, 2, 5, owner, models.BookingStatusAccepted)
	assert.ErrorIs(t, err, models.ErrFieldNotFound)

	// A failed transition leaves the booking untouched.
	b, err := f.bookings.GetByID(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, b.Status)
}

func TestBookingService_CancelFreesSlot(t *testing.T) {
	f := newBookingFixture(t, []models.Booking{pendingBooking()})
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, 1, other, tomorrowAt(10), 2)
	assert.ErrorIs(t, err, models.ErrOverlapConflict)

	_, err = f.svc.ChangeStatus(ctx, 1, 5, customer, models.BookingStatusCancelled)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, 1, other, tomorrowAt(10), 2)
	assert.NoError(t, err)
}

func TestBookingService_ListFieldBookings(t *testing.T) {
	seed := []models.Booking{
		{FieldID: 1, UserID: customer.ID, StartTime: tomorrowAt(8), EndTime: tomorrowAt(9), Status: models.BookingStatusRejected},
		{FieldID: 1, UserID: other.ID, StartTime: tomorrowAt(14), EndTime: tomorrowAt(15), Status: models.BookingStatusPending},
		{FieldID: 1, UserID: customer.ID, StartTime: tomorrowAt(10), EndTime: tomorrowAt(11), Status: models.BookingStatusAccepted},
		{FieldID: 1, UserID: customer.ID, StartTime: tomorrowAt(12), EndTime: tomorrowAt(13), Status: models.BookingStatusPending},
	}
	f := newBookingFixture(t, seed)
	ctx := context.Background()

	all, err := f.svc.ListFieldBookings(ctx, 1, owner, ports.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []models.BookingStatus{
		models.BookingStatusPending, models.BookingStatusPending,
		models.BookingStatusAccepted, models.BookingStatusRejected,
	}, []models.BookingStatus{all[0].Status, all[1].Status, all[2].Status, all[3].Status})
	assert.Equal(t, tomorrowAt(12), all[0].StartTime)

	own, err := f.svc.ListFieldBookings(ctx, 1, other, ports.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, other.ID, own[0].UserID)

	pending, err := f.svc.ListFieldBookings(ctx, 1, owner, ports.BookingFilter{Status: models.BookingStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestBookingService_GetBooking(t *testing.T) {
	f := newBookingFixture(t, []models.Booking{pendingBooking()})
	ctx := context.Background()

	b, err := f.svc.GetBooking(ctx, 1, 5, customer)
	require.NoError(t, err)
	assert.Equal(t, uint(5), b.ID)

	_, err = f.svc.GetBooking(ctx, 1, 5, owner)
	assert.NoError(t, err)

	_, err = f.svc.GetBooking(ctx, 1, 5, other)
	assert.ErrorIs(t, err, models.ErrForbidden)
}
