package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

// overlapCond is the single SQL form of the slot overlap test.
const overlapCond = "start_time < ? AND end_time > ?"

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func activeStatuses() []string {
	return statusStrings(models.ActiveStatuses)
}

func statusStrings(in []models.BookingStatus) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func isBooked(ctx context.Context, db *gorm.DB, fieldID uint, start, end time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Booking{}).
		Where("field_id = ? AND status IN ?", fieldID, activeStatuses()).
		Where(overlapCond, end, start).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	return n > 0, nil
}

func bookedFieldIDs(ctx context.Context, db *gorm.DB, start, end time.Time) ([]uint, error) {
	var ids []uint
	err := db.WithContext(ctx).Model(&models.Booking{}).
		Distinct("field_id").
		Where("status IN ?", activeStatuses()).
		Where(overlapCond, end, start).
		Pluck("field_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list booked fields: %w", err)
	}
	return ids, nil
}

func countUserBookings(ctx context.Context, db *gorm.DB, userID uint, statuses []models.BookingStatus) (int64, error) {
	q := db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count user bookings: %w", err)
	}
	return n, nil
}

func (r *BookingRepo) IsBooked(ctx context.Context, fieldID uint, start, end time.Time) (bool, error) {
	return isBooked(ctx, r.db, fieldID, start, end)
}

func (r *BookingRepo) BookedFieldIDs(ctx context.Context, start, end time.Time) ([]uint, error) {
	return bookedFieldIDs(ctx, r.db, start, end)
}

func (r *BookingRepo) CountUserBookings(ctx context.Context, userID uint, statuses ...models.BookingStatus) (int64, error) {
	return countUserBookings(ctx, r.db, userID, statuses)
}

// WithFieldLock takes a transaction scoped advisory lock on fieldID so that
// concurrent check-then-insert sequences for one field run one at a time.
// The bookings exclusion constraint still backs this at commit.
func (r *BookingRepo) WithFieldLock(ctx context.Context, fieldID uint, fn func(tx ports.BookingTx) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(fieldID)).Error; err != nil {
			return fmt.Errorf("lock field %d: %w", fieldID, err)
		}
		return fn(&bookingTx{db: tx})
	})
	if isSlotConflict(err) {
		return fmt.Errorf("field %d: %w", fieldID, models.ErrOverlapConflict)
	}
	return err
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, fieldID, bookingID uint, fn func(b *models.Booking) error) (*models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND field_id = ?", bookingID, fieldID).
			Take(&b).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrBookingNotFound
		}
		if err != nil {
			return err
		}
		if err := fn(&b); err != nil {
			return err
		}
		return tx.Model(&b).Updates(map[string]any{
			"status":     b.Status,
			"updated_at": time.Now().UTC(),
		}).Error
	})
	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("booking %d: %w", bookingID, models.ErrOverlapConflict)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, fieldID, bookingID uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND field_id = ?", bookingID, fieldID).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// ListByField orders by status priority, then start time.
func (r *BookingRepo) ListByField(ctx context.Context, fieldID uint, filter ports.BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Where("field_id = ?", fieldID)
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var out []models.Booking
	err := q.Order(clause.Expr{SQL: `CASE status
		WHEN 'pending' THEN 1
		WHEN 'accepted' THEN 2
		WHEN 'completed' THEN 3
		WHEN 'cancelled' THEN 4
		WHEN 'rejected' THEN 5
		ELSE 6 END`}).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

type bookingTx struct{ db *gorm.DB }

func (t *bookingTx) IsBooked(ctx context.Context, fieldID uint, start, end time.Time) (bool, error) {
	return isBooked(ctx, t.db, fieldID, start, end)
}

func (t *bookingTx) BookedFieldIDs(ctx context.Context, start, end time.Time) ([]uint, error) {
	return bookedFieldIDs(ctx, t.db, start, end)
}

func (t *bookingTx) CountUserBookings(ctx context.Context, userID uint, statuses ...models.BookingStatus) (int64, error) {
	return countUserBookings(ctx, t.db, userID, statuses)
}

func (t *bookingTx) Create(ctx context.Context, b *models.Booking) error {
	if err := t.db.WithContext(ctx).Create(b).Error; err != nil {
		if isSlotConflict(err) {
			return fmt.Errorf("insert booking: %w", models.ErrOverlapConflict)
		}
		if pgCode(err) == pgCheckViolation {
			return fmt.Errorf("insert booking: %w", models.ErrInvalidTimeOrder)
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
