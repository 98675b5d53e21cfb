package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	u.Username = strings.ToLower(u.Username)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if pgCode(err) == pgUniqueViolation {
			return fmt.Errorf("user %q already exists: %w", u.Username, models.ErrValidation)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Take(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(username)).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Model(u).Updates(map[string]any{
		"full_name":  u.FullName,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepo) MarkVerified(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
	if err != nil {
		return fmt.Errorf("verify user: %w", err)
	}
	return nil
}

type VerificationCodeRepo struct{ db *gorm.DB }

func NewVerificationCodeRepo(db *gorm.DB) *VerificationCodeRepo {
	return &VerificationCodeRepo{db: db}
}

func (r *VerificationCodeRepo) Create(ctx context.Context, c *models.VerificationCode) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create code: %w", err)
	}
	return nil
}

func (r *VerificationCodeRepo) HasActive(ctx context.Context, userID uint, typ models.CodeType, now time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.VerificationCode{}).
		Where("user_id = ? AND code_type = ? AND expires_at >= ?", userID, string(typ), now).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check codes: %w", err)
	}
	return n > 0, nil
}

// Find returns the newest matching code.
func (r *VerificationCodeRepo) Find(ctx context.Context, userID uint, code string, typ models.CodeType) (*models.VerificationCode, error) {
	var c models.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND code_type = ?", userID, code, string(typ)).
		Order("id DESC").
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrInvalidCode
	}
	if err != nil {
		return nil, fmt.Errorf("find code: %w", err)
	}
	return &c, nil
}

func (r *VerificationCodeRepo) DeleteAll(ctx context.Context, userID uint, typ models.CodeType) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code_type = ?", userID, string(typ)).
		Delete(&models.VerificationCode{}).Error
	if err != nil {
		return fmt.Errorf("delete codes: %w", err)
	}
	return nil
}
