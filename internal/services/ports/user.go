package ports

import (
	"context"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	MarkVerified(ctx context.Context, id uint) error
}

type VerificationCodeRepo interface {
	Create(ctx context.Context, c *models.VerificationCode) error
	// HasActive reports whether an unexpired code of typ exists at now.
	HasActive(ctx context.Context, userID uint, typ models.CodeType, now time.Time) (bool, error)
	Find(ctx context.Context, userID uint, code string, typ models.CodeType) (*models.VerificationCode, error)
	DeleteAll(ctx context.Context, userID uint, typ models.CodeType) error
}

// CodeGuard is a short lived lock preventing duplicate code sends.
type CodeGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type EmailSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}
