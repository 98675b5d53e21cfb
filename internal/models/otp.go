package models

import (
	"time"
)

// CodeType defines the purpose of the verification code
type CodeType string

const (
	CodeTypeRegister       CodeType = "register"
	CodeTypeLogin          CodeType = "login"
	CodeTypeForgotPassword CodeType = "forgot_password"
)

// VerificationCode stores a one-time code sent to a user
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	Code      string    `gorm:"column:code;not null" json:"-"`
	CodeType  CodeType  `gorm:"column:code_type;not null" json:"code_type"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (VerificationCode) TableName() string {
	return "verification_codes"
}

// IsExpired checks whether the code can no longer be used at now
func (v *VerificationCode) IsExpired(now time.Time) bool {
	return v.ExpiresAt.Before(now)
}
