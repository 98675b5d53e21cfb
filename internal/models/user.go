package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserType string

const (
	UserTypeCustomer   UserType = "customer"
	UserTypeFieldOwner UserType = "field_owner"
	UserTypeAdmin      UserType = "admin"
	UserTypeSuperAdmin UserType = "super_admin"
)

type AuthMethod string

const (
	AuthMethodPhone AuthMethod = "phone"
	AuthMethodEmail AuthMethod = "email"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"column:username;unique;not null" json:"username"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	Email        *string    `gorm:"column:email" json:"email"`
	PhoneNumber  *string    `gorm:"column:phone_number" json:"phone_number"`
	UserType     UserType   `gorm:"column:user_type;not null;default:'customer'" json:"user_type"`
	AuthMethod   AuthMethod `gorm:"column:auth_method" json:"auth_method"`
	Password     string     `gorm:"-" json:"-"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"-"`
	IsVerified   bool       `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	CreatedAt    time.Time  `gorm:"column:date_joined" json:"date_joined"`
	UpdatedAt    time.Time  `json:"-"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	u.Password = ""
	return nil
}

func (u *User) CheckPassword(password string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// IsAdmin reports whether the user administers the whole platform.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin || u.UserType == UserTypeSuperAdmin
}

// IsStaff reports whether the user may manage fields.
func (u *User) IsStaff() bool {
	return u.IsAdmin() || u.UserType == UserTypeFieldOwner
}

// VerifiedOnCreate reports whether accounts of type t skip OTP verification.
func VerifiedOnCreate(t UserType) bool {
	return t != UserTypeCustomer
}
