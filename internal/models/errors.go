package models

import "errors"

// Booking rule failures.
var (
	ErrPastStartTime     = errors.New("booking must be for a future time")
	ErrDurationExceeded  = errors.New("maximum booking duration is 3 hours")
	ErrInvalidTimeOrder  = errors.New("start time must be before end time")
	ErrOverlapConflict   = errors.New("field is already booked for the selected time slot")
	ErrQuotaExceeded     = errors.New("maximum number of active bookings reached")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Field rule failures.
var (
	ErrOwnerRequired       = errors.New("owner is required when creating a field as admin")
	ErrOwnerChange         = errors.New("owner cannot be changed")
	ErrDimensionOutOfRange = errors.New("field dimensions out of range")
	ErrNonPositivePrice    = errors.New("hourly price must be positive")
	ErrInvalidPhoneNumber  = errors.New("phone number must be entered in the format: '+999999999'. Up to 15 digits allowed")
)

var (
	ErrFieldNotFound   = errors.New("field not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrFileNotFound    = errors.New("file not found")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
)

// Authentication failures.
var (
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeExpired        = errors.New("code is expired")
	ErrCodeAlreadySent    = errors.New("confirmation code already sent, please use that one")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("user not verified")
	ErrUserInactive       = errors.New("user account is disabled")
)

var (
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedFileType = errors.New("only image uploads are supported")
)
