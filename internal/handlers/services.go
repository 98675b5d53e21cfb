package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

type AuthSvc interface {
	SendOTP(ctx context.Context, c services.Contact) (*models.User, models.CodeType, error)
	VerifyOTP(ctx context.Context, c services.Contact, code string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	Me(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, fullName string) (*models.User, error)
}

type FieldSvc interface {
	Search(ctx context.Context, p services.FieldSearchParams) ([]models.Field, error)
	MyFields(ctx context.Context, actor *models.User, p services.FieldSearchParams) ([]models.Field, error)
	GetField(ctx context.Context, id uint, ref utils.Point) (*models.Field, error)
	CreateField(ctx context.Context, actor *models.User, in services.FieldInput) (*models.Field, error)
	UpdateField(ctx context.Context, actor *models.User, id uint, in services.FieldInput) (*models.Field, error)
	DeactivateField(ctx context.Context, actor *models.User, id uint) error
}

type BookingSvc interface {
	CreateBooking(ctx context.Context, fieldID uint, user *models.User, start time.Time, hours int) (*models.Booking, error)
	ChangeStatus(ctx context.Context, fieldID, bookingID uint, actor *models.User, next models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, fieldID, bookingID uint, actor *models.User) (*models.Booking, error)
	ListFieldBookings(ctx context.Context, fieldID uint, actor *models.User, filter ports.BookingFilter) ([]models.Booking, error)
}

type FileSvc interface {
	UploadImage(ctx context.Context, actor *models.User, header *multipart.FileHeader) (*models.File, error)
}

type LocationSvc interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListRegions(ctx context.Context, countryID uint) ([]models.Region, error)
	ListDistricts(ctx context.Context, regionID uint) ([]models.District, error)
}
