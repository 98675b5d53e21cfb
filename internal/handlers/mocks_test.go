package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendOTP(ctx context.Context, c services.Contact) (*models.User, models.CodeType, error) {
	args := m.Called(ctx, c)
	u, _ := args.Get(0).(*models.User)
	return u, args.Get(1).(models.CodeType), args.Error(2)
}

func (m *mockAuthSvc) VerifyOTP(ctx context.Context, c services.Contact, code string) (*services.AuthResult, error) {
	args := m.Called(ctx, c, code)
	r, _ := args.Get(0).(*services.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, username, password string) (*services.AuthResult, error) {
	args := m.Called(ctx, username, password)
	r, _ := args.Get(0).(*services.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthSvc) Me(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuthSvc) UpdateProfile(ctx context.Context, userID uint, fullName string) (*models.User, error) {
	args := m.Called(ctx, userID, fullName)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockFieldSvc struct{ mock.Mock }

func (m *mockFieldSvc) Search(ctx context.Context, p services.FieldSearchParams) ([]models.Field, error) {
	args := m.Called(ctx, p)
	f, _ := args.Get(0).([]models.Field)
	return f, args.Error(1)
}

func (m *mockFieldSvc) MyFields(ctx context.Context, actor *models.User, p services.FieldSearchParams) ([]models.Field, error) {
	args := m.Called(ctx, actor, p)
	f, _ := args.Get(0).([]models.Field)
	return f, args.Error(1)
}

func (m *mockFieldSvc) GetField(ctx context.Context, id uint, ref utils.Point) (*models.Field, error) {
	args := m.Called(ctx, id, ref)
	f, _ := args.Get(0).(*models.Field)
	return f, args.Error(1)
}

func (m *mockFieldSvc) CreateField(ctx context.Context, actor *models.User, in services.FieldInput) (*models.Field, error) {
	args := m.Called(ctx, actor, in)
	f, _ := args.Get(0).(*models.Field)
	return f, args.Error(1)
}

func (m *mockFieldSvc) UpdateField(ctx context.Context, actor *models.User, id uint, in services.FieldInput) (*models.Field, error) {
	args := m.Called(ctx, actor, id, in)
	f, _ := args.Get(0).(*models.Field)
	return f, args.Error(1)
}

func (m *mockFieldSvc) DeactivateField(ctx context.Context, actor *models.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockBookingSvc struct{ mock.Mock }

func (m *mockBookingSvc) CreateBooking(ctx context.Context, fieldID uint, user *models.User, start time.Time, hours int) (*models.Booking, error) {
	args := m.Called(ctx, fieldID, user, start, hours)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingSvc) ChangeStatus(ctx context.Context, fieldID, bookingID uint, actor *models.User, next models.BookingStatus) (*models.Booking, error) {
	args := m.Called(ctx, fieldID, bookingID, actor, next)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingSvc) GetBooking(ctx context.Context, fieldID, bookingID uint, actor *models.User) (*models.Booking, error) {
	args := m.Called(ctx, fieldID, bookingID, actor)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingSvc) ListFieldBookings(ctx context.Context, fieldID uint, actor *models.User, filter ports.BookingFilter) ([]models.Booking, error) {
	args := m.Called(ctx, fieldID, actor, filter)
	b, _ := args.Get(0).([]models.Booking)
	return b, args.Error(1)
}

type mockFileSvc struct{ mock.Mock }

func (m *mockFileSvc) UploadImage(ctx context.Context, actor *models.User, header *multipart.FileHeader) (*models.File, error) {
	args := m.Called(ctx, actor, header)
	f, _ := args.Get(0).(*models.File)
	return f, args.Error(1)
}

type mockLocationSvc struct{ mock.Mock }

func (m *mockLocationSvc) ListCountries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.Country)
	return v, args.Error(1)
}

func (m *mockLocationSvc) ListRegions(ctx context.Context, countryID uint) ([]models.Region, error) {
	args := m.Called(ctx, countryID)
	v, _ := args.Get(0).([]models.Region)
	return v, args.Error(1)
}

func (m *mockLocationSvc) ListDistricts(ctx context.Context, regionID uint) ([]models.District, error) {
	args := m.Called(ctx, regionID)
	v, _ := args.Get(0).([]models.District)
	return v, args.Error(1)
}
