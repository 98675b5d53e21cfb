package handlers

import (
	"math"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services"
)

type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Code        string `json:"code" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

type AddressRequest struct {
	AddressLine string   `json:"address_line"`
	District    uint     `json:"district" binding:"required"`
	Zipcode     string   `json:"zipcode"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type FieldRequest struct {
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description"`
	ContactNumber  string         `json:"contact_number" binding:"required"`
	ContactNumber2 string         `json:"contact_number2"`
	HourlyPrice    int64          `json:"hourly_price"`
	Width          int            `json:"width"`
	Length         int            `json:"length"`
	Owner          *uint          `json:"owner"`
	Address        AddressRequest `json:"address"`
	Images         []uint         `json:"images"`
}

func (r *FieldRequest) toInput() services.FieldInput {
	return services.FieldInput{
		Name:           r.Name,
		Description:    r.Description,
		ContactNumber:  r.ContactNumber,
		ContactNumber2: r.ContactNumber2,
		HourlyPrice:    r.HourlyPrice,
		Width:          r.Width,
		Length:         r.Length,
		OwnerID:        r.Owner,
		Address: services.AddressInput{
			AddressLine: r.Address.AddressLine,
			DistrictID:  r.Address.District,
			Zipcode:     r.Address.Zipcode,
			Latitude:    r.Address.Latitude,
			Longitude:   r.Address.Longitude,
		},
		ImageIDs: r.Images,
	}
}

type CreateBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	Hours     int       `json:"hours"`
}

type ChangeStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

type FieldResponse struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Owner          uint            `json:"owner"`
	Address        *models.Address `json:"address"`
	ContactNumber  string          `json:"contact_number"`
	ContactNumber2 string          `json:"contact_number2"`
	Description    string          `json:"description"`
	HourlyPrice    int64           `json:"hourly_price"`
	Width          int             `json:"width"`
	Length         int             `json:"length"`
	IsActive       bool            `json:"is_active"`
	Images         []models.File   `json:"images"`
	Distance       *float64        `json:"distance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// roundKm rounds a distance to two decimals for presentation.
func roundKm(d *float64) *float64 {
	if d == nil {
		return nil
	}
	r := math.Round(*d*100) / 100
	return &r
}

func ToFieldResponse(f *models.Field) FieldResponse {
	images := f.Images
	if images == nil {
		images = []models.File{}
	}
	return FieldResponse{
		ID:             f.ID,
		Name:           f.Name,
		Owner:          f.OwnerID,
		Address:        f.Address,
		ContactNumber:  f.ContactNumber,
		ContactNumber2: f.ContactNumber2,
		Description:    f.Description,
		HourlyPrice:    f.HourlyPrice,
		Width:          f.Width,
		Length:         f.Length,
		IsActive:       f.IsActive,
		Images:         images,
		Distance:       roundKm(f.Distance),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func toFieldResponses(fields []models.Field) []FieldResponse {
	out := make([]FieldResponse, 0, len(fields))
	for i := range fields {
		out = append(out, ToFieldResponse(&fields[i]))
	}
	return out
}
