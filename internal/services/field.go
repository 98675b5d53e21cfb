package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

type AddressInput struct {
	AddressLine string
	DistrictID  uint
	Zipcode     string
	Latitude    *float64
	Longitude   *float64
}

type FieldInput struct {
	Name           string
	Description    string
	ContactNumber  string
	ContactNumber2 string
	HourlyPrice    int64
	Width          int
	Length         int
	OwnerID        *uint
	Address        AddressInput
	// ImageIDs replaces the image set; nil keeps it on update.
	ImageIDs []uint
}

// FieldRule validates a create or update request made by actor.
type FieldRule func(actor *models.User, in *FieldInput) error

func DimensionsRule(_ *models.User, in *FieldInput) error {
	if in.Width < 5 || in.Width > 100 {
		return fmt.Errorf("field width must be between 5 and 100 meters: %w", models.ErrDimensionOutOfRange)
	}
	if in.Length < 10 || in.Length > 120 {
		return fmt.Errorf("field length must be between 10 and 120 meters: %w", models.ErrDimensionOutOfRange)
	}
	return nil
}

func PriceRule(_ *models.User, in *FieldInput) error {
	if in.HourlyPrice <= 0 {
		return models.ErrNonPositivePrice
	}
	return nil
}

// OwnerRule makes admins name the owner of the field they create.
func OwnerRule(actor *models.User, in *FieldInput) error {
	if actor.IsAdmin() && (in.OwnerID == nil || *in.OwnerID == 0) {
		return models.ErrOwnerRequired
	}
	return nil
}

func ContactRule(_ *models.User, in *FieldInput) error {
	if !utils.IsValidPhoneNumber(in.ContactNumber) {
		return fmt.Errorf("contact_number: %w", models.ErrInvalidPhoneNumber)
	}
	if in.ContactNumber2 != "" && !utils.IsValidPhoneNumber(in.ContactNumber2) {
		return fmt.Errorf("contact_number2: %w", models.ErrInvalidPhoneNumber)
	}
	return nil
}

func NameRule(_ *models.User, in *FieldInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	return nil
}

// DefaultFieldRules are the checks every field write goes through.
var DefaultFieldRules = []FieldRule{NameRule, DimensionsRule, PriceRule, ContactRule}

func runFieldRules(rules []FieldRule, actor *models.User, in *FieldInput) error {
	for _, rule := range rules {
		if err := rule(actor, in); err != nil {
			return err
		}
	}
	return nil
}

type FieldService struct {
	fields       ports.FieldRepo
	locations    ports.LocationRepo
	availability *AvailabilityIndex
	log          *zap.Logger
}

func NewFieldService(fields ports.FieldRepo, locations ports.LocationRepo, bookings ports.BookingReader, log *zap.Logger) *FieldService {
	return &FieldService{
		fields:       fields,
		locations:    locations,
		availability: NewAvailabilityIndex(bookings),
		log:          log.Named("field"),
	}
}

func (s *FieldService) CreateField(ctx context.Context, actor *models.User, in FieldInput) (*models.Field, error) {
	if !actor.IsStaff() {
		return nil, models.ErrForbidden
	}
	rules := append([]FieldRule{OwnerRule}, DefaultFieldRules...)
	if err := runFieldRules(rules, actor, &in); err != nil {
		return nil, err
	}
	if err := s.checkDistrict(ctx, in.Address.DistrictID); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	if actor.IsAdmin() {
		ownerID = *in.OwnerID
	}

	f := &models.Field{OwnerID: ownerID, IsActive: true, Address: &models.Address{}}
	applyFieldInput(f, &in)

	if err := s.fields.Create(ctx, f, in.ImageIDs); err != nil {
		return nil, err
	}
	s.log.Info("field created", zap.Uint("field_id", f.ID), zap.Uint("owner_id", f.OwnerID))
	return f, nil
}

func (s *FieldService) UpdateField(ctx context.Context, actor *models.User, id uint, in FieldInput) (*models.Field, error) {
	f, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() || !canManage(actor, f) {
		return nil, models.ErrForbidden
	}
	if in.OwnerID != nil && *in.OwnerID != f.OwnerID {
		return nil, models.ErrOwnerChange
	}
	if err := runFieldRules(DefaultFieldRules, actor, &in); err != nil {
		return nil, err
	}
	if err := s.checkDistrict(ctx, in.Address.DistrictID); err != nil {
		return nil, err
	}

	if f.Address == nil {
		f.Address = &models.Address{}
	}
	applyFieldInput(f, &in)

	if err := s.fields.Update(ctx, f, in.ImageIDs); err != nil {
		return nil, err
	}
	return f, nil
}

// GetField returns an active field annotated with its distance from ref.
func (s *FieldService) GetField(ctx context.Context, id uint, ref utils.Point) (*models.Field, error) {
	f, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.IsActive {
		return nil, models.ErrFieldNotFound
	}
	one := []models.Field{*f}
	AnnotateDistance(one, ref)
	return &one[0], nil
}

func (s *FieldService) DeactivateField(ctx context.Context, actor *models.User, id uint) error {
	f, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsStaff() || !canManage(actor, f) {
		return models.ErrForbidden
	}
	if err := s.fields.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info("field deactivated", zap.Uint("field_id", id), zap.Uint("actor_id", actor.ID))
	return nil
}

func (s *FieldService) Search(ctx context.Context, p FieldSearchParams) ([]models.Field, error) {
	p.OwnerID = 0
	return SearchFields(ctx, s.fields, s.availability, p)
}

// MyFields applies the search pipeline to the fields actor owns.
func (s *FieldService) MyFields(ctx context.Context, actor *models.User, p FieldSearchParams) ([]models.Field, error) {
	p.OwnerID = actor.ID
	return SearchFields(ctx, s.fields, s.availability, p)
}

func (s *FieldService) checkDistrict(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("district is required: %w", models.ErrValidation)
	}
	ok, err := s.locations.DistrictExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("district %d does not exist: %w", id, models.ErrValidation)
	}
	return nil
}

func applyFieldInput(f *models.Field, in *FieldInput) {
	f.Name = strings.TrimSpace(in.Name)
	f.Description = in.Description
	f.ContactNumber = in.ContactNumber
	f.ContactNumber2 = in.ContactNumber2
	f.HourlyPrice = in.HourlyPrice
	f.Width = in.Width
	f.Length = in.Length

	f.Address.AddressLine = in.Address.AddressLine
	f.Address.DistrictID = in.Address.DistrictID
	f.Address.Zipcode = in.Address.Zipcode
	f.Address.Latitude = in.Address.Latitude
	f.Address.Longitude = in.Address.Longitude
}
