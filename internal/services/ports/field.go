package ports

import (
	"context"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

// FieldQuery holds the filters a store can apply before distance work.
type FieldQuery struct {
	Search     string
	DistrictID uint
	OwnerID    uint
	// Only rows with coordinates inside BBox are returned when set.
	BBox *utils.BoundingBox
	// IncludeInactive lists deactivated fields too.
	IncludeInactive bool
}

type FieldRepo interface {
	// Create stores the field, its address and image links in one transaction.
	Create(ctx context.Context, f *models.Field, imageIDs []uint) error
	// Update saves the field and its address; a nil imageIDs keeps the images.
	Update(ctx context.Context, f *models.Field, imageIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Field, error)
	Deactivate(ctx context.Context, id uint) error
	List(ctx context.Context, q FieldQuery) ([]models.Field, error)
}

type FileRepo interface {
	Create(ctx context.Context, f *models.File) error
	GetByIDs(ctx context.Context, ids []uint) ([]models.File, error)
}

type LocationRepo interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListRegions(ctx context.Context, countryID uint) ([]models.Region, error)
	ListDistricts(ctx context.Context, regionID uint) ([]models.District, error)
	DistrictExists(ctx context.Context, id uint) (bool, error)
}
