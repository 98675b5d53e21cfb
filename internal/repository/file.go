package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rewardof/FieldBookingApp/internal/models"
)

type FileRepo struct{ db *gorm.DB }

func NewFileRepo(db *gorm.DB) *FileRepo {
	return &FileRepo{db: db}
}

func (r *FileRepo) Create(ctx context.Context, f *models.File) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func (r *FileRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.File, error) {
	var out []models.File
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("get files: %w", err)
	}
	return out, nil
}

type LocationRepo struct{ db *gorm.DB }

func NewLocationRepo(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) ListCountries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return out, nil
}

func (r *LocationRepo) ListRegions(ctx context.Context, countryID uint) ([]models.Region, error) {
	q := r.db.WithContext(ctx)
	if countryID != 0 {
		q = q.Where("country_id = ?", countryID)
	}
	var out []models.Region
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return out, nil
}

func (r *LocationRepo) ListDistricts(ctx context.Context, regionID uint) ([]models.District, error) {
	q := r.db.WithContext(ctx)
	if regionID != 0 {
		q = q.Where("region_id = ?", regionID)
	}
	var out []models.District
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return out, nil
}

func (r *LocationRepo) DistrictExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.District{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check district: %w", err)
	}
	return n > 0, nil
}
