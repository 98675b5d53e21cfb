package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

type FieldRepo struct{ db *gorm.DB }

func NewFieldRepo(db *gorm.DB) *FieldRepo {
	return &FieldRepo{db: db}
}

func (r *FieldRepo) Create(ctx context.Context, f *models.Field, imageIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if f.Address != nil {
			if err := tx.Create(f.Address).Error; err != nil {
				return fmt.Errorf("insert address: %w", err)
			}
			f.AddressID = f.Address.ID
		}
		if err := tx.Omit(clause.Associations).Create(f).Error; err != nil {
			return fmt.Errorf("insert field: %w", err)
		}
		return replaceImages(tx, f, imageIDs)
	})
	return mapFieldErr(err)
}

func (r *FieldRepo) Update(ctx context.Context, f *models.Field, imageIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if f.Address != nil {
			f.Address.ID = f.AddressID
			if err := tx.Save(f.Address).Error; err != nil {
				return fmt.Errorf("update address: %w", err)
			}
		}
		if err := tx.Omit(clause.Associations).Save(f).Error; err != nil {
			return fmt.Errorf("update field: %w", err)
		}
		if imageIDs == nil {
			return nil
		}
		return replaceImages(tx, f, imageIDs)
	})
	return mapFieldErr(err)
}

func replaceImages(tx *gorm.DB, f *models.Field, imageIDs []uint) error {
	files := []models.File{}
	if len(imageIDs) > 0 {
		if err := tx.Where("id IN ?", imageIDs).Find(&files).Error; err != nil {
			return fmt.Errorf("load images: %w", err)
		}
		if len(files) != len(uniqueIDs(imageIDs)) {
			return models.ErrFileNotFound
		}
	}
	if err := tx.Model(f).Association("Images").Replace(files); err != nil {
		return fmt.Errorf("link images: %w", err)
	}
	f.Images = files
	return nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func mapFieldErr(err error) error {
	if err == nil {
		return nil
	}
	if pgCode(err) == pgForeignKeyViolation {
		return fmt.Errorf("unknown district or owner: %w", models.ErrValidation)
	}
	return err
}

func (r *FieldRepo) GetByID(ctx context.Context, id uint) (*models.Field, error) {
	var f models.Field
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Images").
		Take(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get field: %w", err)
	}
	return &f, nil
}

func (r *FieldRepo) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Field{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate field: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrFieldNotFound
	}
	return nil
}

// List applies the SQL side filters. Distance, availability and ordering
// are handled by the caller.
func (r *FieldRepo) List(ctx context.Context, q ports.FieldQuery) ([]models.Field, error) {
	db := r.db.WithContext(ctx).
		Joins("Address").
		Preload("Images")

	if !q.IncludeInactive {
		db = db.Where("fields.is_active = ?", true)
	}
	if q.OwnerID != 0 {
		db = db.Where("fields.owner_id = ?", q.OwnerID)
	}
	if q.DistrictID != 0 {
		db = db.Where(`"Address"."district_id" = ?`, q.DistrictID)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		db = db.Where(
			`(fields.name ILIKE ? OR fields.description ILIKE ? OR "Address"."address_line" ILIKE ?)`,
			pattern, pattern, pattern,
		)
	}
	if b := q.BBox; b != nil {
		db = db.Where(`"Address"."latitude" IS NOT NULL AND "Address"."longitude" IS NOT NULL`)
		if b.HasSouthBound() {
			db = db.Where(`"Address"."latitude" >= ?`, b.SouthWest.Lat)
		}
		if b.HasNorthBound() {
			db = db.Where(`"Address"."latitude" <= ?`, b.NorthEast.Lat)
		}
		if b.HasLngBound() {
			db = db.Where(`"Address"."longitude" BETWEEN ? AND ?`, b.SouthWest.Lng, b.NorthEast.Lng)
		}
	}

	var out []models.Field
	if err := db.Order("fields.id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
