package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

const (
	OrderByDistance = "distance"
	OrderByName     = "name"
)

// Ordering is a primary sort key with name as the ascending tie-break.
// Desc reverses the primary key only.
type Ordering struct {
	Key  string
	Desc bool
}

// ParseOrdering reads the ordering query value. A missing value orders by
// distance, an empty one by name; unknown keys fall back to name.
func ParseOrdering(raw string, present bool) Ordering {
	if !present {
		return Ordering{Key: OrderByDistance}
	}
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	key := strings.TrimPrefix(raw, "-")
	switch key {
	case OrderByDistance, OrderByName:
		return Ordering{Key: key, Desc: desc}
	default:
		return Ordering{Key: OrderByName}
	}
}

func (o Ordering) String() string {
	if o.Desc {
		return "-" + o.Key
	}
	return o.Key
}

type FieldSearchParams struct {
	Search     string
	DistrictID uint
	OwnerID    uint
	// Ref is the caller's coordinate; the zero point means unset.
	Ref         utils.Point
	MaxDistance *float64
	// Both bounds must be set for availability filtering to apply.
	StartTime *time.Time
	EndTime   *time.Time
	Ordering  Ordering
}

// AnnotateDistance sets each field's distance from ref. With an unset ref
// every field gets 0; a field without coordinates gets nil otherwise.
func AnnotateDistance(fields []models.Field, ref utils.Point) {
	for i := range fields {
		f := &fields[i]
		if ref.IsZero() {
			zero := 0.0
			f.Distance = &zero
			continue
		}
		lat, lng, ok := f.Location()
		if !ok {
			f.Distance = nil
			continue
		}
		d := utils.DistanceFrom(ref, lat, lng)
		f.Distance = &d
	}
}

func distanceKey(f *models.Field) float64 {
	if f.Distance == nil {
		return math.Inf(1)
	}
	return *f.Distance
}

func compareNames(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	}
	return strings.Compare(a, b)
}

// SortFields orders fields in place by o, then name ascending, then id.
func SortFields(fields []models.Field, o Ordering) {
	sort.SliceStable(fields, func(i, j int) bool {
		a, b := &fields[i], &fields[j]

		primary := 0
		if o.Key == OrderByDistance {
			da, db := distanceKey(a), distanceKey(b)
			switch {
			case da < db:
				primary = -1
			case da > db:
				primary = 1
			}
		} else {
			primary = compareNames(a.Name, b.Name)
		}
		if o.Desc {
			primary = -primary
		}
		if primary != 0 {
			return primary < 0
		}

		if c := compareNames(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

// SearchFields runs the search pipeline: active fields, text search and
// district filter in the store, then distance annotation and bound,
// availability exclusion and ordering.
func SearchFields(ctx context.Context, fields ports.FieldRepo, availability *AvailabilityIndex, p FieldSearchParams) ([]models.Field, error) {
	q := ports.FieldQuery{
		Search:     p.Search,
		DistrictID: p.DistrictID,
		OwnerID:    p.OwnerID,
	}
	if p.MaxDistance != nil && !p.Ref.IsZero() {
		bbox := utils.GetBoundingBox(p.Ref.Lat, p.Ref.Lng, *p.MaxDistance)
		q.BBox = &bbox
	}

	candidates, err := fields.List(ctx, q)
	if err != nil {
		return nil, err
	}

	AnnotateDistance(candidates, p.Ref)

	var booked map[uint]struct{}
	if p.StartTime != nil && p.EndTime != nil {
		booked, err = availability.BookedFields(ctx, *p.StartTime, *p.EndTime)
		if err != nil {
			return nil, err
		}
	}

	out := candidates[:0]
	for _, f := range candidates {
		if p.MaxDistance != nil && (f.Distance == nil || *f.Distance > *p.MaxDistance) {
			continue
		}
		if _, ok := booked[f.ID]; ok {
			continue
		}
		out = append(out, f)
	}

	SortFields(out, p.Ordering)
	return out, nil
}
