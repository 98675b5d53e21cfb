package handlers

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, models.ErrValidation)
	}
	return uint(id), nil
}

func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, models.ErrValidation)
	}
	return uint(v), nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid %s: %w", name, models.ErrValidation)
	}
	return &v, nil
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, expected RFC3339: %w", name, models.ErrValidation)
	}
	return &t, nil
}

// referencePoint reads latitude and longitude. Missing values are zero,
// which disables distance ordering.
func referencePoint(c *gin.Context) (utils.Point, error) {
	lat, err := queryFloat(c, "latitude")
	if err != nil {
		return utils.Point{}, err
	}
	lng, err := queryFloat(c, "longitude")
	if err != nil {
		return utils.Point{}, err
	}
	var p utils.Point
	if lat != nil {
		p.Lat = *lat
	}
	if lng != nil {
		p.Lng = *lng
	}
	return p, nil
}

// searchParams parses the field search query string.
func searchParams(c *gin.Context) (services.FieldSearchParams, error) {
	var p services.FieldSearchParams
	var err error

	p.Search = c.Query("search")
	if p.DistrictID, err = queryUint(c, "district"); err != nil {
		return p, err
	}
	if p.Ref, err = referencePoint(c); err != nil {
		return p, err
	}
	if p.MaxDistance, err = queryFloat(c, "distance"); err != nil {
		return p, err
	}
	if p.StartTime, err = queryTime(c, "start_time"); err != nil {
		return p, err
	}
	if p.EndTime, err = queryTime(c, "end_time"); err != nil {
		return p, err
	}
	ordering, present := c.GetQuery("ordering")
	p.Ordering = services.ParseOrdering(ordering, present)
	return p, nil
}
