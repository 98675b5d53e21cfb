package utils

import (
	"math"
)

// EarthRadiusKm is the sphere radius used for all great-circle distances.
const EarthRadiusKm = 6371

// HaversineDistance calculates the distance between two points on Earth
// using the Haversine formula. Returns distance in kilometers.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert degrees to radians
	lat1Rad := lat1 * math.Pi / 180
	lng1Rad := lng1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lng2Rad := lng2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlng := lng2Rad - lng1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dlng/2)*math.Sin(dlng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Point represents a geographical point
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the point is unset. Coordinates are not range
// checked; any non-zero pair is used as given.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// DistanceFrom returns the distance in kilometers from ref to (lat, lng).
// An unset ref yields 0 so that callers fall back to non-distance ordering.
func DistanceFrom(ref Point, lat, lng float64) float64 {
	if ref.IsZero() {
		return 0
	}
	return HaversineDistance(ref.Lat, ref.Lng, lat, lng)
}

// BoundingBox represents a rectangular area. A side pinned at ±90 latitude
// or a longitude span of [-180, 180] places no bound on that side.
type BoundingBox struct {
	NorthEast Point `json:"northEast"`
	SouthWest Point `json:"southWest"`
}

// GetBoundingBox returns a box containing every point within radiusKm of
// the center.
func GetBoundingBox(centerLat, centerLng, radiusKm float64) BoundingBox {
	full := BoundingBox{
		NorthEast: Point{Lat: 90, Lng: 180},
		SouthWest: Point{Lat: -90, Lng: -180},
	}

	angularDistance := radiusKm / EarthRadiusKm
	if angularDistance >= math.Pi {
		return full
	}

	latDelta := angularDistance * 180 / math.Pi
	latMin := centerLat - latDelta
	latMax := centerLat + latDelta

	// The circle reaches a pole: every longitude is in range.
	if latMax >= 90 || latMin <= -90 {
		full.NorthEast.Lat = math.Min(latMax, 90)
		full.SouthWest.Lat = math.Max(latMin, -90)
		return full
	}

	// Widest longitude offset of a circle of angular radius d at latitude
	// lat is asin(sin d / cos lat).
	lngDelta := math.Asin(math.Sin(angularDistance)/math.Cos(centerLat*math.Pi/180)) * 180 / math.Pi
	lngMin := centerLng - lngDelta
	lngMax := centerLng + lngDelta
	if lngMin < -180 || lngMax > 180 {
		lngMin, lngMax = -180, 180
	}

	return BoundingBox{
		NorthEast: Point{Lat: latMax, Lng: lngMax},
		SouthWest: Point{Lat: latMin, Lng: lngMin},
	}
}

func (b BoundingBox) HasNorthBound() bool { return b.NorthEast.Lat < 90 }

func (b BoundingBox) HasSouthBound() bool { return b.SouthWest.Lat > -90 }

// HasLngBound is false when the box spans every longitude.
func (b BoundingBox) HasLngBound() bool {
	return b.SouthWest.Lng > -180 || b.NorthEast.Lng < 180
}

// IsPointInBoundingBox checks if a point is within a bounding box
func IsPointInBoundingBox(point Point, bbox BoundingBox) bool {
	if bbox.HasNorthBound() && point.Lat > bbox.NorthEast.Lat {
		return false
	}
	if bbox.HasSouthBound() && point.Lat < bbox.SouthWest.Lat {
		return false
	}
	if bbox.HasLngBound() && (point.Lng < bbox.SouthWest.Lng || point.Lng > bbox.NorthEast.Lng) {
		return false
	}
	return true
}
