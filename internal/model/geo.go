package model

// Bounds is an inclusive latitude/longitude box in degrees.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// BoundsAround returns the box [lat-r, lat+r] x [lon-r, lon+r].
// The box is not clamped at the poles or the antimeridian.
func BoundsAround(lat, lon, r float64) Bounds {
	return Bounds{
		MinLat: lat - r,
		MaxLat: lat + r,
		MinLon: lon - r,
		MaxLon: lon + r,
	}
}

// Contains reports whether (lat, lon) lies inside b, bounds included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
