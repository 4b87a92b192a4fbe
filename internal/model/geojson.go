package model

// FeatureCollection is a GeoJSON feature collection of donation points.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   PointGeometry  `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// PointGeometry is a GeoJSON Point. Coordinates are [lon, lat].
type PointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewFeatureCollection renders points as GeoJSON Point features.
func NewFeatureCollection(points []DonationPoint) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(points))}
	for i := range points {
		p := &points[i]
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			ID:   p.ID,
			Geometry: PointGeometry{
				Type:        "Point",
				Coordinates: []float64{p.Longitude, p.Latitude},
			},
			Properties: map[string]any{
				"name":                p.Name,
				"description":         p.Description,
				"address":             p.Address,
				"postalCode":          p.PostalCode,
				"city":                p.City,
				"province":            p.Province,
				"autonomousCommunity": p.AutonomousCommunity,
				"googleMapsUrl":       p.GoogleMapsURL,
				"phone":               p.Phone,
				"email":               p.Email,
				"website":             p.Website,
				"schedule":            p.Schedule,
				"acceptedItems":       p.ItemStrings(),
				"createdAt":           p.CreatedAt,
			},
		})
	}
	return fc
}
