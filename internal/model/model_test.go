package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptedItem_Valid(t *testing.T) {
	for _, it := range AcceptedItems {
		assert.True(t, it.Valid(), it)
	}
	assert.False(t, AcceptedItem("food").Valid())
	assert.False(t, AcceptedItem("TOYS").Valid())
}

func TestBounds_Contains(t *testing.T) {
	b := BoundsAround(39.47, -0.376, 0.001)

	assert.True(t, b.Contains(39.47, -0.376))
	assert.True(t, b.Contains(b.MaxLat, b.MaxLon))
	assert.True(t, b.Contains(b.MinLat, b.MinLon))
	assert.False(t, b.Contains(39.4712, -0.376))
	assert.False(t, b.Contains(39.47, -0.3748))
}

func TestListFilter_Matches(t *testing.T) {
	p := &DonationPoint{
		City:                "Valencia",
		Province:            "Valencia",
		AutonomousCommunity: "Comunidad Valenciana",
		AcceptedItems:       []AcceptedItem{ItemFood, ItemClothing},
		IsActive:            true,
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{"empty filter", ListFilter{}, true},
		{"city match", ListFilter{City: "Valencia"}, true},
		{"city mismatch", ListFilter{City: "Madrid"}, false},
		{"item overlap", ListFilter{AcceptedItems: []AcceptedItem{ItemTools, ItemFood}}, true},
		{"no item overlap", ListFilter{AcceptedItems: []AcceptedItem{ItemTools}}, false},
		{"conjunction", ListFilter{City: "Valencia", Province: "Valencia", AcceptedItems: []AcceptedItem{ItemClothing}}, true},
		{"conjunction fails on community", ListFilter{City: "Valencia", AutonomousCommunity: "Cataluña"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}

	inactive := *p
	inactive.IsActive = false
	assert.False(t, ListFilter{}.Matches(&inactive))
}

func TestNewFeatureCollection(t *testing.T) {
	fc := NewFeatureCollection([]DonationPoint{
		{ID: "a", Name: "Parroquia", Latitude: 39.47, Longitude: -0.376, AcceptedItems: []AcceptedItem{ItemFood}},
	})

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, "a", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{-0.376, 39.47}, f.Geometry.Coordinates)
	assert.Equal(t, "Parroquia", f.Properties["name"])
	assert.Equal(t, []string{"FOOD"}, f.Properties["acceptedItems"])
}
