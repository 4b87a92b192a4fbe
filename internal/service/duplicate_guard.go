package service

import (
	"context"

	"donationpoints/internal/model"
	"donationpoints/internal/repository"
)

// SearchRadius is the half-width, in degrees, of the square searched for existing points.
const SearchRadius = 0.001

// boundaryTolerance keeps points exactly SearchRadius away inside the box despite float rounding.
const boundaryTolerance = 1e-9

// DuplicateGuard detects an existing point near a candidate location.
// Check and a later Create are not atomic; two concurrent submissions can both pass.
type DuplicateGuard struct {
	repo   repository.DonationPointRepository
	radius float64
}

// NewDuplicateGuard returns a guard searching SearchRadius around each candidate.
func NewDuplicateGuard(repo repository.DonationPointRepository) *DuplicateGuard {
	return &DuplicateGuard{repo: repo, radius: SearchRadius}
}

// Bounds is the inclusive box searched around (lat, lon).
func (g *DuplicateGuard) Bounds(lat, lon float64) model.Bounds {
	return model.BoundsAround(lat, lon, g.radius+boundaryTolerance)
}

// Check returns any stored point, active or not, inside the box around (lat, lon).
// It returns nil, nil when the location is free.
func (g *DuplicateGuard) Check(ctx context.Context, lat, lon float64) (*model.DonationPoint, error) {
	return g.repo.FindNearby(ctx, g.Bounds(lat, lon))
}
