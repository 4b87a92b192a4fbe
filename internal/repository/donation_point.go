package repository

import (
	"context"

	"donationpoints/internal/model"
)

// DonationPointRepository defines data access for donation points.
// No business logic here, only persistence operations.
type DonationPointRepository interface {
	// Create assigns the ID, CreatedAt, UpdatedAt and LastVerification of p and persists it.
	// Returns the stored record.
	Create(ctx context.Context, p *model.DonationPoint) (*model.DonationPoint, error)

	// FindMany returns active points matching every set field of the filter, newest first.
	FindMany(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error)

	// FindNearby returns any one point, active or not, inside b (bounds included).
	// It returns nil, nil when no point matches.
	FindNearby(ctx context.Context, b model.Bounds) (*model.DonationPoint, error)
}
