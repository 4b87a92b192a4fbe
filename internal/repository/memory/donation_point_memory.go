package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"donationpoints/internal/model"
	"donationpoints/internal/repository"
)

// DonationPointMemory is an in-memory repository for donation points.
// Records are kept in insertion order; FindNearby returns the earliest match.
type DonationPointMemory struct {
	mu     sync.RWMutex
	points []model.DonationPoint
	now    func() time.Time
}

// NewDonationPointMemory constructs an empty repository.
func NewDonationPointMemory() *DonationPointMemory {
	return &DonationPointMemory{now: func() time.Time { return time.Now().UTC() }}
}

var _ repository.DonationPointRepository = (*DonationPointMemory)(nil)

// Create stores a copy of p with a fresh ID and timestamps.
func (r *DonationPointMemory) Create(ctx context.Context, p *model.DonationPoint) (*model.DonationPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := clonePoint(*p)
	stored.ID = uuid.NewString()
	stored.VerifiedAt = nil

	r.mu.Lock()
	now := r.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.LastVerification = now
	r.points = append(r.points, stored)
	r.mu.Unlock()

	out := clonePoint(stored)
	return &out, nil
}

// FindMany returns active points matching f, newest first.
func (r *DonationPointMemory) FindMany(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Walk backwards so equal timestamps keep the latest insert first.
	r.mu.RLock()
	items := make([]model.DonationPoint, 0)
	for i := len(r.points) - 1; i >= 0; i-- {
		if f.Matches(&r.points[i]) {
			items = append(items, clonePoint(r.points[i]))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// FindNearby returns the first stored point inside b, active or not.
func (r *DonationPointMemory) FindNearby(ctx context.Context, b model.Bounds) (*model.DonationPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.points {
		if b.Contains(r.points[i].Latitude, r.points[i].Longitude) {
			out := clonePoint(r.points[i])
			return &out, nil
		}
	}
	return nil, nil
}

func clonePoint(p model.DonationPoint) model.DonationPoint {
	if p.AcceptedItems != nil {
		p.AcceptedItems = append([]model.AcceptedItem(nil), p.AcceptedItems...)
		if p.AcceptedItems == nil {
			p.AcceptedItems = []model.AcceptedItem{}
		}
	}
	return p
}
