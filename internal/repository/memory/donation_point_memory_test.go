package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donationpoints/internal/model"
)

func point(name, city string, lat, lon float64, items ...model.AcceptedItem) *model.DonationPoint {
	return &model.DonationPoint{
		Name:                name,
		Address:             "Calle 1",
		PostalCode:          "46001",
		City:                city,
		Province:            city,
		AutonomousCommunity: "CV",
		Latitude:            lat,
		Longitude:           lon,
		AcceptedItems:       items,
		IsActive:            true,
	}
}

func TestDonationPointMemory_Create(t *testing.T) {
	repo := NewDonationPointMemory()
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	in := point("Parroquia", "Valencia", 39.47, -0.376, model.ItemFood, model.ItemClothing)
	out, err := repo.Create(context.Background(), in)

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Empty(t, in.ID, "input must not be mutated")
	assert.Equal(t, fixed, out.CreatedAt)
	assert.Equal(t, fixed, out.UpdatedAt)
	assert.Equal(t, fixed, out.LastVerification)
	assert.Equal(t, []model.AcceptedItem{model.ItemFood, model.ItemClothing}, out.AcceptedItems)

	out.AcceptedItems[0] = model.ItemOther
	stored, err := repo.FindMany(context.Background(), model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, model.ItemFood, stored[0].AcceptedItems[0])
}

func TestDonationPointMemory_FindMany(t *testing.T) {
	ctx := context.Background()
	repo := NewDonationPointMemory()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	a, _ := repo.Create(ctx, point("A", "Valencia", 1, 1, model.ItemFood))
	b, _ := repo.Create(ctx, point("B", "Madrid", 2, 2, model.ItemFood))
	c, _ := repo.Create(ctx, point("C", "Valencia", 3, 3, model.ItemTools))
	inactive := point("D", "Valencia", 4, 4, model.ItemFood)
	inactive.IsActive = false
	_, _ = repo.Create(ctx, inactive)

	all, err := repo.FindMany(ctx, model.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	again, err := repo.FindMany(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, all, again)

	valenciaFood, err := repo.FindMany(ctx, model.ListFilter{City: "Valencia", AcceptedItems: []model.AcceptedItem{model.ItemFood}})
	require.NoError(t, err)
	require.Len(t, valenciaFood, 1)
	assert.Equal(t, a.ID, valenciaFood[0].ID)
}

func TestDonationPointMemory_FindManySameTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := NewDonationPointMemory()
	fixed := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	first, _ := repo.Create(ctx, point("first", "Valencia", 1, 1))
	second, _ := repo.Create(ctx, point("second", "Valencia", 2, 2))

	all, err := repo.FindMany(ctx, model.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestDonationPointMemory_FindNearby(t *testing.T) {
	ctx := context.Background()
	repo := NewDonationPointMemory()

	inactive := point("Closed", "Valencia", 39.47, -0.376)
	inactive.IsActive = false
	stored, err := repo.Create(ctx, inactive)
	require.NoError(t, err)

	got, err := repo.FindNearby(ctx, model.BoundsAround(39.4705, -0.3755, 0.001))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.ID)

	got, err = repo.FindNearby(ctx, model.BoundsAround(40.0, -3.0, 0.001))
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDonationPointMemory_CanceledContext(t *testing.T) {
	repo := NewDonationPointMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, point("A", "Valencia", 1, 1))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindMany(ctx, model.ListFilter{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindNearby(ctx, model.Bounds{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDonationPointMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewDonationPointMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.Create(ctx, point("P", "Valencia", float64(i), float64(i)))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = repo.FindMany(ctx, model.ListFilter{})
		}()
	}
	wg.Wait()

	all, err := repo.FindMany(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
