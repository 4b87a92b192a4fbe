package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"donationpoints/internal/model"
	repoMocks "donationpoints/internal/repository/mocks"
)

func TestDuplicateGuard_Bounds(t *testing.T) {
	g := NewDuplicateGuard(nil)
	b := g.Bounds(39.47, -0.376)

	assert.True(t, b.Contains(39.471, -0.376), "point exactly one radius north")
	assert.True(t, b.Contains(39.469, -0.375), "point exactly one radius south east")
	assert.False(t, b.Contains(39.4711, -0.376))
	assert.False(t, b.Contains(39.47, -0.3749))
}

func TestDuplicateGuard_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("match", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		existing := &model.DonationPoint{ID: "p1"}
		repo.On("FindNearby", ctx, mock.MatchedBy(func(b model.Bounds) bool {
			return b.MinLat < 39.469 && b.MaxLat > 39.471 && b.MinLon < -0.377 && b.MaxLon > -0.375
		})).Return(existing, nil)

		got, err := NewDuplicateGuard(repo).Check(ctx, 39.47, -0.376)

		require.NoError(t, err)
		assert.Same(t, existing, got)
		repo.AssertExpectations(t)
	})

	t.Run("free", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		repo.On("FindNearby", ctx, mock.Anything).Return(nil, nil)

		got, err := NewDuplicateGuard(repo).Check(ctx, 0, 0)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		repo.On("FindNearby", ctx, mock.Anything).Return(nil, errors.New("db down"))

		got, err := NewDuplicateGuard(repo).Check(ctx, 0, 0)

		assert.Nil(t, got)
		assert.EqualError(t, err, "db down")
	})
}
