package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"donationpoints/internal/model"
	repoMocks "donationpoints/internal/repository/mocks"
	"donationpoints/internal/storage"
	storeMocks "donationpoints/internal/storage/mocks"
)

func isSnapshotKey(key string) bool {
	return strings.HasPrefix(key, "snapshots/20261017T090000Z-") && strings.HasSuffix(key, ".geojson")
}

func TestDonationPointService_Snapshot(t *testing.T) {
	ctx := context.Background()
	filter := model.ListFilter{Province: "Valencia"}
	points := []model.DonationPoint{
		{ID: "p1", Name: "Parroquia", Latitude: 39.47, Longitude: -0.376, AcceptedItems: []model.AcceptedItem{model.ItemFood}},
	}
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	newService := func(repo *repoMocks.MockDonationPointRepository, store *storeMocks.MockStorage) *donationPointService {
		svc := NewDonationPointService(repo, WithSnapshotStore(store, 10*time.Minute)).(*donationPointService)
		svc.now = func() time.Time { return now }
		return svc
	}

	t.Run("happy path", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		store := new(storeMocks.MockStorage)
		repo.On("FindMany", mock.Anything, filter).Return(points, nil)

		var uploaded []byte
		store.On("Put", mock.Anything, mock.MatchedBy(isSnapshotKey), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
			return o.ContentType == GeoJSONContentType && o.Metadata["point-count"] == "1" && o.Size > 0
		})).Return(func(_ context.Context, key string, r io.Reader, o storage.PutObjectOptions) storage.ObjectInfo {
			uploaded, _ = io.ReadAll(r)
			return storage.ObjectInfo{Key: key, Size: o.Size}
		}, nil)
		store.On("PresignGet", mock.Anything, mock.MatchedBy(isSnapshotKey), 10*time.Minute).
			Return("https://minio.local/snap?sig=1", nil)

		res, err := newService(repo, store).Snapshot(ctx, filter)

		require.NoError(t, err)
		assert.True(t, isSnapshotKey(res.Key))
		assert.Equal(t, "https://minio.local/snap?sig=1", res.URL)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, now.Add(10*time.Minute), res.ExpiresAt)

		var fc model.FeatureCollection
		require.NoError(t, json.Unmarshal(uploaded, &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		require.Len(t, fc.Features, 1)
		assert.Equal(t, []float64{-0.376, 39.47}, fc.Features[0].Geometry.Coordinates)
		store.AssertExpectations(t)
	})

	t.Run("disabled", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)

		res, err := NewDonationPointService(repo).Snapshot(ctx, filter)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrSnapshotsDisabled)
		repo.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything)
	})

	t.Run("upload failure", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		store := new(storeMocks.MockStorage)
		repo.On("FindMany", mock.Anything, filter).Return(points, nil)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		res, err := newService(repo, store).Snapshot(ctx, filter)

		assert.Nil(t, res)
		assert.EqualError(t, err, "upload snapshot: bucket gone")
	})

	t.Run("presign failure removes the object", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		store := new(storeMocks.MockStorage)
		repo.On("FindMany", mock.Anything, filter).Return(points, nil)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "snapshots/x.geojson"}, nil)
		store.On("PresignGet", mock.Anything, "snapshots/x.geojson", 10*time.Minute).
			Return("", errors.New("clock skew"))
		store.On("Delete", mock.Anything, "snapshots/x.geojson").Return(nil)

		res, err := newService(repo, store).Snapshot(ctx, filter)

		assert.Nil(t, res)
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "sign snapshot url", perr.Op)
		store.AssertExpectations(t)
	})

	t.Run("list failure", func(t *testing.T) {
		repo := new(repoMocks.MockDonationPointRepository)
		store := new(storeMocks.MockStorage)
		repo.On("FindMany", mock.Anything, filter).Return(nil, errors.New("db down"))

		res, err := newService(repo, store).Snapshot(ctx, filter)

		assert.Nil(t, res)
		assert.ErrorContains(t, err, "db down")
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
