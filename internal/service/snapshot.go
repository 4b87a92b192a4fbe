package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"donationpoints/internal/logging"
	"donationpoints/internal/model"
	"donationpoints/internal/storage"
)

// GeoJSONContentType is the media type of uploaded snapshots.
const GeoJSONContentType = "application/geo+json"

// SnapshotResult describes an uploaded GeoJSON snapshot.
type SnapshotResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *donationPointService) Snapshot(ctx context.Context, f model.ListFilter) (*SnapshotResult, error) {
	if s.store == nil {
		return nil, ErrSnapshotsDisabled
	}

	ctx, span := tracer.Start(ctx, "DonationPointService.Snapshot")
	defer span.End()

	points, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(model.NewFeatureCollection(points))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	now := s.now()
	key := path.Join("snapshots", now.Format("20060102T150405Z")+"-"+uuid.NewString()+".geojson")

	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: GeoJSONContentType,
		Metadata: map[string]string{
			"point-count": strconv.Itoa(len(points)),
		},
	})
	if err != nil {
		return nil, s.persistenceFailure(span, "upload snapshot", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, s.snapshotExpiry)
	if err != nil {
		// Nobody can reach the object without a link; remove it.
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			logging.FromContext(ctx, s.log).Warn("snapshot_rollback_failed", "key", info.Key, "error", delErr)
		}
		return nil, s.persistenceFailure(span, "sign snapshot url", err)
	}

	span.SetAttributes(
		attribute.String("snapshot.key", info.Key),
		attribute.Int("snapshot.count", len(points)),
	)
	return &SnapshotResult{
		Key:       info.Key,
		URL:       url,
		Count:     len(points),
		ExpiresAt: now.Add(s.snapshotExpiry),
	}, nil
}
