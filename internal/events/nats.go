// Package events publishes donation point lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"donationpoints/internal/model"
)

// TypePointCreated is the event type emitted after a point is stored.
const TypePointCreated = "donation_point.created"

// PointCreated is the payload published for every stored point.
type PointCreated struct {
	Type       string               `json:"type"`
	Forced     bool                 `json:"forced"`
	OccurredAt time.Time            `json:"occurredAt"`
	Point      *model.DonationPoint `json:"point"`
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes events on a single NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	pub     publisher
	subject string
	now     func() time.Time
}

// NewNATSPublisher connects to url. The connection keeps retrying in the background.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("donationpoints"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSPublisher{
		conn:    conn,
		pub:     conn,
		subject: subject,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// PublishPointCreated emits a PointCreated event for p.
func (p *NATSPublisher) PublishPointCreated(ctx context.Context, point *model.DonationPoint, forced bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(PointCreated{
		Type:       TypePointCreated,
		Forced:     forced,
		OccurredAt: p.now(),
		Point:      point,
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.pub.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
