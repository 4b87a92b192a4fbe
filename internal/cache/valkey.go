// Package cache keeps filtered list results in Valkey.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"donationpoints/internal/model"
)

const defaultPrefix = "donationpoints"

// ListCache stores list results under a generation counter.
// Invalidate bumps the generation so earlier entries are never read again and expire by TTL.
type ListCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkey connects to addr and returns a cache whose entries live for ttl.
func NewValkey(addr string, ttl time.Duration) (*ListCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &ListCache{client: client, prefix: defaultPrefix, ttl: ttl}, nil
}

// Get returns the cached list for f and the generation it was looked up under, reporting false on a miss.
// Pass the generation back to Set so a list read before an Invalidate is never stored after it.
func (c *ListCache) Get(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	b, err := c.client.Do(ctx, c.client.B().Get().Key(c.listKey(gen, f)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	points, err := decodePoints(b)
	if err != nil {
		return nil, gen, false, err
	}
	return points, gen, true, nil
}

// Set stores points for f under gen, the generation returned by the Get that preceded the store read.
func (c *ListCache) Set(ctx context.Context, f model.ListFilter, gen int64, points []model.DonationPoint) error {
	b, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	return c.client.Do(ctx,
		c.client.B().Set().Key(c.listKey(gen, f)).Value(string(b)).Ex(c.ttl).Build(),
	).Error()
}

// Invalidate makes every cached list unreachable.
func (c *ListCache) Invalidate(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Incr().Key(c.generationKey()).Build()).Error()
}

// Ping checks the connection.
func (c *ListCache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *ListCache) Close() {
	c.client.Close()
}

func (c *ListCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Do(ctx, c.client.B().Get().Key(c.generationKey()).Build()).AsInt64()
	if valkey.IsValkeyNil(err) {
		return 0, nil
	}
	return gen, err
}

func (c *ListCache) generationKey() string {
	return c.prefix + ":list:gen"
}

func (c *ListCache) listKey(gen int64, f model.ListFilter) string {
	return c.prefix + ":list:" + strconv.FormatInt(gen, 10) + ":" + FilterKey(f)
}

// FilterKey renders f canonically: equal filters give equal keys regardless of item order.
func FilterKey(f model.ListFilter) string {
	v := url.Values{}
	if f.AutonomousCommunity != "" {
		v.Set("autonomousCommunity", f.AutonomousCommunity)
	}
	if f.Province != "" {
		v.Set("province", f.Province)
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if len(f.AcceptedItems) > 0 {
		items := make([]string, 0, len(f.AcceptedItems))
		seen := make(map[model.AcceptedItem]bool, len(f.AcceptedItems))
		for _, it := range f.AcceptedItems {
			if !seen[it] {
				seen[it] = true
				items = append(items, string(it))
			}
		}
		sort.Strings(items)
		v.Set("acceptedItems", strings.Join(items, ","))
	}
	if len(v) == 0 {
		return "all"
	}
	return v.Encode()
}

func decodePoints(b []byte) ([]model.DonationPoint, error) {
	points := make([]model.DonationPoint, 0)
	if err := json.Unmarshal(b, &points); err != nil {
		return nil, fmt.Errorf("decode cached list: %w", err)
	}
	return points, nil
}
