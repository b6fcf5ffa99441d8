package pricing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// CampaignSource is the campaign store as the cache sees it.
type CampaignSource interface {
	ListActive(ctx context.Context, now time.Time) ([]Campaign, error)
}

const (
	DefaultCacheTTL = 60 * time.Second

	// staleFactor bounds how long a failed refresh may keep serving the
	// last-known data before Active starts failing with
	// ErrUpstreamUnavailable.
	staleFactor = 10
)

// ActiveCampaignCache holds the currently-eligible campaigns, sorted by
// descending priority, and refreshes them from the store on a fixed TTL.
//
// Campaign evaluation runs on every listing and every price resolution, so
// the list is cached globally rather than per request. A campaign ending
// mid-window may keep applying for up to one TTL; that staleness is an
// accepted trade-off, not a bug.
type ActiveCampaignCache struct {
	store CampaignSource
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	campaigns []Campaign
	fetchedAt time.Time
}

// NewActiveCampaignCache builds a cache around store. ttl <= 0 falls back to
// DefaultCacheTTL; now == nil falls back to time.Now. Tests inject their own
// clock to control freshness deterministically.
func NewActiveCampaignCache(store CampaignSource, ttl time.Duration, now func() time.Time) *ActiveCampaignCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ActiveCampaignCache{store: store, ttl: ttl, now: now}
}

// Active returns the active campaigns, refreshing from the store when the
// cached copy has expired. On a store failure the last-known data is served
// as long as it is not catastrophically stale. The returned slice is shared;
// callers must treat it as read-only.
func (c *ActiveCampaignCache) Active(ctx context.Context) ([]Campaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.fetchedAt.IsZero() && now.Sub(c.fetchedAt) < c.ttl {
		return c.campaigns, nil
	}

	fresh, err := c.store.ListActive(ctx, now)
	if err != nil {
		if !c.fetchedAt.IsZero() && now.Sub(c.fetchedAt) < c.ttl*staleFactor {
			// serve stale
			return c.campaigns, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Priority > fresh[j].Priority })
	c.campaigns = fresh
	c.fetchedAt = now
	return c.campaigns, nil
}

// Invalidate drops the cached copy so the next Active call refetches.
// Admin campaign edits call this to shorten the staleness window.
func (c *ActiveCampaignCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
	c.campaigns = nil
}
