package pricing

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/catalog"
)

// ItemSource is the slice of the catalog this service needs.
type ItemSource interface {
	Get(ctx context.Context, id string) (catalog.Item, error)
}

// ResolvedPrice is the final unit price for one (item, tier) pair at a point
// in time. It is never persisted on its own; order creation snapshots it into
// line items so later campaign or price edits cannot touch a placed order.
type ResolvedPrice struct {
	UnitPrice  int64
	BasePrice  int64
	CampaignID *string // set when a campaign produced the winning price
}

// Service resolves effective unit prices by merging the manually set sale
// price with the best active campaign price.
type Service struct {
	items ItemSource
	cache *ActiveCampaignCache
}

func NewService(items ItemSource, cache *ActiveCampaignCache) *Service {
	return &Service{items: items, cache: cache}
}

// PriceFor resolves the effective unit price for an item and optional tier
// label (empty = top-level price).
func (s *Service) PriceFor(ctx context.Context, itemID, tierLabel string) (ResolvedPrice, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedPrice{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		return ResolvedPrice{}, fmt.Errorf("load item %s: %w", itemID, err)
	}

	active, err := s.cache.Active(ctx)
	if err != nil {
		return ResolvedPrice{}, err
	}

	return Quote(item, tierLabel, active)
}

// Quote is the pure core of PriceFor: it needs the item and the pre-sorted
// active campaign list already in hand. Listing pages call it directly to
// price a whole page against one cache read.
//
// The final price is the minimum of the base price, a qualifying manual sale
// price (0 < sale < base) and a qualifying campaign price (dynamic < base).
// Lowest wins; re-running with the same inputs always yields the same price.
func Quote(item catalog.Item, tierLabel string, active []Campaign) (ResolvedPrice, error) {
	base := item.BasePrice
	sale := item.SalePrice

	if tierLabel != "" && item.HasTiers() {
		tier, ok := item.Tier(tierLabel)
		if !ok {
			return ResolvedPrice{}, fmt.Errorf("%w: item=%s tier=%q", ErrTierNotFound, item.ID, tierLabel)
		}
		base = tier.BasePrice
		sale = tier.SalePrice
	}

	final := base
	if sale != nil && *sale > 0 && *sale < base {
		final = *sale
	}

	var campaignID *string
	if c := Resolve(item, active); c != nil {
		if dynamic := Discount(base, c); dynamic < base && dynamic <= final {
			final = dynamic
			id := c.ID
			campaignID = &id
		}
	}

	return ResolvedPrice{UnitPrice: final, BasePrice: base, CampaignID: campaignID}, nil
}
