package catalog

import "time"

// Item is a catalog product. The order/pricing core reads items but never
// writes them; catalog CRUD lives elsewhere.
//
// Money is stored in whole currency units throughout the app.
type Item struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Slug        string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_items_slug"`
	CategoryID  string  `gorm:"type:char(36);not null;index:ix_items_category_id"`
	BasePrice   int64   `gorm:"not null"`
	SalePrice   *int64  // manual sale price; nil or <=0 means not on sale
	WeightGrams int     `gorm:"not null;default:0"`
	Active      bool    `gorm:"not null;default:1"`
	Tiers       []PriceTier `gorm:"foreignKey:ItemID"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (Item) TableName() string { return "items" }

// PriceTier is a per-age-range price/stock bucket on an item ("0-6 months",
// "6-12 months", ...). Ordering is by Position.
type PriceTier struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	ItemID    string `gorm:"type:char(36);not null;index:ix_price_tiers_item_id"`
	Label     string `gorm:"type:varchar(64);not null"`
	BasePrice int64  `gorm:"not null"`
	SalePrice *int64
	Stock     int `gorm:"not null;default:0"`
	Position  int `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (PriceTier) TableName() string { return "price_tiers" }

// Tier returns the tier with the given label, if the item defines one.
func (i Item) Tier(label string) (PriceTier, bool) {
	for _, t := range i.Tiers {
		if t.Label == label {
			return t, true
		}
	}
	return PriceTier{}, false
}

// HasTiers reports whether the item prices by tier at all.
func (i Item) HasTiers() bool { return len(i.Tiers) > 0 }
