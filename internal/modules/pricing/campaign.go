package pricing

import (
	"time"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/catalog"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// ScopeKind is a closed set; anything else matches no item.
type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"
	ScopeByCategory ScopeKind = "by_category"
	ScopeByItem     ScopeKind = "by_item"
)

// Campaign is a time-boxed, priority-ranked promotional discount rule.
// Created and edited by admins; this core only reads it (the usage counter
// is incremented on redemption, outside price resolution).
type Campaign struct {
	ID          string       `gorm:"type:char(36);primaryKey"`
	Name        string       `gorm:"type:varchar(255);not null"`
	Kind        DiscountKind `gorm:"type:varchar(16);not null"`
	Value       int64        `gorm:"not null"` // percent for percentage, amount for fixed
	MaxDiscount *int64       // cap on the discount amount; percentage kind only
	Scope       ScopeKind    `gorm:"type:varchar(16);not null;default:'all'"`
	ItemIDs     []string     `gorm:"serializer:json;type:json"`
	CategoryIDs []string     `gorm:"serializer:json;type:json"`
	ExcludedIDs []string     `gorm:"serializer:json;type:json"` // item ids never eligible
	StartsAt    time.Time    `gorm:"type:datetime(3);not null;index:ix_campaigns_window"`
	EndsAt      time.Time    `gorm:"type:datetime(3);not null;index:ix_campaigns_window"`
	UsageLimit  int          `gorm:"not null;default:0"` // 0 = unlimited
	UsageCount  int          `gorm:"not null;default:0"`
	Priority    int          `gorm:"not null;default:0"`
	Active      bool         `gorm:"not null;default:0"`
	CreatedAt   time.Time    `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time    `gorm:"type:datetime(3);not null"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c *Campaign) WithinWindow(now time.Time) bool {
	return !now.Before(c.StartsAt) && !now.After(c.EndsAt)
}

func (c *Campaign) UsageExhausted() bool {
	return c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit
}

func (c *Campaign) Excludes(itemID string) bool {
	for _, id := range c.ExcludedIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the item falls inside the campaign's scope.
// The switch is exhaustive over ScopeKind; an unknown scope matches nothing.
func (c *Campaign) AppliesTo(item catalog.Item) bool {
	switch c.Scope {
	case ScopeAll:
		return true
	case ScopeByCategory:
		for _, id := range c.CategoryIDs {
			if id == item.CategoryID {
				return true
			}
		}
		return false
	case ScopeByItem:
		for _, id := range c.ItemIDs {
			if id == item.ID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
