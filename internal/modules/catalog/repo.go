package catalog

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Get(ctx context.Context, id string) (Item, error) {
	var it Item
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		First(&it, "id = ?", id).Error
	return it, err
}

func (r *Repo) ListActive(ctx context.Context, limit, offset int) ([]Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Item
	err := r.db.WithContext(ctx).
		Model(&Item{}).
		Where("active = ?", true).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}
