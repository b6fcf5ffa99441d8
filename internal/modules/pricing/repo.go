package pricing

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListActive satisfies CampaignSource. Sorting is repeated in the cache, but
// the query orders too so direct callers get the same contract.
func (r *Repo) ListActive(ctx context.Context, now time.Time) ([]Campaign, error) {
	var out []Campaign
	err := r.db.WithContext(ctx).
		Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("priority DESC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *Repo) Get(ctx context.Context, id string) (Campaign, error) {
	var c Campaign
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, err
}

func (r *Repo) List(ctx context.Context, limit, offset int) ([]Campaign, error) {
	if limit < 1 || limit > 100 {
		limit = 30
	}
	var out []Campaign
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *Repo) Create(ctx context.Context, c *Campaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repo) Update(ctx context.Context, c *Campaign) error {
	c.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Campaign{}, "id = ?", id).Error
}

// IncrementUsage atomically claims one usage slot. It returns false when the
// campaign has hit its limit (or does not exist). Redemption paths call this;
// price resolution never does.
func (r *Repo) IncrementUsage(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", id).
		Updates(map[string]any{
			"usage_count": gorm.Expr("usage_count + 1"),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
