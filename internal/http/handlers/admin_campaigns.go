package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/pricing"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/shared/apperr"
)

type AdminCampaignsHandler struct {
	DB    *gorm.DB
	Cache *pricing.ActiveCampaignCache
}

func NewAdminCampaignsHandler(db *gorm.DB, cache *pricing.ActiveCampaignCache) *AdminCampaignsHandler {
	return &AdminCampaignsHandler{DB: db, Cache: cache}
}

type campaignInput struct {
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Kind        string    `json:"kind" binding:"required,oneof=percentage fixed"`
	Value       int64     `json:"value" binding:"required,min=1"`
	MaxDiscount *int64    `json:"max_discount" binding:"omitempty,min=1"`
	Scope       string    `json:"scope" binding:"required,oneof=all by_category by_item"`
	ItemIDs     []string  `json:"item_ids" binding:"omitempty,dive,uuid4"`
	CategoryIDs []string  `json:"category_ids" binding:"omitempty,dive,uuid4"`
	ExcludedIDs []string  `json:"excluded_ids" binding:"omitempty,dive,uuid4"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
	UsageLimit  int       `json:"usage_limit" binding:"omitempty,min=0"`
	Priority    int       `json:"priority" binding:"omitempty"`
	Active      bool      `json:"active"`
}

func (in campaignInput) apply(c *pricing.Campaign) {
	c.Name = in.Name
	c.Kind = pricing.DiscountKind(in.Kind)
	c.Value = in.Value
	c.MaxDiscount = in.MaxDiscount
	c.Scope = pricing.ScopeKind(in.Scope)
	c.ItemIDs = in.ItemIDs
	c.CategoryIDs = in.CategoryIDs
	c.ExcludedIDs = in.ExcludedIDs
	c.StartsAt = in.StartsAt
	c.EndsAt = in.EndsAt
	c.UsageLimit = in.UsageLimit
	c.Priority = in.Priority
	c.Active = in.Active
}

func (h *AdminCampaignsHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	const size = 30

	items, err := pricing.NewRepo(h.DB).List(c.Request.Context(), size, (page-1)*size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": items, "page": page})
}

func (h *AdminCampaignsHandler) Detail(c *gin.Context) {
	camp, err := pricing.NewRepo(h.DB).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": camp})
}

func (h *AdminCampaignsHandler) Create(c *gin.Context) {
	var in campaignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Invalid campaign payload.", nil))
		return
	}

	camp := pricing.Campaign{ID: uuid.NewString()}
	in.apply(&camp)

	if err := pricing.NewRepo(h.DB).Create(c.Request.Context(), &camp); err != nil {
		fail(c, err)
		return
	}
	h.Cache.Invalidate()

	c.JSON(http.StatusCreated, gin.H{"campaign": camp})
}

func (h *AdminCampaignsHandler) Update(c *gin.Context) {
	var in campaignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Invalid campaign payload.", nil))
		return
	}

	repo := pricing.NewRepo(h.DB)
	camp, err := repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	in.apply(&camp)

	if err := repo.Update(c.Request.Context(), &camp); err != nil {
		fail(c, err)
		return
	}
	h.Cache.Invalidate()

	c.JSON(http.StatusOK, gin.H{"campaign": camp})
}

func (h *AdminCampaignsHandler) Delete(c *gin.Context) {
	if err := pricing.NewRepo(h.DB).Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	h.Cache.Invalidate()

	c.Status(http.StatusNoContent)
}
