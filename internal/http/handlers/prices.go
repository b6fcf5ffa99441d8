package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/catalog"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/pricing"
)

type PricesHandler struct {
	DB      *gorm.DB
	PriceSv *pricing.Service
	Cache   *pricing.ActiveCampaignCache
}

func NewPricesHandler(db *gorm.DB, psvc *pricing.Service, cache *pricing.ActiveCampaignCache) *PricesHandler {
	return &PricesHandler{DB: db, PriceSv: psvc, Cache: cache}
}

type priceView struct {
	ItemID     string `json:"item_id"`
	TierLabel  string `json:"tier_label,omitempty"`
	BasePrice  int64  `json:"base_price"`
	UnitPrice  int64  `json:"unit_price"`
	CampaignID string `json:"campaign_id,omitempty"`
}

// ItemPrice previews the effective price of one item (and optional tier).
func (h *PricesHandler) ItemPrice(c *gin.Context) {
	itemID := c.Param("id")
	tier := c.Query("tier")

	rp, err := h.PriceSv.PriceFor(c.Request.Context(), itemID, tier)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, priceView{
		ItemID:     itemID,
		TierLabel:  tier,
		BasePrice:  rp.BasePrice,
		UnitPrice:  rp.UnitPrice,
		CampaignID: ptrStr(rp.CampaignID),
	})
}

// ListPriced prices a page of active items against a single campaign cache
// read, which keeps listing pages cheap when a campaign covers the shop.
func (h *PricesHandler) ListPriced(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	const size = 24

	items, err := catalog.NewRepo(h.DB).ListActive(c.Request.Context(), size, (page-1)*size)
	if err != nil {
		fail(c, err)
		return
	}

	active, err := h.Cache.Active(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]priceView, 0, len(items))
	for _, it := range items {
		rp, err := pricing.Quote(it, "", active)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, priceView{
			ItemID:     it.ID,
			BasePrice:  rp.BasePrice,
			UnitPrice:  rp.UnitPrice,
			CampaignID: ptrStr(rp.CampaignID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": out, "page": page})
}
