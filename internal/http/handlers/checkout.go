package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/shared/apperr"
)

type CheckoutHandler struct {
	OrderSv *orders.Service
}

func NewCheckoutHandler(osvc *orders.Service) *CheckoutHandler {
	return &CheckoutHandler{OrderSv: osvc}
}

type checkoutLineInput struct {
	ItemID    string `json:"item_id" binding:"required,uuid4"`
	TierLabel string `json:"tier_label" binding:"omitempty,max=64"`
	Color     string `json:"color" binding:"omitempty,max=64"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=50"`
}

type checkoutInput struct {
	Email          string              `json:"email" binding:"required,email,max=255"`
	Lines          []checkoutLineInput `json:"lines" binding:"required,min=1,dive"`
	CouponDiscount int64               `json:"coupon_discount" binding:"omitempty,min=0"`
	Address        map[string]any      `json:"address" binding:"omitempty"`
}

func (h *CheckoutHandler) Post(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Invalid checkout payload.", nil))
		return
	}

	lines := make([]orders.LineInput, 0, len(in.Lines))
	for _, ln := range in.Lines {
		lines = append(lines, orders.LineInput{
			ItemID:    ln.ItemID,
			TierLabel: ln.TierLabel,
			Color:     ln.Color,
			Quantity:  ln.Quantity,
		})
	}

	userID := actorUserID(c)
	actor := "customer"
	if userID != nil {
		actor = *userID
	}

	o, err := h.OrderSv.Create(c.Request.Context(), orders.CreateInput{
		UserID:         userID,
		CustomerEmail:  in.Email,
		Lines:          lines,
		CouponDiscount: in.CouponDiscount,
		Address:        in.Address,
		ActorID:        actor,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": orderToView(o)})
}
