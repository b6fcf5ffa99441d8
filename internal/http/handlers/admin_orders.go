package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/shared/apperr"
)

type AdminOrdersHandler struct {
	DB      *gorm.DB
	OrderSv *orders.Service
}

func NewAdminOrdersHandler(db *gorm.DB, osvc *orders.Service) *AdminOrdersHandler {
	return &AdminOrdersHandler{DB: db, OrderSv: osvc}
}

func (h *AdminOrdersHandler) List(c *gin.Context) {
	repo := orders.NewRepo(h.DB)
	res, err := repo.AdminList(c.Request.Context(), orders.AdminListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: 30,
	})
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]orderView, 0, len(res.Items))
	for _, o := range res.Items {
		items = append(items, orderToView(o))
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":      items,
		"total":       res.Total,
		"total_pages": pagesFromTotal(res.Total, 30),
	})
}

func (h *AdminOrdersHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	repo := orders.NewRepo(h.DB)
	o, err := repo.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ev, err := repo.History(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   orderToView(o),
		"history": eventsToView(ev),
	})
}

type reviewInput struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Reason   string `json:"reason" binding:"omitempty,max=255"`
}

// ReviewPayment approves or rejects a submitted proof. A rejection must say
// why; the reason is forwarded to the customer as-is.
func (h *AdminOrdersHandler) ReviewPayment(c *gin.Context) {
	kind, ok := parseTrackKind(c.Param("kind"))
	if !ok {
		fail(c, apperr.InvalidErr("Unknown payment kind.", nil))
		return
	}

	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Invalid review payload.", nil))
		return
	}

	review := orders.ReviewPaymentInput{
		OrderID: c.Param("id"),
		Kind:    kind,
		ActorID: actorID(c),
		Reason:  strings.TrimSpace(in.Reason),
	}

	var (
		o   orders.Order
		err error
	)
	if in.Decision == "approve" {
		o, err = h.OrderSv.ApprovePayment(c.Request.Context(), review)
	} else {
		if review.Reason == "" {
			fail(c, apperr.InvalidErr("A rejection needs a reason.", nil))
			return
		}
		o, err = h.OrderSv.RejectPayment(c.Request.Context(), review)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": orderToView(o)})
}

type assignShippingInput struct {
	WeightGrams int `json:"weight_grams" binding:"required,min=1,max=100000"`
}

func (h *AdminOrdersHandler) AssignShipping(c *gin.Context) {
	var in assignShippingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Invalid shipping payload.", nil))
		return
	}

	o, err := h.OrderSv.AssignShipping(c.Request.Context(), orders.AssignShippingInput{
		OrderID:     c.Param("id"),
		WeightGrams: in.WeightGrams,
		ActorID:     actorID(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": orderToView(o)})
}

func (h *AdminOrdersHandler) RequestFinal(c *gin.Context) {
	o, err := h.OrderSv.RequestFinalPayment(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orderToView(o)})
}

type transitionInput struct {
	To          string `json:"to" binding:"required"`
	Note        string `json:"note" binding:"omitempty,max=255"`
	Carrier     string `json:"carrier" binding:"omitempty,max=64"`
	TrackingRef string `json:"tracking_ref" binding:"omitempty,max=128"`
}

func (h *AdminOrdersHandler) Transition(c *gin.Context) {
	var in transitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.InvalidErr("Invalid transition payload.", nil))
		return
	}

	to := orders.Status(in.To)
	if !orders.ValidStatus(to) {
		fail(c, apperr.InvalidErr("Unknown status.", nil))
		return
	}

	o, err := h.OrderSv.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:     c.Param("id"),
		To:          to,
		ActorID:     actorID(c),
		Note:        strings.TrimSpace(in.Note),
		Carrier:     strings.TrimSpace(in.Carrier),
		TrackingRef: strings.TrimSpace(in.TrackingRef),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": orderToView(o)})
}
