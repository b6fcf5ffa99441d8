package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/shared/apperr"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/storage"
)

const maxProofSize = 8 << 20 // 8 MiB

type OrdersHandler struct {
	DB      *gorm.DB
	OrderSv *orders.Service
	Proofs  storage.Storage
}

func NewOrdersHandler(db *gorm.DB, osvc *orders.Service, proofs storage.Storage) *OrdersHandler {
	return &OrdersHandler{DB: db, OrderSv: osvc, Proofs: proofs}
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	repo := orders.NewRepo(h.DB)
	o, err := repo.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	// account orders are only visible to their owner; guest orders rely on
	// the order id being unguessable
	if o.UserID != nil {
		uid := actorUserID(c)
		if uid == nil || *uid != *o.UserID {
			fail(c, orders.ErrForbidden)
			return
		}
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

func (h *OrdersHandler) List(c *gin.Context) {
	uid := actorUserID(c)
	if uid == nil {
		fail(c, apperr.UnauthorizedErr("Sign in to list your orders."))
		return
	}

	repo := orders.NewRepo(h.DB)
	res, err := repo.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   *uid,
		Status:   c.Query("status"),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: 20,
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
		"total_pages": pagesFromTotal(res.Total, 20),
	})
}

// SubmitProof receives the payment screenshot for one installment, stores it
// and marks the track submitted in one go. The stored key becomes the
// track's proof reference.
func (h *OrdersHandler) SubmitProof(c *gin.Context) {
	id := c.Param("id")
	kind, ok := parseTrackKind(c.Param("kind"))
	if !ok {
		fail(c, apperr.InvalidErr("Unknown payment kind.", nil))
		return
	}

	fh, err := c.FormFile("proof")
	if err != nil {
		fail(c, apperr.InvalidErr("Attach the payment screenshot as \"proof\".", nil))
		return
	}
	if fh.Size > maxProofSize {
		fail(c, apperr.InvalidErr("File too large (max 8 MB).", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	res, err := h.Proofs.Put(c.Request.Context(), f, storage.PutInput{
		OrderID:     id,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		fail(c, err)
		return
	}

	o, err := h.OrderSv.SubmitPayment(c.Request.Context(), orders.SubmitPaymentInput{
		OrderID:     id,
		Kind:        kind,
		ProofRef:    res.Key,
		ActorUserID: actorUserID(c),
	})
	if err != nil {
		// the track did not move; drop the orphaned upload
		_ = h.Proofs.Delete(c.Request.Context(), res.Key)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": orderToView(o)})
}

func (h *OrdersHandler) Cancel(c *gin.Context) {
	o, err := h.OrderSv.Cancel(c.Request.Context(), c.Param("id"), actorUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orderToView(o)})
}

func parseTrackKind(s string) (orders.TrackKind, bool) {
	switch orders.TrackKind(s) {
	case orders.TrackAdvance:
		return orders.TrackAdvance, true
	case orders.TrackFinal:
		return orders.TrackFinal, true
	default:
		return "", false
	}
}
