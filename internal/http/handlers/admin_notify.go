package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/notify"
)

type AdminNotifyHandler struct {
	NotifySv *notify.Service
}

func NewAdminNotifyHandler(nsvc *notify.Service) *AdminNotifyHandler {
	return &AdminNotifyHandler{NotifySv: nsvc}
}

// Deliver flushes up to one batch of queued notifications. Normally a cron
// hits this; it is also handy after an SMTP outage.
func (h *AdminNotifyHandler) Deliver(c *gin.Context) {
	sent, err := h.NotifySv.DeliverPending(c.Request.Context(), parseInt(c.Query("limit"), 50))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
