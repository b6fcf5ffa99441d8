package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/http/middleware"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/pricing"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/shared/apperr"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/storage"
)

// fail translates module sentinels into apperr kinds before handing the
// error to the middleware chain.
func fail(c *gin.Context, err error) {
	middleware.Fail(c, toAppError(err))
}

func toAppError(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr("Not found.")
	case errors.Is(err, pricing.ErrItemNotFound):
		return apperr.NotFoundErr("Item not found.")
	case errors.Is(err, pricing.ErrTierNotFound):
		return apperr.NotFoundErr("Price tier not found.")
	case errors.Is(err, pricing.ErrUpstreamUnavailable):
		return apperr.UnavailableErr("Pricing temporarily unavailable. Please retry.")

	case errors.Is(err, orders.ErrAlreadyTerminal):
		return apperr.ConflictErr("Order is already in a terminal state.")
	case errors.Is(err, orders.ErrInvalidTransition):
		var te *orders.TransitionError
		if errors.As(err, &te) {
			return apperr.ConflictErr("Invalid transition: " + te.Entity + " " + te.From + " -> " + te.To + ".")
		}
		return apperr.ConflictErr("Invalid transition.")
	case errors.Is(err, orders.ErrPreconditionFailed):
		return apperr.PreconditionErr("Operation not allowed in the order's current state.")
	case errors.Is(err, orders.ErrForbidden):
		return apperr.ForbiddenErr("You do not have access to this order.")
	case errors.Is(err, orders.ErrEmptyOrder):
		return apperr.InvalidErr("Order needs at least one line item.", nil)
	case errors.Is(err, orders.ErrItemUnavailable):
		return apperr.InvalidErr("One of the items is no longer available.", nil)

	case errors.Is(err, storage.ErrUnsupportedType):
		return apperr.InvalidErr("Unsupported file type. Upload a PNG, JPEG or WebP image.", nil)
	}

	return apperr.Wrap(err)
}

// actorUserID reads the caller identity set by the gateway in front of this
// service. Absent for guest traffic.
func actorUserID(c *gin.Context) *string {
	if v := strings.TrimSpace(c.GetHeader("X-User-ID")); v != "" {
		return &v
	}
	return nil
}

// actorID identifies the admin operating the back office, for the order
// history log.
func actorID(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader("X-Admin-ID")); v != "" {
		return v
	}
	return "admin"
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func pagesFromTotal(total int64, size int) int {
	if size <= 0 {
		return 1
	}
	p := int((total + int64(size) - 1) / int64(size))
	if p < 1 {
		p = 1
	}
	return p
}

func ptrStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
