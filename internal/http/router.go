package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/http/handlers"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/http/middleware"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/notify"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/pricing"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/storage"
)

// Deps carries everything the routes need. main builds it once.
type Deps struct {
	OrderSv  *orders.Service
	PriceSv  *pricing.Service
	Cache    *pricing.ActiveCampaignCache
	NotifySv *notify.Service
	Proofs   storage.Storage
	AdminKey string
}

func NewRouter(logger *slog.Logger, db *gorm.DB, deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	// ErrorHandler must wrap Recovery: a recovered panic is reported via
	// Fail and rendered on the way back out.
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))

	checkout := handlers.NewCheckoutHandler(deps.OrderSv)
	ordersH := handlers.NewOrdersHandler(db, deps.OrderSv, deps.Proofs)
	prices := handlers.NewPricesHandler(db, deps.PriceSv, deps.Cache)

	api := r.Group("/api")
	{
		api.GET("/items", prices.ListPriced)
		api.GET("/items/:id/price", prices.ItemPrice)

		api.POST("/checkout", checkout.Post)

		api.GET("/orders", ordersH.List)
		api.GET("/orders/:id", ordersH.Detail)
		api.POST("/orders/:id/payments/:kind/proof", ordersH.SubmitProof)
		api.POST("/orders/:id/cancel", ordersH.Cancel)
	}

	adminOrders := handlers.NewAdminOrdersHandler(db, deps.OrderSv)
	adminCampaigns := handlers.NewAdminCampaignsHandler(db, deps.Cache)
	adminNotify := handlers.NewAdminNotifyHandler(deps.NotifySv)

	admin := r.Group("/api/admin", middleware.RequireAdmin(deps.AdminKey))
	{
		admin.GET("/orders", adminOrders.List)
		admin.GET("/orders/:id", adminOrders.Detail)
		admin.POST("/orders/:id/payments/:kind/review", adminOrders.ReviewPayment)
		admin.POST("/orders/:id/shipping", adminOrders.AssignShipping)
		admin.POST("/orders/:id/request-final", adminOrders.RequestFinal)
		admin.POST("/orders/:id/status", adminOrders.Transition)

		admin.GET("/campaigns", adminCampaigns.List)
		admin.POST("/campaigns", adminCampaigns.Create)
		admin.GET("/campaigns/:id", adminCampaigns.Detail)
		admin.PUT("/campaigns/:id", adminCampaigns.Update)
		admin.DELETE("/campaigns/:id", adminCampaigns.Delete)

		admin.POST("/notifications/deliver", adminNotify.Deliver)
	}

	return r
}
