package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apphttp "github.com/wasifshah085/AngelBabyDresses-sub000/internal/http"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/mailer"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/catalog"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/notify"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/pricing"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/shipping"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	proofs, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}
	logger.Info("storage ready", "driver", proofs.Driver)

	var mailSvc mailer.Service
	if host := os.Getenv("SMTP_HOST"); host != "" {
		mailSvc = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:          host,
			Port:          envOr("SMTP_PORT", "587"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			TLSMode:       envOr("SMTP_TLS_MODE", "starttls"),
			SkipVerifyTLS: os.Getenv("SMTP_SKIP_VERIFY_TLS") == "1",
		})
	} else {
		logger.Warn("SMTP_HOST not set, using mock mailer")
		mailSvc = &mailer.Mock{}
	}

	sender := notify.NewMailSender(mailSvc,
		envOr("MAIL_FROM", "orders@angelbabydresses.example"),
		envOr("MAIL_FROM_NAME", "Angel Baby Dresses"))
	notifySvc := notify.NewService(db, sender, logger)

	cacheTTL := time.Duration(envInt("CAMPAIGN_CACHE_TTL_SECONDS", 60)) * time.Second
	cache := pricing.NewActiveCampaignCache(pricing.NewRepo(db), cacheTTL, nil)

	items := catalog.NewRepo(db)
	priceSvc := pricing.NewService(items, cache)
	shipCalc := shipping.NewCalculator(int64(envInt("SHIPPING_RATE_PER_KG", 0)))
	orderSvc := orders.NewService(db, items, priceSvc, shipCalc, notifySvc, logger)

	r := apphttp.NewRouter(logger, db, apphttp.Deps{
		OrderSv:  orderSvc,
		PriceSv:  priceSvc,
		Cache:    cache,
		NotifySv: notifySvc,
		Proofs:   proofs.Storage,
		AdminKey: os.Getenv("ADMIN_API_KEY"),
	})
	_ = r.Run(envOr("ADDR", ":8080"))
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
