package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	// DSN needs multiStatements=true for this tool.
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS items (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  slug VARCHAR(255) NOT NULL,
	  category_id CHAR(36) NOT NULL,
	  base_price BIGINT NOT NULL,
	  sale_price BIGINT NULL,
	  weight_grams INT NOT NULL DEFAULT 0,
	  active TINYINT(1) NOT NULL DEFAULT 1,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_items_slug (slug),
	  KEY ix_items_category_id (category_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS price_tiers (
	  id CHAR(36) NOT NULL,
	  item_id CHAR(36) NOT NULL,
	  label VARCHAR(64) NOT NULL,
	  base_price BIGINT NOT NULL,
	  sale_price BIGINT NULL,
	  stock INT NOT NULL DEFAULT 0,
	  position INT NOT NULL DEFAULT 0,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_price_tiers_item_label (item_id, label),
	  CONSTRAINT fk_price_tiers_item FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS campaigns (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  kind VARCHAR(16) NOT NULL,
	  value BIGINT NOT NULL,
	  max_discount BIGINT NULL,
	  scope VARCHAR(16) NOT NULL DEFAULT 'all',
	  item_ids JSON NULL,
	  category_ids JSON NULL,
	  excluded_ids JSON NULL,
	  starts_at DATETIME(3) NOT NULL,
	  ends_at DATETIME(3) NOT NULL,
	  usage_limit INT NOT NULL DEFAULT 0,
	  usage_count INT NOT NULL DEFAULT 0,
	  priority INT NOT NULL DEFAULT 0,
	  active TINYINT(1) NOT NULL DEFAULT 0,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_campaigns_window (starts_at, ends_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  user_id CHAR(36) NULL,
	  customer_email VARCHAR(255) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  subtotal BIGINT NOT NULL,
	  discount BIGINT NOT NULL DEFAULT 0,
	  shipping_cost BIGINT NOT NULL DEFAULT 0,
	  weight_grams INT NOT NULL DEFAULT 0,
	  total BIGINT NOT NULL,
	  carrier VARCHAR(64) NULL,
	  tracking_ref VARCHAR(128) NULL,
	  legacy_payment TINYINT(1) NOT NULL DEFAULT 0,
	  address JSON NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_orders_user_id (user_id),
	  KEY ix_orders_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  item_id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  tier_label VARCHAR(64) NULL,
	  color VARCHAR(64) NULL,
	  quantity INT NOT NULL,
	  unit_price BIGINT NOT NULL,
	  campaign_id CHAR(36) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_items_order_id (order_id),
	  CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payment_tracks (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  kind VARCHAR(16) NOT NULL,
	  status VARCHAR(16) NOT NULL,
	  amount BIGINT NOT NULL,
	  proof_ref VARCHAR(255) NULL,
	  submitted_at DATETIME(3) NULL,
	  reject_reason VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_payment_tracks_order_kind (order_id, kind),
	  CONSTRAINT fk_payment_tracks_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_status_events (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  actor_id VARCHAR(64) NOT NULL,
	  action VARCHAR(32) NOT NULL,
	  from_status VARCHAR(32) NOT NULL,
	  to_status VARCHAR(32) NOT NULL,
	  note VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_events_order_id (order_id, created_at),
	  CONSTRAINT fk_order_events_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS notify_outbox (
	  id CHAR(36) NOT NULL,
	  recipient VARCHAR(255) NOT NULL,
	  template_key VARCHAR(64) NOT NULL,
	  payload JSON NULL,
	  status VARCHAR(16) NOT NULL DEFAULT 'queued',
	  attempts INT NOT NULL DEFAULT 0,
	  last_error VARCHAR(255) NULL,
	  sent_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_notify_outbox_status (status, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ all tables created successfully")
}
