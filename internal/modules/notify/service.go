package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sender delivers one queued notification. Implementations live at the edge
// (SMTP mailer adapter, chat webhook, test mock).
type Sender interface {
	Send(ctx context.Context, row Outbox) error
}

type Service struct {
	db     *gorm.DB
	sender Sender
	logger *slog.Logger
}

func NewService(db *gorm.DB, sender Sender, logger *slog.Logger) *Service {
	return &Service{db: db, sender: sender, logger: logger}
}

// Enqueue records a notification request. When tx is non-nil the row joins
// the caller's transaction, so a rolled-back order change never leaves a
// stray notification behind.
func (s *Service) Enqueue(ctx context.Context, tx *gorm.DB, req Request) error {
	db := tx
	if db == nil {
		db = s.db
	}

	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	now := time.Now()
	row := Outbox{
		ID:          uuid.NewString(),
		Recipient:   req.Recipient,
		TemplateKey: req.TemplateKey,
		Payload:     payload,
		Status:      StatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return db.WithContext(ctx).Create(&row).Error
}

// DeliverPending hands queued rows to the sender, oldest first. A failed row
// is marked failed with the error and skipped; it is not retried here.
// Returns the number delivered.
func (s *Service) DeliverPending(ctx context.Context, limit int) (int, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var rows []Outbox
	if err := s.db.WithContext(ctx).
		Where("status = ?", StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, row := range rows {
		now := time.Now()
		updates := map[string]any{
			"attempts":   row.Attempts + 1,
			"updated_at": now,
		}

		if err := s.sender.Send(ctx, row); err != nil {
			msg := err.Error()
			if len(msg) > 255 {
				msg = msg[:255]
			}
			updates["status"] = StatusFailed
			updates["last_error"] = msg
			s.logger.LogAttrs(ctx, slog.LevelWarn, "notification_delivery_failed",
				slog.String("outbox_id", row.ID),
				slog.String("template", row.TemplateKey),
				slog.String("err", msg),
			)
		} else {
			updates["status"] = StatusSent
			updates["sent_at"] = now
			updates["last_error"] = nil
			sent++
		}

		if err := s.db.WithContext(ctx).
			Model(&Outbox{}).
			Where("id = ? AND status = ?", row.ID, StatusQueued).
			Updates(updates).Error; err != nil {
			return sent, err
		}
	}
	return sent, nil
}
