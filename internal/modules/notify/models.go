package notify

import (
	"time"

	"gorm.io/datatypes"
)

// Template keys emitted by the order lifecycle. Delivery (email, chat) is a
// downstream concern; this module only records the request.
const (
	TplOrderCreated     = "order_created"
	TplAdvanceSubmitted = "advance_submitted"
	TplAdvanceApproved  = "advance_approved"
	TplAdvanceRejected  = "advance_rejected"
	TplShippingAssigned = "shipping_assigned"
	TplFinalRequested   = "final_requested"
	TplFinalSubmitted   = "final_submitted"
	TplFinalApproved    = "final_approved"
	TplFinalRejected    = "final_rejected"
	TplStatusChanged    = "status_changed"
	TplOrderCancelled   = "order_cancelled"
)

const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Request is one notification to be delivered: who, which template, and the
// template's payload.
type Request struct {
	Recipient   string
	TemplateKey string
	Payload     map[string]any
}

// Outbox is a queued notification row. Rows are written in the same
// transaction as the domain change that caused them.
type Outbox struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Recipient   string         `gorm:"type:varchar(255);not null"`
	TemplateKey string         `gorm:"type:varchar(64);not null"`
	Payload     datatypes.JSON `gorm:"type:json"`
	Status      string         `gorm:"type:varchar(16);not null;index:ix_notify_outbox_status"`
	Attempts    int            `gorm:"not null;default:0"`
	LastError   *string        `gorm:"type:varchar(255)"`
	SentAt      *time.Time     `gorm:"type:datetime(3)"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (Outbox) TableName() string { return "notify_outbox" }
