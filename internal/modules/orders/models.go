package orders

import (
	"time"

	"gorm.io/datatypes"
)

// Order is the aggregate root of the split-payment order lifecycle.
// Money is whole currency units; Total = Subtotal - Discount + ShippingCost
// at all times.
type Order struct {
	ID            string  `gorm:"type:char(36);primaryKey"`
	UserID        *string `gorm:"type:char(36);index:ix_orders_user_id"`
	CustomerEmail string  `gorm:"type:varchar(255);not null"`
	Status        Status  `gorm:"type:varchar(32);not null;index:ix_orders_status"`
	Subtotal      int64   `gorm:"not null"`
	Discount      int64   `gorm:"not null;default:0"` // flat coupon amount, applied at creation
	ShippingCost  int64   `gorm:"not null;default:0"` // 0 until a weight is assigned
	WeightGrams   int     `gorm:"not null;default:0"` // declared package weight; 0 = unassigned
	Total         int64   `gorm:"not null"`
	Carrier       *string `gorm:"type:varchar(64)"`
	TrackingRef   *string `gorm:"type:varchar(128)"`

	// LegacyPayment marks orders that predate the split-payment flow; they
	// were paid in one installment and bypass the final track entirely.
	LegacyPayment bool `gorm:"not null;default:0"`

	Address datatypes.JSON `gorm:"type:json"`

	Items  []LineItem     `gorm:"foreignKey:OrderID"`
	Tracks []PaymentTrack `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// LineItem is a price snapshot taken at order creation. Immutable afterwards.
type LineItem struct {
	ID         string  `gorm:"type:char(36);primaryKey"`
	OrderID    string  `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ItemID     string  `gorm:"type:char(36);not null"`
	Name       string  `gorm:"type:varchar(255);not null"` // display name snapshot
	TierLabel  string  `gorm:"type:varchar(64)"`
	Color      string  `gorm:"type:varchar(64)"`
	Quantity   int     `gorm:"not null"`
	UnitPrice  int64   `gorm:"not null"`
	CampaignID *string `gorm:"type:char(36)"` // campaign that produced the price, if any
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (LineItem) TableName() string { return "order_items" }

func (li LineItem) Total() int64 { return int64(li.Quantity) * li.UnitPrice }

// StatusEvent is one entry of the append-only status history. Rows are only
// ever inserted, in the same transaction as the status change itself.
type StatusEvent struct {
	ID         string  `gorm:"type:char(36);primaryKey"`
	OrderID    string  `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	ActorID    string  `gorm:"type:varchar(64);not null"` // admin id, user id or "system"
	Action     string  `gorm:"type:varchar(32);not null"`
	FromStatus string  `gorm:"type:varchar(32);not null"`
	ToStatus   string  `gorm:"type:varchar(32);not null"`
	Note       *string `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (StatusEvent) TableName() string { return "order_status_events" }

// Track returns the payment track of the given kind, or nil. Orders created
// by this core always carry both tracks; legacy rows may lack the final one.
func (o *Order) Track(kind TrackKind) *PaymentTrack {
	for i := range o.Tracks {
		if o.Tracks[i].Kind == kind {
			return &o.Tracks[i]
		}
	}
	return nil
}

func (o *Order) AdvanceTrack() *PaymentTrack { return o.Track(TrackAdvance) }
func (o *Order) FinalTrack() *PaymentTrack   { return o.Track(TrackFinal) }

func (o *Order) recalcTotal() {
	o.Total = o.Subtotal - o.Discount + o.ShippingCost
}

func (o *Order) advanceApproved() bool {
	t := o.AdvanceTrack()
	return t != nil && t.Status == TrackApproved
}

func (o *Order) finalApproved() bool {
	t := o.FinalTrack()
	return t != nil && t.Status == TrackApproved
}

// ShippingAssigned reports whether an admin has declared a package weight.
func (o *Order) ShippingAssigned() bool { return o.WeightGrams > 0 }
