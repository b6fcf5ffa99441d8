package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/catalog"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/notify"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/pricing"
	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/shipping"
)

// ItemSource is the catalog as the order flow needs it.
type ItemSource interface {
	Get(ctx context.Context, id string) (catalog.Item, error)
}

// Pricer resolves effective unit prices at checkout time.
type Pricer interface {
	PriceFor(ctx context.Context, itemID, tierLabel string) (pricing.ResolvedPrice, error)
}

// Notifier records notification requests; delivery happens elsewhere.
type Notifier interface {
	Enqueue(ctx context.Context, tx *gorm.DB, req notify.Request) error
}

// Service owns every order mutation. All transitions run as one transaction:
// row lock, guard, mutate, optimistic update, history append, notification.
type Service struct {
	db       *gorm.DB
	items    ItemSource
	pricer   Pricer
	shipCalc shipping.Calculator
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(db *gorm.DB, items ItemSource, pricer Pricer, calc shipping.Calculator, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		db:       db,
		items:    items,
		pricer:   pricer,
		shipCalc: calc,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type LineInput struct {
	ItemID    string
	TierLabel string
	Color     string
	Quantity  int
}

type CreateInput struct {
	UserID        *string
	CustomerEmail string
	Lines         []LineInput
	// CouponDiscount is a flat amount from a separately validated coupon;
	// it is consumed here, not resolved.
	CouponDiscount int64
	Address        map[string]any
	ActorID        string
}

// Create snapshots line prices through the pricing service and opens both
// payment tracks. The advance installment is fixed here and never recomputed.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	if len(in.Lines) == 0 {
		return Order{}, ErrEmptyOrder
	}

	now := s.now()
	orderID := uuid.NewString()

	var (
		items    []LineItem
		subtotal int64
	)
	for _, ln := range in.Lines {
		qty := ln.Quantity
		if qty < 1 {
			qty = 1
		}

		item, err := s.items.Get(ctx, ln.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Order{}, fmt.Errorf("%w: %s", pricing.ErrItemNotFound, ln.ItemID)
			}
			return Order{}, fmt.Errorf("load item %s: %w", ln.ItemID, err)
		}
		if !item.Active {
			return Order{}, fmt.Errorf("%w: %s", ErrItemUnavailable, ln.ItemID)
		}

		rp, err := s.pricer.PriceFor(ctx, ln.ItemID, ln.TierLabel)
		if err != nil {
			return Order{}, err
		}

		items = append(items, LineItem{
			ID:         uuid.NewString(),
			OrderID:    orderID,
			ItemID:     item.ID,
			Name:       item.Name,
			TierLabel:  ln.TierLabel,
			Color:      ln.Color,
			Quantity:   qty,
			UnitPrice:  rp.UnitPrice,
			CampaignID: rp.CampaignID,
			CreatedAt:  now,
		})
		subtotal += int64(qty) * rp.UnitPrice
	}

	discount := in.CouponDiscount
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	advance := AdvanceAmount(subtotal)

	var addr []byte
	if in.Address != nil {
		b, err := json.Marshal(in.Address)
		if err != nil {
			return Order{}, fmt.Errorf("marshal address: %w", err)
		}
		addr = b
	}

	o := Order{
		ID:            orderID,
		UserID:        in.UserID,
		CustomerEmail: in.CustomerEmail,
		Status:        StatusPending,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal - discount,
		Address:       addr,
		Items:         items,
		Tracks: []PaymentTrack{
			{
				ID: uuid.NewString(), OrderID: orderID, Kind: TrackAdvance,
				Status: TrackPending, Amount: advance,
				CreatedAt: now, UpdatedAt: now,
			},
			{
				ID: uuid.NewString(), OrderID: orderID, Kind: TrackFinal,
				Status: TrackPending, Amount: subtotal - advance,
				CreatedAt: now, UpdatedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		// placing the order redeems the campaigns that priced it; losing
		// the race on the last slot keeps the snapshotted price anyway
		for _, id := range campaignIDs(items) {
			claimed, err := pricing.NewRepo(tx).IncrementUsage(ctx, id)
			if err != nil {
				return err
			}
			if !claimed {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "campaign_usage_exhausted",
					slog.String("order_id", orderID),
					slog.String("campaign_id", id),
				)
			}
		}

		if err := s.appendEvent(ctx, tx, orderID, in.ActorID, "create", "", StatusPending, nil, now); err != nil {
			return err
		}
		return s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   in.CustomerEmail,
			TemplateKey: notify.TplOrderCreated,
			Payload: map[string]any{
				"order_id":       orderID,
				"subtotal":       subtotal,
				"total":          o.Total,
				"advance_amount": advance,
			},
		})
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "order_created",
		slog.String("order_id", orderID),
		slog.Int64("subtotal", subtotal),
		slog.Int64("advance_amount", advance),
	)
	return o, nil
}

type SubmitPaymentInput struct {
	OrderID     string
	Kind        TrackKind
	ProofRef    string // opaque handle to the uploaded screenshot
	ActorUserID *string
}

// SubmitPayment records a proof of payment against one track. Legal from
// pending or rejected; a resubmission replaces the rejected proof.
func (s *Service) SubmitPayment(ctx context.Context, in SubmitPaymentInput) (Order, error) {
	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}

		// owner check for account orders; guest orders skip it
		if o.UserID != nil && (in.ActorUserID == nil || *o.UserID != *in.ActorUserID) {
			return ErrForbidden
		}

		t := o.Track(in.Kind)
		if t == nil {
			return fmt.Errorf("%w: order %s has no %s track", ErrPreconditionFailed, o.ID, in.Kind)
		}
		fromStatus := t.Status

		now := s.now()
		if err := o.SubmitTrack(in.Kind, in.ProofRef, now); err != nil {
			return err
		}

		if err := updateTrack(ctx, tx, t, fromStatus); err != nil {
			return err
		}

		tpl := notify.TplAdvanceSubmitted
		if in.Kind == TrackFinal {
			tpl = notify.TplFinalSubmitted
		}
		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: tpl,
			Payload:     map[string]any{"order_id": o.ID, "amount": t.Amount},
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "payment_submitted",
		slog.String("order_id", out.ID),
		slog.String("kind", string(in.Kind)),
	)
	return out, nil
}

type ReviewPaymentInput struct {
	OrderID string
	Kind    TrackKind
	ActorID string // admin user id
	Reason  string // rejection only
}

// ApprovePayment accepts a submitted proof. Approving the advance installment
// moves a pending order to confirmed in the same transaction; two concurrent
// approvals cannot both pass the row lock and the submitted-status guard.
func (s *Service) ApprovePayment(ctx context.Context, in ReviewPaymentInput) (Order, error) {
	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}

		t := o.Track(in.Kind)
		if t == nil {
			return fmt.Errorf("%w: order %s has no %s track", ErrPreconditionFailed, o.ID, in.Kind)
		}
		fromTrack := t.Status
		fromOrder := o.Status

		now := s.now()
		statusChanged, err := o.ApproveTrack(in.Kind, now)
		if err != nil {
			return err
		}

		if err := updateTrack(ctx, tx, t, fromTrack); err != nil {
			return err
		}

		if statusChanged {
			if err := updateStatus(ctx, tx, &o, fromOrder, now); err != nil {
				return err
			}
			if err := s.appendEvent(ctx, tx, o.ID, in.ActorID, "payment_approved", fromOrder, o.Status, nil, now); err != nil {
				return err
			}
		}

		tpl := notify.TplAdvanceApproved
		if in.Kind == TrackFinal {
			tpl = notify.TplFinalApproved
		}
		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: tpl,
			Payload:     map[string]any{"order_id": o.ID, "amount": t.Amount},
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "payment_approved",
		slog.String("order_id", out.ID),
		slog.String("kind", string(in.Kind)),
		slog.String("status", string(out.Status)),
	)
	return out, nil
}

// RejectPayment refuses a submitted proof. The order status does not move;
// the customer may resubmit. The reason reaches the customer verbatim.
func (s *Service) RejectPayment(ctx context.Context, in ReviewPaymentInput) (Order, error) {
	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}

		t := o.Track(in.Kind)
		if t == nil {
			return fmt.Errorf("%w: order %s has no %s track", ErrPreconditionFailed, o.ID, in.Kind)
		}
		fromTrack := t.Status

		now := s.now()
		if err := o.RejectTrack(in.Kind, in.Reason, now); err != nil {
			return err
		}

		if err := updateTrack(ctx, tx, t, fromTrack); err != nil {
			return err
		}

		tpl := notify.TplAdvanceRejected
		if in.Kind == TrackFinal {
			tpl = notify.TplFinalRejected
		}
		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: tpl,
			Payload:     map[string]any{"order_id": o.ID, "amount": t.Amount, "reason": in.Reason},
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "payment_rejected",
		slog.String("order_id", out.ID),
		slog.String("kind", string(in.Kind)),
	)
	return out, nil
}

type AssignShippingInput struct {
	OrderID     string
	WeightGrams int
	ActorID     string
}

// AssignShipping records the weighed package and prices its shipping,
// recomputing the final installment. Re-assigning overwrites; no status
// side effect.
func (s *Service) AssignShipping(ctx context.Context, in AssignShippingInput) (Order, error) {
	cost, billedKg := s.shipCalc.Cost(in.WeightGrams)

	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := o.AssignShipping(in.WeightGrams, cost, now); err != nil {
			return err
		}

		if err := tx.Model(&Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"weight_grams":  o.WeightGrams,
				"shipping_cost": o.ShippingCost,
				"total":         o.Total,
				"updated_at":    now,
			}).Error; err != nil {
			return err
		}

		f := o.FinalTrack()
		if f != nil {
			if err := tx.Model(&PaymentTrack{}).
				Where("id = ?", f.ID).
				Updates(map[string]any{
					"amount":     f.Amount,
					"updated_at": now,
				}).Error; err != nil {
				return err
			}
		}

		payload := map[string]any{
			"order_id":      o.ID,
			"weight_grams":  o.WeightGrams,
			"billed_kg":     billedKg,
			"shipping_cost": o.ShippingCost,
		}
		if f != nil {
			payload["final_amount"] = f.Amount
		}
		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: notify.TplShippingAssigned,
			Payload:     payload,
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "shipping_assigned",
		slog.String("order_id", out.ID),
		slog.Int("weight_grams", out.WeightGrams),
		slog.Int64("shipping_cost", out.ShippingCost),
	)
	return out, nil
}

// RequestFinalPayment asks the customer for the second installment. Nothing
// on the order mutates; the final track stays pending until the customer
// submits a proof. Requires shipping to be assigned first.
func (s *Service) RequestFinalPayment(ctx context.Context, orderID, actorID string) (Order, error) {
	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := o.CheckFinalRequest(); err != nil {
			return err
		}

		f := o.FinalTrack()
		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: notify.TplFinalRequested,
			Payload:     map[string]any{"order_id": o.ID, "amount": f.Amount},
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "final_payment_requested",
		slog.String("order_id", out.ID),
	)
	return out, nil
}

type TransitionInput struct {
	OrderID     string
	To          Status
	ActorID     string
	Note        string
	Carrier     string // optional, recorded on shipped
	TrackingRef string // optional, recorded on shipped
}

// Transition applies a manual admin status edit along the forward chain
// (or to cancelled from the early states), appending to the history log.
func (s *Service) Transition(ctx context.Context, in TransitionInput) (Order, error) {
	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}
		from := o.Status

		now := s.now()
		if err := o.TransitionTo(in.To, now); err != nil {
			return err
		}

		updates := map[string]any{
			"status":     o.Status,
			"updated_at": now,
		}
		if in.To == StatusShipped {
			if c := in.Carrier; c != "" {
				o.Carrier = &c
				updates["carrier"] = c
			}
			if tr := in.TrackingRef; tr != "" {
				o.TrackingRef = &tr
				updates["tracking_ref"] = tr
			}
		}

		res := tx.Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from). // optimistic guard
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return &TransitionError{Entity: "order", From: string(from), To: string(in.To)}
		}

		var note *string
		if n := in.Note; n != "" {
			note = &n
		}
		if err := s.appendEvent(ctx, tx, o.ID, in.ActorID, "status", from, o.Status, note, now); err != nil {
			return err
		}

		tpl := notify.TplStatusChanged
		if in.To == StatusCancelled {
			tpl = notify.TplOrderCancelled
		}
		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: tpl,
			Payload:     map[string]any{"order_id": o.ID, "from": from, "to": o.Status},
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "order_status_changed",
		slog.String("order_id", out.ID),
		slog.String("to", string(out.Status)),
	)
	return out, nil
}

// Cancel is the customer-side cancellation: pending order, advance proof not
// submitted. Admin cancellation goes through Transition.
func (s *Service) Cancel(ctx context.Context, orderID string, actorUserID *string) (Order, error) {
	var out Order
	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		o, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != nil && (actorUserID == nil || *o.UserID != *actorUserID) {
			return ErrForbidden
		}
		from := o.Status

		now := s.now()
		if err := o.CancelByCustomer(now); err != nil {
			return err
		}

		res := tx.Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from).
			Updates(map[string]any{"status": o.Status, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return &TransitionError{Entity: "order", From: string(from), To: string(StatusCancelled)}
		}

		actor := "customer"
		if actorUserID != nil {
			actor = *actorUserID
		}
		if err := s.appendEvent(ctx, tx, o.ID, actor, "cancel", from, o.Status, nil, now); err != nil {
			return err
		}

		if err := s.notifier.Enqueue(ctx, tx, notify.Request{
			Recipient:   o.CustomerEmail,
			TemplateKey: notify.TplOrderCancelled,
			Payload:     map[string]any{"order_id": o.ID},
		}); err != nil {
			return err
		}

		out = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "order_cancelled",
		slog.String("order_id", out.ID),
	)
	return out, nil
}

// campaignIDs collects the distinct campaigns that priced the given lines.
func campaignIDs(items []LineItem) []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range items {
		if it.CampaignID == nil || seen[*it.CampaignID] {
			continue
		}
		seen[*it.CampaignID] = true
		out = append(out, *it.CampaignID)
	}
	return out
}

// lockOrder loads the aggregate under SELECT ... FOR UPDATE. The row lock is
// what serializes concurrent mutations of one order.
func lockOrder(ctx context.Context, tx *gorm.DB, id string) (Order, error) {
	var o Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", id).Error; err != nil {
		return Order{}, err
	}
	if err := tx.WithContext(ctx).
		Find(&o.Tracks, "order_id = ?", id).Error; err != nil {
		return Order{}, err
	}
	return o, nil
}

// updateTrack persists a mutated track guarded by its pre-mutation status.
func updateTrack(ctx context.Context, tx *gorm.DB, t *PaymentTrack, from TrackStatus) error {
	res := tx.WithContext(ctx).Model(&PaymentTrack{}).
		Where("id = ? AND status = ?", t.ID, from).
		Updates(map[string]any{
			"status":        t.Status,
			"proof_ref":     t.ProofRef,
			"submitted_at":  t.SubmittedAt,
			"reject_reason": t.RejectReason,
			"updated_at":    t.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return &TransitionError{Entity: t.entity(), From: string(from), To: string(t.Status)}
	}
	return nil
}

func updateStatus(ctx context.Context, tx *gorm.DB, o *Order, from Status, now time.Time) error {
	res := tx.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", o.ID, from).
		Updates(map[string]any{"status": o.Status, "updated_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return &TransitionError{Entity: "order", From: string(from), To: string(o.Status)}
	}
	return nil
}

func (s *Service) appendEvent(ctx context.Context, tx *gorm.DB, orderID, actor, action string, from, to Status, note *string, now time.Time) error {
	if actor == "" {
		actor = "system"
	}
	ev := StatusEvent{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		ActorID:    actor,
		Action:     action,
		FromStatus: string(from),
		ToStatus:   string(to),
		Note:       note,
		CreatedAt:  now,
	}
	return tx.WithContext(ctx).Create(&ev).Error
}
