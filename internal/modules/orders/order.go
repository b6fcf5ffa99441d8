package orders

import (
	"fmt"
	"time"
)

// AdvanceAmount is the first installment, fixed at order creation.
// ceil(subtotal/2); the final installment is derived by subtraction, so the
// two may differ by one unit on odd subtotals. That asymmetry is long
// standing and customer-visible; keep it.
func AdvanceAmount(subtotal int64) int64 {
	return (subtotal + 1) / 2
}

// ApproveTrack runs the track approval plus its order-level side effect:
// approving the advance installment moves a pending order to confirmed.
// It returns whether the order status changed.
func (o *Order) ApproveTrack(kind TrackKind, now time.Time) (statusChanged bool, err error) {
	t := o.Track(kind)
	if t == nil {
		return false, fmt.Errorf("%w: order %s has no %s track", ErrPreconditionFailed, o.ID, kind)
	}
	if err := t.Approve(now); err != nil {
		return false, err
	}
	if kind == TrackAdvance && o.Status == StatusPending {
		o.Status = StatusConfirmed
		o.UpdatedAt = now
		return true, nil
	}
	o.UpdatedAt = now
	return false, nil
}

// RejectTrack runs the track rejection. The order status never moves on a
// rejection; the customer resubmits against the same track.
func (o *Order) RejectTrack(kind TrackKind, reason string, now time.Time) error {
	t := o.Track(kind)
	if t == nil {
		return fmt.Errorf("%w: order %s has no %s track", ErrPreconditionFailed, o.ID, kind)
	}
	if err := t.Reject(reason, now); err != nil {
		return err
	}
	o.UpdatedAt = now
	return nil
}

// SubmitTrack records a proof of payment against the given track.
func (o *Order) SubmitTrack(kind TrackKind, proofRef string, now time.Time) error {
	t := o.Track(kind)
	if t == nil {
		return fmt.Errorf("%w: order %s has no %s track", ErrPreconditionFailed, o.ID, kind)
	}
	if err := t.Submit(proofRef, now); err != nil {
		return err
	}
	o.UpdatedAt = now
	return nil
}

// AssignShipping records the declared package weight and its cost. Legal only
// once the advance installment is approved. Re-assigning with a new weight
// overwrites both values and recomputes the final installment; there is no
// status side effect, so repeating the same weight is idempotent.
func (o *Order) AssignShipping(weightGrams int, cost int64, now time.Time) error {
	if weightGrams <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrPreconditionFailed)
	}
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	if !o.advanceApproved() {
		return fmt.Errorf("%w: advance payment not approved", ErrPreconditionFailed)
	}

	o.WeightGrams = weightGrams
	o.ShippingCost = cost
	o.recalcTotal()

	if f := o.FinalTrack(); f != nil {
		adv := o.AdvanceTrack()
		f.Amount = (o.Subtotal - adv.Amount) + o.ShippingCost
		f.UpdatedAt = now
	}
	o.UpdatedAt = now
	return nil
}

// CheckFinalRequest validates the admin's "request final payment" action:
// shipping must be assigned and the final track still untouched. The action
// itself only triggers a notification; the track stays pending until the
// customer submits.
func (o *Order) CheckFinalRequest() error {
	if !o.ShippingAssigned() {
		return fmt.Errorf("%w: shipping not assigned", ErrPreconditionFailed)
	}
	f := o.FinalTrack()
	if f == nil {
		return fmt.Errorf("%w: order %s has no final track", ErrPreconditionFailed, o.ID)
	}
	if f.Status != TrackPending {
		return &TransitionError{Entity: f.entity(), From: string(f.Status), To: string(TrackPending)}
	}
	return nil
}

// TransitionTo applies a manual admin status edit. The delivery chain is
// strictly forward-only, one step at a time; cancelled is reachable from
// pending or confirmed. Gates: nothing past confirmed without an approved
// advance, and delivered requires an approved final installment unless the
// order predates the split-payment flow.
func (o *Order) TransitionTo(to Status, now time.Time) error {
	if !ValidStatus(to) {
		return &TransitionError{Entity: "order", From: string(o.Status), To: string(to)}
	}
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}

	if to == StatusCancelled {
		if o.Status != StatusPending && o.Status != StatusConfirmed {
			return &TransitionError{Entity: "order", From: string(o.Status), To: string(to)}
		}
		o.Status = StatusCancelled
		o.UpdatedAt = now
		return nil
	}

	from, ok := forwardRank[o.Status]
	rank, ok2 := forwardRank[to]
	if !ok || !ok2 || rank != from+1 {
		return &TransitionError{Entity: "order", From: string(o.Status), To: string(to)}
	}

	if rank > forwardRank[StatusConfirmed] && !o.advanceApproved() {
		return fmt.Errorf("%w: advance payment not approved", ErrPreconditionFailed)
	}
	if to == StatusDelivered && !o.LegacyPayment && !o.finalApproved() {
		return fmt.Errorf("%w: final payment not approved", ErrPreconditionFailed)
	}

	o.Status = to
	o.UpdatedAt = now
	return nil
}

// CancelByCustomer is the customer-side cancellation rule: only a pending
// order whose advance proof has not been submitted yet.
func (o *Order) CancelByCustomer(now time.Time) error {
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}
	if o.Status != StatusPending {
		return &TransitionError{Entity: "order", From: string(o.Status), To: string(StatusCancelled)}
	}
	if t := o.AdvanceTrack(); t != nil && t.Status == TrackSubmitted {
		return fmt.Errorf("%w: advance proof already submitted", ErrPreconditionFailed)
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now
	return nil
}
