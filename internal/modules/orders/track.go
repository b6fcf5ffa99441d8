package orders

import "time"

type TrackKind string

const (
	TrackAdvance TrackKind = "advance"
	TrackFinal   TrackKind = "final"
)

type TrackStatus string

const (
	TrackPending   TrackStatus = "pending"
	TrackSubmitted TrackStatus = "submitted"
	TrackApproved  TrackStatus = "approved"
	TrackRejected  TrackStatus = "rejected"
)

// PaymentTrack is the lifecycle of one of the two installments: 50% in
// advance, the rest plus shipping on delivery. The proof reference is an
// opaque handle to an uploaded screenshot; this core never inspects it.
//
// pending -> submitted -> approved | rejected; rejected -> submitted is the
// only back-edge (resubmission after a rejected proof).
type PaymentTrack struct {
	ID           string      `gorm:"type:char(36);primaryKey"`
	OrderID      string      `gorm:"type:char(36);not null;index:ix_payment_tracks_order_id"`
	Kind         TrackKind   `gorm:"type:varchar(16);not null"`
	Status       TrackStatus `gorm:"type:varchar(16);not null"`
	Amount       int64       `gorm:"not null"`
	ProofRef     *string     `gorm:"type:varchar(255)"`
	SubmittedAt  *time.Time  `gorm:"type:datetime(3)"`
	RejectReason *string     `gorm:"type:varchar(255)"`
	CreatedAt    time.Time   `gorm:"type:datetime(3);not null"`
	UpdatedAt    time.Time   `gorm:"type:datetime(3);not null"`
}

func (PaymentTrack) TableName() string { return "payment_tracks" }

func (t *PaymentTrack) entity() string {
	if t.Kind == TrackFinal {
		return "final payment"
	}
	return "advance payment"
}

// Submit records a proof of payment. Legal from pending or rejected; a
// resubmission clears the prior rejection reason.
func (t *PaymentTrack) Submit(proofRef string, now time.Time) error {
	if t.Status != TrackPending && t.Status != TrackRejected {
		return &TransitionError{Entity: t.entity(), From: string(t.Status), To: string(TrackSubmitted)}
	}
	t.Status = TrackSubmitted
	t.ProofRef = &proofRef
	t.SubmittedAt = &now
	t.RejectReason = nil
	t.UpdatedAt = now
	return nil
}

// Approve accepts the submitted proof. Legal only from submitted, so a
// second approval attempt fails instead of silently passing.
func (t *PaymentTrack) Approve(now time.Time) error {
	if t.Status != TrackSubmitted {
		return &TransitionError{Entity: t.entity(), From: string(t.Status), To: string(TrackApproved)}
	}
	t.Status = TrackApproved
	t.UpdatedAt = now
	return nil
}

// Reject refuses the submitted proof. The reason is customer-visible and
// surfaced verbatim.
func (t *PaymentTrack) Reject(reason string, now time.Time) error {
	if t.Status != TrackSubmitted {
		return &TransitionError{Entity: t.entity(), From: string(t.Status), To: string(TrackRejected)}
	}
	t.Status = TrackRejected
	t.RejectReason = &reason
	t.UpdatedAt = now
	return nil
}
