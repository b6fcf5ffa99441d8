package orders

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestOrder builds a pending order with both tracks opened the way Create
// does: advance = ceil(subtotal/2), final = subtotal - advance.
func newTestOrder(subtotal int64) *Order {
	advance := AdvanceAmount(subtotal)
	return &Order{
		ID:            "order-1",
		CustomerEmail: "jo@example.com",
		Status:        StatusPending,
		Subtotal:      subtotal,
		Total:         subtotal,
		Tracks: []PaymentTrack{
			{ID: "t-adv", OrderID: "order-1", Kind: TrackAdvance, Status: TrackPending, Amount: advance},
			{ID: "t-fin", OrderID: "order-1", Kind: TrackFinal, Status: TrackPending, Amount: subtotal - advance},
		},
	}
}

func TestAdvanceAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(2000), AdvanceAmount(4000))
	require.Equal(t, int64(2001), AdvanceAmount(4001)) // odd subtotal rounds up
	require.Equal(t, int64(1), AdvanceAmount(1))
	require.Equal(t, int64(0), AdvanceAmount(0))
}

func TestApproveAdvanceConfirmsOrder(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.NoError(t, o.SubmitTrack(TrackAdvance, "p", testNow))

	changed, err := o.ApproveTrack(TrackAdvance, testNow)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, StatusConfirmed, o.Status)
}

func TestApproveFinalDoesNotMoveStatus(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.NoError(t, o.SubmitTrack(TrackAdvance, "p", testNow))
	_, err := o.ApproveTrack(TrackAdvance, testNow)
	require.NoError(t, err)

	require.NoError(t, o.SubmitTrack(TrackFinal, "p2", testNow))
	changed, err := o.ApproveTrack(TrackFinal, testNow)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, StatusConfirmed, o.Status)
}

func TestRejectKeepsOrderStatus(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.NoError(t, o.SubmitTrack(TrackAdvance, "p", testNow))
	require.NoError(t, o.RejectTrack(TrackAdvance, "blurry", testNow))

	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, TrackRejected, o.AdvanceTrack().Status)

	// reject -> resubmit -> approve still confirms
	require.NoError(t, o.SubmitTrack(TrackAdvance, "p2", testNow))
	changed, err := o.ApproveTrack(TrackAdvance, testNow)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, StatusConfirmed, o.Status)
}

func approveAdvance(t *testing.T, o *Order) {
	t.Helper()
	require.NoError(t, o.SubmitTrack(TrackAdvance, "p", testNow))
	_, err := o.ApproveTrack(TrackAdvance, testNow)
	require.NoError(t, err)
}

func TestAssignShippingRecomputesFinal(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	approveAdvance(t, o)

	// 2.3 kg at 350/kg bills 3 kg
	require.NoError(t, o.AssignShipping(2300, 1050, testNow))
	require.Equal(t, int64(1050), o.ShippingCost)
	require.Equal(t, int64(5050), o.Total)
	require.Equal(t, int64(3050), o.FinalTrack().Amount) // (4000-2000)+1050
	require.Equal(t, int64(2000), o.AdvanceTrack().Amount)
}

func TestAssignShippingReassignOverwrites(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	approveAdvance(t, o)

	require.NoError(t, o.AssignShipping(2300, 1050, testNow))
	require.NoError(t, o.AssignShipping(1200, 700, testNow))

	require.Equal(t, 1200, o.WeightGrams)
	require.Equal(t, int64(700), o.ShippingCost)
	require.Equal(t, int64(2700), o.FinalTrack().Amount)
	require.Equal(t, int64(4700), o.Total)

	// same weight again is a no-op in effect
	require.NoError(t, o.AssignShipping(1200, 700, testNow))
	require.Equal(t, int64(2700), o.FinalTrack().Amount)
}

func TestAssignShippingRequiresApprovedAdvance(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	err := o.AssignShipping(2300, 1050, testNow)
	require.ErrorIs(t, err, ErrPreconditionFailed)

	require.NoError(t, o.SubmitTrack(TrackAdvance, "p", testNow))
	err = o.AssignShipping(2300, 1050, testNow)
	require.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestTotalInvariantHolds(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	o.Discount = 300
	o.recalcTotal()
	require.Equal(t, int64(3700), o.Total)

	approveAdvance(t, o)
	require.NoError(t, o.AssignShipping(2300, 1050, testNow))
	require.Equal(t, o.Subtotal-o.Discount+o.ShippingCost, o.Total)
}

func TestCheckFinalRequest(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.ErrorIs(t, o.CheckFinalRequest(), ErrPreconditionFailed)

	approveAdvance(t, o)
	require.NoError(t, o.AssignShipping(2300, 1050, testNow))
	require.NoError(t, o.CheckFinalRequest())

	// once the customer submitted, a repeat request is a conflict
	require.NoError(t, o.SubmitTrack(TrackFinal, "p", testNow))
	require.ErrorIs(t, o.CheckFinalRequest(), ErrInvalidTransition)
}

func TestTransitionForwardChain(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	approveAdvance(t, o)
	require.NoError(t, o.AssignShipping(2300, 1050, testNow))
	require.NoError(t, o.SubmitTrack(TrackFinal, "p", testNow))
	_, err := o.ApproveTrack(TrackFinal, testNow)
	require.NoError(t, err)

	for _, next := range []Status{StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered} {
		require.NoError(t, o.TransitionTo(next, testNow))
		require.Equal(t, next, o.Status)
	}
}

func TestTransitionNoSkipping(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	approveAdvance(t, o)

	err := o.TransitionTo(StatusShipped, testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)

	err = o.TransitionTo(StatusPending, testNow) // backwards
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionGateAdvanceApproval(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	o.Status = StatusConfirmed // forced, advance still pending

	err := o.TransitionTo(StatusProcessing, testNow)
	require.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestTransitionGateFinalApprovalForDelivery(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	approveAdvance(t, o)
	require.NoError(t, o.TransitionTo(StatusProcessing, testNow))
	require.NoError(t, o.TransitionTo(StatusShipped, testNow))
	require.NoError(t, o.TransitionTo(StatusOutForDelivery, testNow))

	err := o.TransitionTo(StatusDelivered, testNow)
	require.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestTransitionLegacyPaymentSkipsFinalGate(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	o.LegacyPayment = true
	approveAdvance(t, o)
	require.NoError(t, o.TransitionTo(StatusProcessing, testNow))
	require.NoError(t, o.TransitionTo(StatusShipped, testNow))
	require.NoError(t, o.TransitionTo(StatusOutForDelivery, testNow))
	require.NoError(t, o.TransitionTo(StatusDelivered, testNow))
}

func TestTransitionCancelRules(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.NoError(t, o.TransitionTo(StatusCancelled, testNow))
	require.Equal(t, StatusCancelled, o.Status)

	o = newTestOrder(4000)
	approveAdvance(t, o)
	require.Equal(t, StatusConfirmed, o.Status)
	require.NoError(t, o.TransitionTo(StatusCancelled, testNow))

	o = newTestOrder(4000)
	approveAdvance(t, o)
	require.NoError(t, o.TransitionTo(StatusProcessing, testNow))
	err := o.TransitionTo(StatusCancelled, testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionTerminalIsFinal(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.NoError(t, o.TransitionTo(StatusCancelled, testNow))

	err := o.TransitionTo(StatusConfirmed, testNow)
	require.ErrorIs(t, err, ErrAlreadyTerminal)

	err = o.AssignShipping(1000, 350, testNow)
	require.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestTransitionUnknownStatus(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	err := o.TransitionTo(Status("lost"), testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCampaignIDsDeduplicates(t *testing.T) {
	t.Parallel()

	c1, c2 := "camp-1", "camp-2"
	items := []LineItem{
		{CampaignID: &c1},
		{CampaignID: nil},
		{CampaignID: &c1},
		{CampaignID: &c2},
	}
	require.Equal(t, []string{"camp-1", "camp-2"}, campaignIDs(items))
	require.Nil(t, campaignIDs(nil))
}

func TestCancelByCustomer(t *testing.T) {
	t.Parallel()

	o := newTestOrder(4000)
	require.NoError(t, o.CancelByCustomer(testNow))
	require.Equal(t, StatusCancelled, o.Status)

	// submitted advance proof blocks self-service cancellation
	o = newTestOrder(4000)
	require.NoError(t, o.SubmitTrack(TrackAdvance, "p", testNow))
	require.ErrorIs(t, o.CancelByCustomer(testNow), ErrPreconditionFailed)

	// confirmed orders are admin-only territory
	o = newTestOrder(4000)
	approveAdvance(t, o)
	require.ErrorIs(t, o.CancelByCustomer(testNow), ErrInvalidTransition)
}
