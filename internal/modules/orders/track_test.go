package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestTrackSubmitApprove(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackAdvance, Status: TrackPending, Amount: 2000}

	require.NoError(t, tr.Submit("proofs/a.png", testNow))
	require.Equal(t, TrackSubmitted, tr.Status)
	require.NotNil(t, tr.ProofRef)
	require.Equal(t, "proofs/a.png", *tr.ProofRef)
	require.NotNil(t, tr.SubmittedAt)

	require.NoError(t, tr.Approve(testNow))
	require.Equal(t, TrackApproved, tr.Status)
}

func TestTrackDoubleApproveFails(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackAdvance, Status: TrackPending}
	require.NoError(t, tr.Submit("p", testNow))
	require.NoError(t, tr.Approve(testNow))

	err := tr.Approve(testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, TrackApproved, tr.Status)
}

func TestTrackApproveWithoutSubmitFails(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackFinal, Status: TrackPending}
	require.ErrorIs(t, tr.Approve(testNow), ErrInvalidTransition)
}

func TestTrackRejectThenResubmit(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackAdvance, Status: TrackPending}
	require.NoError(t, tr.Submit("p1", testNow))
	require.NoError(t, tr.Reject("screenshot unreadable", testNow))
	require.Equal(t, TrackRejected, tr.Status)
	require.NotNil(t, tr.RejectReason)

	// resubmission replaces the proof and clears the rejection
	require.NoError(t, tr.Submit("p2", testNow))
	require.Equal(t, TrackSubmitted, tr.Status)
	require.Equal(t, "p2", *tr.ProofRef)
	require.Nil(t, tr.RejectReason)

	require.NoError(t, tr.Approve(testNow))
	require.Equal(t, TrackApproved, tr.Status)
}

func TestTrackRejectRequiresSubmitted(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackFinal, Status: TrackPending}
	require.ErrorIs(t, tr.Reject("why", testNow), ErrInvalidTransition)

	require.NoError(t, tr.Submit("p", testNow))
	require.NoError(t, tr.Approve(testNow))
	require.ErrorIs(t, tr.Reject("too late", testNow), ErrInvalidTransition)
}

func TestTrackSubmitTwiceFails(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackAdvance, Status: TrackPending}
	require.NoError(t, tr.Submit("p1", testNow))

	err := tr.Submit("p2", testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, "p1", *tr.ProofRef)
}

func TestTransitionErrorMessage(t *testing.T) {
	t.Parallel()

	tr := PaymentTrack{Kind: TrackFinal, Status: TrackApproved}
	err := tr.Approve(testNow)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "final payment", te.Entity)
	require.Equal(t, string(TrackApproved), te.From)
}
