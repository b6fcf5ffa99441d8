package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/mailer"
)

func TestRenderRejectionCarriesReasonVerbatim(t *testing.T) {
	t.Parallel()

	subject, body := render(TplAdvanceRejected, map[string]any{
		"order_id": "o-1",
		"reason":   "amount on the screenshot does not match",
	})
	require.Contains(t, subject, "o-1")
	require.Contains(t, body, "amount on the screenshot does not match")
}

func TestRenderShippingAssigned(t *testing.T) {
	t.Parallel()

	_, body := render(TplShippingAssigned, map[string]any{
		"order_id":      "o-1",
		"weight_grams":  2300,
		"billed_kg":     3,
		"shipping_cost": 1050,
		"final_amount":  3050,
	})
	require.Contains(t, body, "2300")
	require.Contains(t, body, "3050")
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	t.Parallel()

	subject, body := render("tpl.something.new", map[string]any{"order_id": "o-1"})
	require.NotEmpty(t, subject)
	require.Contains(t, body, "o-1")
}

func TestMailSenderSend(t *testing.T) {
	t.Parallel()

	mock := &mailer.Mock{}
	s := NewMailSender(mock, "orders@example.com", "Angel Baby Dresses")

	err := s.Send(context.Background(), Outbox{
		Recipient:   "jo@example.com",
		TemplateKey: TplOrderCreated,
		Payload:     datatypes.JSON(`{"order_id":"o-1","advance_amount":2000,"total":4000}`),
	})
	require.NoError(t, err)

	sent := mock.Sent
	require.Len(t, sent, 1)
	require.Equal(t, []string{"jo@example.com"}, sent[0].To)
	require.Equal(t, "orders@example.com", sent[0].From)
	require.Contains(t, sent[0].Subject, "o-1")
	require.Contains(t, sent[0].TextBody, "2000")
}

func TestMailSenderBadPayload(t *testing.T) {
	t.Parallel()

	s := NewMailSender(&mailer.Mock{}, "orders@example.com", "")
	err := s.Send(context.Background(), Outbox{
		Recipient:   "jo@example.com",
		TemplateKey: TplOrderCreated,
		Payload:     datatypes.JSON(`{not json`),
	})
	require.Error(t, err)
}
