package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/mailer"
)

// MailSender renders queued notifications into plain emails. Rendering here
// is deliberately minimal; anything fancier belongs in a real template layer.
type MailSender struct {
	Mailer   mailer.Service
	From     string
	FromName string
}

func NewMailSender(m mailer.Service, from, fromName string) *MailSender {
	return &MailSender{Mailer: m, From: from, FromName: fromName}
}

func (s *MailSender) Send(ctx context.Context, row Outbox) error {
	var payload map[string]any
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}

	subject, body := render(row.TemplateKey, payload)
	return s.Mailer.Send(ctx, mailer.Email{
		FromName: s.FromName,
		From:     s.From,
		To:       []string{row.Recipient},
		Subject:  subject,
		TextBody: body,
	})
}

func render(templateKey string, p map[string]any) (subject, body string) {
	orderID, _ := p["order_id"].(string)

	switch templateKey {
	case TplOrderCreated:
		return "Your order " + orderID,
			fmt.Sprintf("Thank you! Order %s is placed.\nAdvance due: %v\nTotal: %v\n", orderID, p["advance_amount"], p["total"])
	case TplAdvanceSubmitted, TplFinalSubmitted:
		return "Payment received for order " + orderID,
			fmt.Sprintf("We received your payment proof for order %s (amount %v). It is being reviewed.\n", orderID, p["amount"])
	case TplAdvanceApproved:
		return "Advance payment confirmed for order " + orderID,
			fmt.Sprintf("Your advance payment for order %s is confirmed. We are starting on your dresses.\n", orderID)
	case TplFinalApproved:
		return "Final payment confirmed for order " + orderID,
			fmt.Sprintf("Your final payment for order %s is confirmed.\n", orderID)
	case TplAdvanceRejected, TplFinalRejected:
		// the reason reaches the customer exactly as the admin wrote it
		return "Payment issue on order " + orderID,
			fmt.Sprintf("Your payment proof for order %s was not accepted.\nReason: %v\nPlease submit a new proof.\n", orderID, p["reason"])
	case TplShippingAssigned:
		return "Shipping calculated for order " + orderID,
			fmt.Sprintf("Order %s weighs in at %v g (billed %v kg). Shipping: %v. Final installment: %v.\n",
				orderID, p["weight_grams"], p["billed_kg"], p["shipping_cost"], p["final_amount"])
	case TplFinalRequested:
		return "Final payment due for order " + orderID,
			fmt.Sprintf("Order %s is ready. Please pay the final installment of %v.\n", orderID, p["amount"])
	case TplStatusChanged:
		return "Order " + orderID + " update",
			fmt.Sprintf("Order %s moved from %v to %v.\n", orderID, p["from"], p["to"])
	case TplOrderCancelled:
		return "Order " + orderID + " cancelled",
			fmt.Sprintf("Order %s has been cancelled.\n", orderID)
	default:
		return "Order " + orderID + " update",
			fmt.Sprintf("There is an update on order %s.\n", orderID)
	}
}
