package handlers

import (
	"encoding/json"
	"time"

	"github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/orders"
)

type trackView struct {
	Kind         string     `json:"kind"`
	Status       string     `json:"status"`
	Amount       int64      `json:"amount"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	RejectReason string     `json:"reject_reason,omitempty"`
}

type lineItemView struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	TierLabel  string `json:"tier_label,omitempty"`
	Color      string `json:"color,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	LineTotal  int64  `json:"line_total"`
	CampaignID string `json:"campaign_id,omitempty"`
}

type orderView struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	CustomerEmail string         `json:"customer_email"`
	Subtotal      int64          `json:"subtotal"`
	Discount      int64          `json:"discount"`
	ShippingCost  int64          `json:"shipping_cost"`
	WeightGrams   int            `json:"weight_grams"`
	Total         int64          `json:"total"`
	Carrier       string         `json:"carrier,omitempty"`
	TrackingRef   string         `json:"tracking_ref,omitempty"`
	Address       map[string]any `json:"address,omitempty"`
	Items         []lineItemView `json:"items,omitempty"`
	Tracks        []trackView    `json:"tracks"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type eventView struct {
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to"`
	Note   string    `json:"note,omitempty"`
	At     time.Time `json:"at"`
}

func orderToView(o orders.Order) orderView {
	v := orderView{
		ID:            o.ID,
		Status:        string(o.Status),
		CustomerEmail: o.CustomerEmail,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		ShippingCost:  o.ShippingCost,
		WeightGrams:   o.WeightGrams,
		Total:         o.Total,
		Carrier:       ptrStr(o.Carrier),
		TrackingRef:   ptrStr(o.TrackingRef),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	if len(o.Address) > 0 {
		var addr map[string]any
		if err := json.Unmarshal(o.Address, &addr); err == nil {
			v.Address = addr
		}
	}

	for _, it := range o.Items {
		v.Items = append(v.Items, lineItemView{
			ItemID:     it.ItemID,
			Name:       it.Name,
			TierLabel:  it.TierLabel,
			Color:      it.Color,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			LineTotal:  it.Total(),
			CampaignID: ptrStr(it.CampaignID),
		})
	}
	for _, t := range o.Tracks {
		v.Tracks = append(v.Tracks, trackView{
			Kind:         string(t.Kind),
			Status:       string(t.Status),
			Amount:       t.Amount,
			SubmittedAt:  t.SubmittedAt,
			RejectReason: ptrStr(t.RejectReason),
		})
	}
	return v
}

func eventsToView(ev []orders.StatusEvent) []eventView {
	out := make([]eventView, 0, len(ev))
	for _, e := range ev {
		out = append(out, eventView{
			Actor:  e.ActorID,
			Action: e.Action,
			From:   e.FromStatus,
			To:     e.ToStatus,
			Note:   ptrStr(e.Note),
			At:     e.CreatedAt,
		})
	}
	return out
}
