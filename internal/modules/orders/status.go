package orders

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// forwardRank orders the delivery chain. Cancelled sits outside the chain.
var forwardRank = map[Status]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusProcessing:     2,
	StatusShipped:        3,
	StatusOutForDelivery: 4,
	StatusDelivered:      5,
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ValidStatus(s Status) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := forwardRank[s]
	return ok
}
