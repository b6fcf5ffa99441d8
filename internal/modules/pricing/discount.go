package pricing

// Discount returns the unit price after applying the campaign to basePrice.
// A nil campaign or a non-positive base price returns basePrice unchanged.
// The result is rounded to the nearest whole currency unit and never drops
// below zero.
func Discount(basePrice int64, c *Campaign) int64 {
	if c == nil || basePrice <= 0 {
		return basePrice
	}

	var cut int64
	switch c.Kind {
	case DiscountPercentage:
		cut = (basePrice*c.Value + 50) / 100
		if c.MaxDiscount != nil && *c.MaxDiscount > 0 && cut > *c.MaxDiscount {
			cut = *c.MaxDiscount
		}
	case DiscountFixed:
		cut = c.Value
	default:
		return basePrice
	}

	out := basePrice - cut
	if out < 0 {
		out = 0
	}
	return out
}
