package shipping

// DefaultRatePerKg is the flat per-kilogram charge, overridable via
// SHIPPING_RATE_PER_KG.
const DefaultRatePerKg int64 = 350

// Calculator converts a declared package weight into a shipping charge.
// Dresses are made to order, so weight is only known once an admin weighs
// the finished package.
type Calculator struct {
	RatePerKg int64
}

func NewCalculator(ratePerKg int64) Calculator {
	if ratePerKg <= 0 {
		ratePerKg = DefaultRatePerKg
	}
	return Calculator{RatePerKg: ratePerKg}
}

// Cost returns the shipping charge and the billed weight in whole kilograms.
// Weight rounds up to the next whole kilogram; zero weight ships free.
func (c Calculator) Cost(weightGrams int) (amount int64, billedKg int) {
	if weightGrams <= 0 {
		return 0, 0
	}
	billedKg = (weightGrams + 999) / 1000
	return int64(billedKg) * c.RatePerKg, billedKg
}
