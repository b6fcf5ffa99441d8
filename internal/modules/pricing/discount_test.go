package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountPercentageRoundsToNearestUnit(t *testing.T) {
	t.Parallel()

	c := &Campaign{Kind: DiscountPercentage, Value: 20}
	require.Equal(t, int64(800), Discount(1000, c))

	// 15% of 999 = 149.85 -> cut rounds to 150
	c = &Campaign{Kind: DiscountPercentage, Value: 15}
	require.Equal(t, int64(849), Discount(999, c))

	// 33% of 10 = 3.3 -> cut rounds to 3
	c = &Campaign{Kind: DiscountPercentage, Value: 33}
	require.Equal(t, int64(7), Discount(10, c))
}

func TestDiscountPercentageCap(t *testing.T) {
	t.Parallel()

	cap := int64(100)
	c := &Campaign{Kind: DiscountPercentage, Value: 50, MaxDiscount: &cap}

	require.Equal(t, int64(900), Discount(1000, c))

	// under the cap the raw percentage applies
	require.Equal(t, int64(90), Discount(180, c))
}

func TestDiscountCapKeepsPriceMonotonic(t *testing.T) {
	t.Parallel()

	// with a cap, a pricier base must never come out cheaper
	cap := int64(200)
	c := &Campaign{Kind: DiscountPercentage, Value: 30, MaxDiscount: &cap}

	prev := int64(-1)
	for base := int64(100); base <= 2000; base += 50 {
		out := Discount(base, c)
		require.GreaterOrEqual(t, out, prev, "base=%d", base)
		prev = out
	}
}

func TestDiscountFixed(t *testing.T) {
	t.Parallel()

	c := &Campaign{Kind: DiscountFixed, Value: 250}
	require.Equal(t, int64(750), Discount(1000, c))

	// cut beyond the base floors at zero
	require.Equal(t, int64(0), Discount(200, c))
}

func TestDiscountEdgeCases(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(1000), Discount(1000, nil))
	require.Equal(t, int64(0), Discount(0, &Campaign{Kind: DiscountFixed, Value: 10}))
	require.Equal(t, int64(-5), Discount(-5, &Campaign{Kind: DiscountFixed, Value: 10}))

	// unknown kind leaves the price untouched
	require.Equal(t, int64(1000), Discount(1000, &Campaign{Kind: "bogof", Value: 50}))
}
