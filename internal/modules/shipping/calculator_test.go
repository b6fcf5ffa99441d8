package shipping

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCostRoundsUpToWholeKg(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(350)

	amount, billed := calc.Cost(2300)
	require.Equal(t, 3, billed)
	require.Equal(t, int64(1050), amount)

	amount, billed = calc.Cost(2000)
	require.Equal(t, 2, billed)
	require.Equal(t, int64(700), amount)

	amount, billed = calc.Cost(1)
	require.Equal(t, 1, billed)
	require.Equal(t, int64(350), amount)
}

func TestCostZeroOrNegativeWeight(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(350)

	amount, billed := calc.Cost(0)
	require.Equal(t, 0, billed)
	require.Equal(t, int64(0), amount)

	amount, billed = calc.Cost(-10)
	require.Equal(t, 0, billed)
	require.Equal(t, int64(0), amount)
}

func TestNewCalculatorDefaultRate(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(0)
	require.Equal(t, DefaultRatePerKg, calc.RatePerKg)

	calc = NewCalculator(-5)
	require.Equal(t, DefaultRatePerKg, calc.RatePerKg)

	calc = NewCalculator(500)
	require.Equal(t, int64(500), calc.RatePerKg)
}
