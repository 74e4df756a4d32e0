package ledger

import (
	"testing"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHealthFactor(t *testing.T) {
	// riskCollateral 8000 vs debt 10000 -> 0.8, liquidatable
	hf := HealthFactor(d("8000"), d("10000"))
	require.True(t, hf.Equal(d("0.8")))
	require.True(t, Liquidatable(hf))

	// debt free positions are infinitely healthy
	hf = HealthFactor(d("8000"), decimal.Zero)
	require.True(t, hf.Equal(core.HealthFactorInfinite))
	require.False(t, Liquidatable(hf))
}

func TestHealthFactorMonotonic(t *testing.T) {
	collateral := d("8000")
	prev := HealthFactor(collateral, d("1"))
	for _, debt := range []string{"100", "1000", "7999", "8000", "9000"} {
		hf := HealthFactor(collateral, d(debt))
		require.True(t, hf.LessThan(prev), "health factor must fall as debt grows")
		prev = hf
	}

	debt := d("5000")
	prev = HealthFactor(d("1"), debt)
	for _, c := range []string{"100", "1000", "10000"} {
		hf := HealthFactor(d(c), debt)
		require.True(t, hf.GreaterThan(prev), "health factor must rise with collateral")
		prev = hf
	}
}

func TestLiquidationPayout(t *testing.T) {
	// debt value 1000, close factor 0.5 -> repay value 500;
	// bonus 0.1 -> seized value 550; price 2 -> 275 collateral units
	repayValue, seizedAmount, err := LiquidationPayout(d("1000"), d("0.5"), d("0.1"), d("2"), d("300"))
	require.Nil(t, err)
	require.True(t, repayValue.Equal(d("500")))
	require.True(t, seizedAmount.Equal(d("275")))
}

func TestLiquidationPayoutCapped(t *testing.T) {
	// only 200 collateral available: seizure clamps to the deposit and the
	// repaid value scales back proportionally instead of underflowing
	repayValue, seizedAmount, err := LiquidationPayout(d("1000"), d("0.5"), d("0.1"), d("2"), d("200"))
	require.Nil(t, err)
	require.True(t, seizedAmount.Equal(d("200")))
	require.Equal(t, "363.6363636363636363", repayValue.String())
}

func TestLiquidationPayoutNoCollateral(t *testing.T) {
	_, _, err := LiquidationPayout(d("1000"), d("0.5"), d("0.1"), d("2"), decimal.Zero)
	require.Equal(t, core.ErrOverRepay, err)
}
