package ledger

import (
	"testing"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestExp(t *testing.T) {
	require.True(t, Exp(decimal.Zero).Equal(d("1")))

	// e^0.01 = 1.0100501670841680...
	got := Exp(d("0.01"))
	require.Equal(t, "1.010050167084168", got.String())

	// e^1 = 2.7182818284590452...
	got = Exp(d("1"))
	require.True(t, got.GreaterThan(d("2.7182818284")))
	require.True(t, got.LessThan(d("2.7182818285")))
}

func TestAccrue(t *testing.T) {
	// rate 0.0001/s over 100s compounds 1000 to 1000 * e^0.01
	got, err := Accrue(d("1000"), d("0.0001"), 100)
	require.Nil(t, err)
	require.Equal(t, "1010.05016708", got.String())
}

func TestAccrueNoElapsed(t *testing.T) {
	got, err := Accrue(d("1000"), d("0.0001"), 0)
	require.Nil(t, err)
	require.True(t, got.Equal(d("1000")))
}

func TestAccrueZeroRate(t *testing.T) {
	got, err := Accrue(d("1000"), decimal.Zero, 86400)
	require.Nil(t, err)
	require.True(t, got.Equal(d("1000")))
}

func TestAccrueClockSkew(t *testing.T) {
	_, err := Accrue(d("1000"), d("0.0001"), -1)
	require.Equal(t, core.ErrClockSkew, err)
}

func TestAccrueMonotonic(t *testing.T) {
	// value per share only grows: accrued principal never shrinks
	prev := d("1000")
	for _, elapsed := range []int64{1, 60, 3600, 86400} {
		got, err := Accrue(d("1000"), d("0.0000001"), elapsed)
		require.Nil(t, err)
		require.True(t, got.GreaterThanOrEqual(prev))
		prev = got
	}
}
