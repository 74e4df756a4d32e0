package ledger

import (
	"testing"

	"lending/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	r, _ := decimal.NewFromString(v)
	return r
}

func TestDepositSharesBootstrap(t *testing.T) {
	// first depositor of an empty pool gets shares 1:1
	shares := DepositShares(d("1000"), decimal.Zero, decimal.Zero)
	require.True(t, shares.Equal(d("1000")))

	// second depositor with no time elapsed keeps the 1:1 ratio
	shares = DepositShares(d("500"), d("1000"), d("1000"))
	require.True(t, shares.Equal(d("500")))
}

func TestSharesToAmountAfterAccrual(t *testing.T) {
	// accrual raised deposits to 1600 while shares stayed at 1500:
	// 150 shares redeem to 150 * 1600 / 1500 = 160 units
	amount, err := SharesToAmount(d("150"), d("1600"), d("1500"))
	require.Nil(t, err)
	require.True(t, amount.Equal(d("160")))
}

func TestSharesToAmountEmptyPool(t *testing.T) {
	_, err := SharesToAmount(d("10"), decimal.Zero, decimal.Zero)
	require.Equal(t, core.ErrDivisionByZero, err)
}

func TestShareRoundTrip(t *testing.T) {
	// exact round trip when the pool was previously empty
	shares := DepositShares(d("123.456"), decimal.Zero, decimal.Zero)
	amount, err := SharesToAmount(shares, d("123.456"), shares)
	require.Nil(t, err)
	require.True(t, amount.Equal(d("123.456")))

	// otherwise within rounding-down tolerance, never above
	totalDeposits := d("1600.13")
	totalShares := d("1500")
	shares = DepositShares(d("100"), totalDeposits, totalShares)
	amount, err = SharesToAmount(shares, totalDeposits.Add(d("100")), totalShares.Add(shares))
	require.Nil(t, err)
	require.True(t, amount.LessThanOrEqual(d("100")))
	require.True(t, amount.GreaterThan(d("99.99")))
}

func TestBorrowSharesBootstrap(t *testing.T) {
	shares := BorrowShares(d("42"), decimal.Zero, decimal.Zero)
	require.True(t, shares.Equal(d("42")))

	shares = BorrowShares(d("21"), d("42"), d("42"))
	require.True(t, shares.Equal(d("21")))
}

func TestSubChecked(t *testing.T) {
	v, err := SubChecked(d("10"), d("4"))
	require.Nil(t, err)
	require.True(t, v.Equal(d("6")))

	_, err = SubChecked(d("4"), d("10"))
	require.Equal(t, core.ErrUnderflow, err)
}
