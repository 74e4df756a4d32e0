package ledger

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// ratio math always truncates toward zero so rounding favors the pool,
// never the holder

// DepositShares shares minted for a deposit against the pool's deposit side.
// An empty pool bootstraps 1:1; otherwise the ratio is computed from the
// totals before the new amount is added.
func DepositShares(amount, totalDeposits, totalDepositShares decimal.Decimal) decimal.Decimal {
	return amountToShares(amount, totalDeposits, totalDepositShares)
}

// BorrowShares shares minted for a borrow against the pool's borrow side,
// bootstrapped 1:1 on the first borrow.
func BorrowShares(amount, totalBorrows, totalBorrowShares decimal.Decimal) decimal.Decimal {
	return amountToShares(amount, totalBorrows, totalBorrowShares)
}

func amountToShares(amount, totalAmount, totalShares decimal.Decimal) decimal.Decimal {
	if totalShares.Sign() == 0 || totalAmount.Sign() == 0 {
		return amount.Truncate(AmountPrecision)
	}
	return amount.Mul(totalShares).DivRound(totalAmount, AmountPrecision+8).Truncate(AmountPrecision)
}

// SharesToAmount inverse conversion: shares * totalAmount / totalShares.
// Fails with ErrDivisionByZero on an empty pool.
func SharesToAmount(shares, totalAmount, totalShares decimal.Decimal) (decimal.Decimal, error) {
	if totalShares.Sign() == 0 {
		return decimal.Zero, core.ErrDivisionByZero
	}
	return shares.Mul(totalAmount).DivRound(totalShares, AmountPrecision+8).Truncate(AmountPrecision), nil
}

// SubChecked a - b, failing with ErrUnderflow instead of going negative.
func SubChecked(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.GreaterThan(a) {
		return decimal.Zero, core.ErrUnderflow
	}
	return a.Sub(b), nil
}
