package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HealthFactorInfinite health factor reported for a position with no debt,
// never eligible for liquidation
var HealthFactorInfinite = decimal.NewFromInt(1000000)

// Payout liquidation payout figures for one call
type Payout struct {
	// RepayAmount debt-asset amount the liquidator pays back
	RepayAmount decimal.Decimal `json:"repay_amount"`
	// RepayValue value of the repaid debt at quote time
	RepayValue decimal.Decimal `json:"repay_value"`
	// SeizedAmount collateral-asset amount handed to the liquidator
	SeizedAmount decimal.Decimal `json:"seized_amount"`
}

// IAccountService risk engine: composes banks, positions and the oracle into
// borrowing power, health factor and liquidation payout figures
type IAccountService interface {
	CollateralValue(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error)
	DebtValue(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error)
	// BorrowingPower risk-adjusted collateral value minus current debt value
	BorrowingPower(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error)
	// HealthFactor liquidation-threshold-weighted collateral over debt;
	// HealthFactorInfinite when the user owes nothing
	HealthFactor(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error)
}
