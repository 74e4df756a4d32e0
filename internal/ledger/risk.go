package ledger

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// HealthFactor threshold-weighted collateral value over debt value. A user
// with no debt is infinitely healthy.
func HealthFactor(riskCollateralValue, debtValue decimal.Decimal) decimal.Decimal {
	if debtValue.Sign() <= 0 {
		return core.HealthFactorInfinite
	}
	return riskCollateralValue.DivRound(debtValue, MaxPrecision+8).Truncate(MaxPrecision)
}

// Liquidatable a position is eligible for liquidation iff its health factor
// dropped below 1
func Liquidatable(healthFactor decimal.Decimal) bool {
	return healthFactor.LessThan(one)
}

// LiquidationPayout repay and seizure figures for one liquidation call.
// The close factor bounds how much debt one call may clear; the bonus is paid
// on top of the repaid value in collateral. Seizure is capped at the
// available collateral, scaling the repaid value back proportionally so the
// position can never underflow.
func LiquidationPayout(debtValue, closeFactor, liquidationBonus, collateralPrice, availableCollateral decimal.Decimal) (repayValue, seizedAmount decimal.Decimal, err error) {
	if collateralPrice.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, core.ErrInvalidAmount
	}

	onePlusBonus := one.Add(liquidationBonus)
	repayValue = debtValue.Mul(closeFactor).Truncate(MaxPrecision)
	seizedValue := repayValue.Mul(onePlusBonus)
	seizedAmount = seizedValue.DivRound(collateralPrice, AmountPrecision+8).Truncate(AmountPrecision)

	if seizedAmount.GreaterThan(availableCollateral) {
		seizedAmount = availableCollateral
		seizedValue = seizedAmount.Mul(collateralPrice)
		repayValue = seizedValue.DivRound(onePlusBonus, MaxPrecision+8).Truncate(MaxPrecision)
	}

	if seizedAmount.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, core.ErrOverRepay
	}

	return repayValue, seizedAmount, nil
}
