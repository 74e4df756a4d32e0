package ledger

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Liquidate lets a third party repay a bounded slice of an
// under-collateralized borrower's debt in exchange for discounted collateral.
// The close factor bounds the slice, the liquidation bonus prices the
// discount, and seizure never exceeds the borrower's deposit.
func (s *ledgerService) Liquidate(ctx context.Context, liquidatorID, borrowerID, collateralAssetID, debtAssetID string) (*core.Payout, error) {
	var payout *core.Payout
	err := s.db.Tx(func(tx *db.DB) error {
		p, err := s.liquidate(ctx, tx, liquidatorID, borrowerID, collateralAssetID, debtAssetID)
		if err != nil {
			return err
		}

		payout = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payout, nil
}

func (s *ledgerService) liquidate(ctx context.Context, tx *db.DB, liquidatorID, borrowerID, collateralAssetID, debtAssetID string) (*core.Payout, error) {
	log := logger.FromContext(ctx).WithField("event", "liquidation")

	if collateralAssetID == debtAssetID || liquidatorID == borrowerID {
		return nil, core.ErrInvalidArgument
	}

	collateralBank, err := s.bankStore.Find(ctx, collateralAssetID)
	if err != nil {
		return nil, err
	}

	debtBank, err := s.bankStore.Find(ctx, debtAssetID)
	if err != nil {
		return nil, err
	}

	collateralPosition, err := s.positionStore.Find(ctx, borrowerID, collateralAssetID)
	if err != nil {
		return nil, err
	}

	debtPosition, err := s.positionStore.Find(ctx, borrowerID, debtAssetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, bank := range []*core.Bank{collateralBank, debtBank} {
		if err := accrueBank(bank, now); err != nil {
			return nil, err
		}
	}
	if err := accruePosition(collateralPosition, collateralBank, now); err != nil {
		return nil, err
	}
	if err := accruePosition(debtPosition, debtBank, now); err != nil {
		return nil, err
	}

	// both quotes fetched fresh, both staleness-checked
	collateralQuote, err := s.priceService.GetQuote(ctx, collateralAssetID, s.maxQuoteAge)
	if err != nil {
		return nil, err
	}

	debtQuote, err := s.priceService.GetQuote(ctx, debtAssetID, s.maxQuoteAge)
	if err != nil {
		return nil, err
	}

	healthFactor, err := s.accountz.HealthFactor(ctx, borrowerID, now)
	if err != nil {
		return nil, err
	}

	if !ledger.Liquidatable(healthFactor) {
		log.Infoln("liquidation denied: position healthy, health factor", healthFactor)
		return nil, core.ErrNotUnderCollateralized
	}

	debtValue := debtPosition.BorrowedAmount.Mul(debtQuote.Price)

	repayValue, seizedAmount, err := ledger.LiquidationPayout(
		debtValue,
		collateralBank.CloseFactor,
		collateralBank.LiquidationBonus,
		collateralQuote.Price,
		collateralPosition.DepositedAmount,
	)
	if err != nil {
		return nil, err
	}

	repayAmount := repayValue.DivRound(debtQuote.Price, ledger.AmountPrecision+8).Truncate(ledger.AmountPrecision)
	if repayAmount.GreaterThan(debtPosition.BorrowedAmount) {
		repayAmount = debtPosition.BorrowedAmount
	}
	if repayAmount.Sign() <= 0 {
		return nil, core.ErrOverRepay
	}

	// liquidator pays the debt back to the debt bank, then the
	// collateral bank pays out the seized deposit
	if err := s.transferz.Transfer(ctx, tx, liquidatorID, debtBank.TreasuryID, debtAssetID, repayAmount); err != nil {
		return nil, err
	}
	if err := s.transferz.Transfer(ctx, tx, collateralBank.TreasuryID, liquidatorID, collateralAssetID, seizedAmount); err != nil {
		return nil, err
	}

	// debt side
	var debtShares decimal.Decimal
	if repayAmount.Equal(debtPosition.BorrowedAmount) {
		debtShares = debtPosition.BorrowedShares
	} else {
		debtShares = ledger.BorrowShares(repayAmount, debtBank.TotalBorrows, debtBank.TotalBorrowShares)
	}

	debtBank.TotalBorrows, err = ledger.SubChecked(debtBank.TotalBorrows, repayAmount)
	if err != nil {
		return nil, err
	}
	debtBank.TotalBorrowShares, err = ledger.SubChecked(debtBank.TotalBorrowShares, debtShares)
	if err != nil {
		return nil, err
	}
	debtPosition.BorrowedAmount, err = ledger.SubChecked(debtPosition.BorrowedAmount, repayAmount)
	if err != nil {
		return nil, err
	}
	debtPosition.BorrowedShares, err = ledger.SubChecked(debtPosition.BorrowedShares, debtShares)
	if err != nil {
		return nil, err
	}

	// collateral side
	var seizedShares decimal.Decimal
	if seizedAmount.Equal(collateralPosition.DepositedAmount) {
		seizedShares = collateralPosition.DepositedShares
	} else {
		seizedShares = ledger.DepositShares(seizedAmount, collateralBank.TotalDeposits, collateralBank.TotalDepositShares)
	}

	collateralBank.TotalDeposits, err = ledger.SubChecked(collateralBank.TotalDeposits, seizedAmount)
	if err != nil {
		return nil, err
	}
	collateralBank.TotalDepositShares, err = ledger.SubChecked(collateralBank.TotalDepositShares, seizedShares)
	if err != nil {
		return nil, err
	}
	collateralPosition.DepositedAmount, err = ledger.SubChecked(collateralPosition.DepositedAmount, seizedAmount)
	if err != nil {
		return nil, err
	}
	collateralPosition.DepositedShares, err = ledger.SubChecked(collateralPosition.DepositedShares, seizedShares)
	if err != nil {
		return nil, err
	}

	for _, bank := range []*core.Bank{collateralBank, debtBank} {
		if err := s.bankStore.Update(ctx, tx, bank); err != nil {
			log.WithError(err).Errorln("banks.Update")
			return nil, err
		}
	}
	for _, position := range []*core.Position{collateralPosition, debtPosition} {
		if err := s.positionStore.Update(ctx, tx, position); err != nil {
			log.WithError(err).Errorln("positions.Update")
			return nil, err
		}
	}

	return &core.Payout{
		RepayAmount:  repayAmount,
		RepayValue:   repayValue,
		SeizedAmount: seizedAmount,
	}, nil
}
