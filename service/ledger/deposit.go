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

// Deposit moves amount from the user into the bank's treasury and mints
// deposit shares at the pre-deposit ratio
func (s *ledgerService) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.deposit(ctx, tx, userID, assetID, amount)
	})
}

func (s *ledgerService) deposit(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("event", "deposit")

	if amount.Sign() <= 0 {
		return core.ErrInvalidAmount
	}
	amount = amount.Truncate(ledger.AmountPrecision)

	bank, err := s.bankStore.Find(ctx, assetID)
	if err != nil {
		return err
	}

	position, err := s.positionStore.Find(ctx, userID, assetID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := accrueBank(bank, now); err != nil {
		return err
	}
	if err := accruePosition(position, bank, now); err != nil {
		return err
	}

	// the transfer happens before any share mutation commits; a failed
	// transfer rolls back the whole transaction
	if err := s.transferz.Transfer(ctx, tx, userID, bank.TreasuryID, assetID, amount); err != nil {
		return err
	}

	shares := ledger.DepositShares(amount, bank.TotalDeposits, bank.TotalDepositShares)

	bank.TotalDeposits = bank.TotalDeposits.Add(amount)
	bank.TotalDepositShares = bank.TotalDepositShares.Add(shares)
	position.DepositedAmount = position.DepositedAmount.Add(amount)
	position.DepositedShares = position.DepositedShares.Add(shares)

	if err := s.bankStore.Update(ctx, tx, bank); err != nil {
		log.WithError(err).Errorln("banks.Update")
		return err
	}

	if err := s.positionStore.Update(ctx, tx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return err
	}

	return nil
}

// Withdraw redeems deposit shares back to the underlying asset at the
// current ratio, refusing to strand outstanding debt under-collateralized
func (s *ledgerService) Withdraw(ctx context.Context, userID, assetID string, shares decimal.Decimal) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.withdraw(ctx, tx, userID, assetID, shares)
	})
}

func (s *ledgerService) withdraw(ctx context.Context, tx *db.DB, userID, assetID string, shares decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("event", "withdraw")

	if shares.Sign() <= 0 {
		return core.ErrInvalidAmount
	}
	shares = shares.Truncate(ledger.AmountPrecision)

	bank, err := s.bankStore.Find(ctx, assetID)
	if err != nil {
		return err
	}

	position, err := s.positionStore.Find(ctx, userID, assetID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := accrueBank(bank, now); err != nil {
		return err
	}
	if err := accruePosition(position, bank, now); err != nil {
		return err
	}

	remainingShares, err := ledger.SubChecked(position.DepositedShares, shares)
	if err != nil {
		return err
	}

	amount, err := ledger.SharesToAmount(shares, bank.TotalDeposits, bank.TotalDepositShares)
	if err != nil {
		return err
	}

	if bank.Liquidity().LessThan(amount) {
		return core.ErrInsufficientFunds
	}

	// withdrawn collateral may not push the user past their borrow limit
	quote, err := s.priceService.GetQuote(ctx, assetID, s.maxQuoteAge)
	if err != nil {
		return err
	}

	power, err := s.accountz.BorrowingPower(ctx, userID, now)
	if err != nil {
		return err
	}

	if amount.Mul(quote.Price).Mul(bank.MaxLTV).GreaterThan(power) {
		return core.ErrOverBorrowable
	}

	if err := s.transferz.Transfer(ctx, tx, bank.TreasuryID, userID, assetID, amount); err != nil {
		return err
	}

	bank.TotalDeposits, err = ledger.SubChecked(bank.TotalDeposits, amount)
	if err != nil {
		return err
	}
	bank.TotalDepositShares, err = ledger.SubChecked(bank.TotalDepositShares, shares)
	if err != nil {
		return err
	}

	position.DepositedShares = remainingShares
	if remainingShares.Sign() == 0 {
		// rounding dust dies with the last share
		position.DepositedAmount = decimal.Zero
	} else {
		position.DepositedAmount, err = ledger.SubChecked(position.DepositedAmount, amount)
		if err != nil {
			return err
		}
	}

	if err := s.bankStore.Update(ctx, tx, bank); err != nil {
		log.WithError(err).Errorln("banks.Update")
		return err
	}

	if err := s.positionStore.Update(ctx, tx, position); err != nil {
		log.WithError(err).Errorln("positions.Update")
		return err
	}

	return nil
}
