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

// Borrow lends amount to the user against their collateral. The requested
// value may use the full borrowing power; one unit beyond it is refused.
func (s *ledgerService) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.borrow(ctx, tx, userID, assetID, amount)
	})
}

func (s *ledgerService) borrow(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("event", "borrow")

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

	quote, err := s.priceService.GetQuote(ctx, assetID, s.maxQuoteAge)
	if err != nil {
		return err
	}

	power, err := s.accountz.BorrowingPower(ctx, userID, now)
	if err != nil {
		return err
	}

	if amount.Mul(quote.Price).GreaterThan(power) {
		log.Infoln("borrow denied: over borrowable amount")
		return core.ErrOverBorrowable
	}

	if bank.Liquidity().LessThan(amount) {
		return core.ErrInsufficientFunds
	}

	if err := s.transferz.Transfer(ctx, tx, bank.TreasuryID, userID, assetID, amount); err != nil {
		return err
	}

	// ratio from the totals before this borrow is added
	shares := ledger.BorrowShares(amount, bank.TotalBorrows, bank.TotalBorrowShares)

	bank.TotalBorrows = bank.TotalBorrows.Add(amount)
	bank.TotalBorrowShares = bank.TotalBorrowShares.Add(shares)
	position.BorrowedAmount = position.BorrowedAmount.Add(amount)
	position.BorrowedShares = position.BorrowedShares.Add(shares)

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

// Repay pays back up to the full owed amount; paying the whole debt drives
// the user's borrow shares to exactly zero
func (s *ledgerService) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.repay(ctx, tx, userID, assetID, amount)
	})
}

func (s *ledgerService) repay(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("event", "repay")

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

	owed := position.BorrowedAmount
	if amount.GreaterThan(owed) {
		return core.ErrOverRepay
	}

	if err := s.transferz.Transfer(ctx, tx, userID, bank.TreasuryID, assetID, amount); err != nil {
		return err
	}

	var shares decimal.Decimal
	if amount.Equal(owed) {
		shares = position.BorrowedShares
	} else {
		shares = ledger.BorrowShares(amount, bank.TotalBorrows, bank.TotalBorrowShares)
	}

	bank.TotalBorrows, err = ledger.SubChecked(bank.TotalBorrows, amount)
	if err != nil {
		return err
	}
	bank.TotalBorrowShares, err = ledger.SubChecked(bank.TotalBorrowShares, shares)
	if err != nil {
		return err
	}

	position.BorrowedAmount, err = ledger.SubChecked(owed, amount)
	if err != nil {
		return err
	}
	position.BorrowedShares, err = ledger.SubChecked(position.BorrowedShares, shares)
	if err != nil {
		return err
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
