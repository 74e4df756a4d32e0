package wallet

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type transferService struct {
	wallets core.IWalletStore
}

// New new transfer service
func New(wallets core.IWalletStore) core.ITransferService {
	return &transferService{wallets: wallets}
}

// Transfer moves amount from one holder to another inside the caller's
// transaction. Either both balance rows commit or neither does.
func (s *transferService) Transfer(ctx context.Context, tx *db.DB, from, to, assetID string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return core.ErrInvalidAmount
	}

	source, err := s.wallets.Find(ctx, from, assetID)
	if err != nil {
		return err
	}

	if source.Amount.LessThan(amount) {
		return core.ErrInsufficientFunds
	}

	dest, err := s.wallets.Find(ctx, to, assetID)
	if err != nil {
		return err
	}

	source.Amount = source.Amount.Sub(amount)
	dest.Amount = dest.Amount.Add(amount)

	if err := s.wallets.Save(ctx, tx, source); err != nil {
		return err
	}

	return s.wallets.Save(ctx, tx, dest)
}

func (s *transferService) Balance(ctx context.Context, holderID, assetID string) (decimal.Decimal, error) {
	balance, err := s.wallets.Find(ctx, holderID, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	return balance.Amount, nil
}
