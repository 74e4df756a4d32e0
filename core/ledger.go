package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// BankParams risk parameters supplied once at bank initialization
type BankParams struct {
	AssetID              string          `json:"asset_id" valid:"uuid,required"`
	Symbol               string          `json:"symbol" valid:"required"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	MaxLTV               decimal.Decimal `json:"max_ltv"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus"`
	CloseFactor          decimal.Decimal `json:"close_factor"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
}

// ILedgerService top-level lending operations, each one atomic unit of work
type ILedgerService interface {
	InitBank(ctx context.Context, params BankParams) (*Bank, error)
	InitUser(ctx context.Context, address string) (*User, error)
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, userID, assetID string, shares decimal.Decimal) error
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Liquidate(ctx context.Context, liquidatorID, borrowerID, collateralAssetID, debtAssetID string) (*Payout, error)
	// AccrueAll brings every bank's totals current, used by the interest worker
	AccrueAll(ctx context.Context) error
}
