package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Bank aggregate pool state for one supported asset
type Bank struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	// 金库持有人, 由 asset_id 派生
	TreasuryID         string          `sql:"size:36" json:"treasury_id"`
	TotalDeposits      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_deposits"`
	TotalDepositShares decimal.Decimal `sql:"type:decimal(32,16)" json:"total_deposit_shares"`
	TotalBorrows       decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrows"`
	TotalBorrowShares  decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrow_shares"`
	// 清算触发因子 (0, 1)
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	// 可借贷价值 / 抵押资产价值 (0, 1)
	MaxLTV decimal.Decimal `sql:"type:decimal(20,8)" json:"max_ltv"`
	// 清算奖励因子 (0, 1)
	LiquidationBonus decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_bonus"`
	// 清算人单次最大可清算的债务比例 (0, 1]
	CloseFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"close_factor"`
	// 每秒利率
	InterestRate  decimal.Decimal `sql:"type:decimal(20,16)" json:"interest_rate"`
	LastAccruedAt time.Time       `json:"last_accrued_at"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Liquidity cash available for borrows and withdrawals
func (b *Bank) Liquidity() decimal.Decimal {
	return b.TotalDeposits.Sub(b.TotalBorrows)
}

// IBankStore bank store interface
type IBankStore interface {
	Create(ctx context.Context, tx *db.DB, bank *Bank) error
	Find(ctx context.Context, assetID string) (*Bank, error)
	FindBySymbol(ctx context.Context, symbol string) (*Bank, error)
	All(ctx context.Context) ([]*Bank, error)
	AllAsMap(ctx context.Context) (map[string]*Bank, error)
	Update(ctx context.Context, tx *db.DB, bank *Bank) error
}
