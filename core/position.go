package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position per-user holdings in one bank, deposit and borrow side
type Position struct {
	ID                 uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID             string          `sql:"size:36;unique_index:position_idx" json:"user_id"`
	AssetID            string          `sql:"size:36;unique_index:position_idx" json:"asset_id"`
	DepositedAmount    decimal.Decimal `sql:"type:decimal(32,16)" json:"deposited_amount"`
	DepositedShares    decimal.Decimal `sql:"type:decimal(32,16)" json:"deposited_shares"`
	BorrowedAmount     decimal.Decimal `sql:"type:decimal(32,16)" json:"borrowed_amount"`
	BorrowedShares     decimal.Decimal `sql:"type:decimal(32,16)" json:"borrowed_shares"`
	LastUpdatedDeposit time.Time       `json:"last_updated_deposit"`
	LastUpdatedBorrow  time.Time       `json:"last_updated_borrow"`
	Version            int64           `sql:"default:0" json:"version"`
	CreatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
type IPositionStore interface {
	Create(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
	Borrowers(ctx context.Context, assetID string) ([]string, error)
}
