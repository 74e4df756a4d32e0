package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Balance asset balance held by one holder
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	HolderID  string          `sql:"size:36;unique_index:balance_idx" json:"holder_id"`
	AssetID   string          `sql:"size:36;unique_index:balance_idx" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IWalletStore balance store interface
type IWalletStore interface {
	Find(ctx context.Context, holderID, assetID string) (*Balance, error)
	Save(ctx context.Context, tx *db.DB, balance *Balance) error
}

// ITransferService atomic value transfer between two holders. Runs inside the
// caller's transaction so a failed transfer rolls back every ledger mutation
// staged before it.
type ITransferService interface {
	Transfer(ctx context.Context, tx *db.DB, from, to, assetID string, amount decimal.Decimal) error
	Balance(ctx context.Context, holderID, assetID string) (decimal.Decimal, error)
}
