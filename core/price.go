package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Price persisted oracle tick, latest row per asset
type Price struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID   string          `sql:"size:36;unique_index:idx_prices" json:"asset_id,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(20,8)" json:"price,omitempty"`
	Version   int64           `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// Quote ephemeral price quote handed to the risk engine, fetched fresh per
// operation and never persisted
type Quote struct {
	AssetID string          `json:"asset_id"`
	Price   decimal.Decimal `json:"price"`
	Time    time.Time       `json:"time"`
}

// PriceTicker price ticker from an external feed
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	AssetID  string          `json:"asset_id,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, tx *db.DB, price *Price) error
	FindLatest(ctx context.Context, assetID string) (*Price, error)
}

// IPriceOracleService price oracle adapter interface
type IPriceOracleService interface {
	// GetQuote returns the current quote for the asset, failing with
	// ErrStalePrice when the latest tick is older than maxAge or absent
	GetQuote(ctx context.Context, assetID string, maxAge time.Duration) (*Quote, error)
	PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*PriceTicker, error)
	PullAllPriceTickers(ctx context.Context, t time.Time) ([]*PriceTicker, error)
}
