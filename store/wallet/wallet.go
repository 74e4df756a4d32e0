package wallet

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type walletStore struct {
	db *db.DB
}

// New new wallet store
func New(db *db.DB) core.IWalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Find returns the balance row for (holder, asset), or an empty unsaved one
// (ID == 0) when the holder never held the asset
func (s *walletStore) Find(ctx context.Context, holderID, assetID string) (*core.Balance, error) {
	var balance core.Balance
	err := s.db.View().Where("holder_id=? and asset_id=?", holderID, assetID).First(&balance).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Balance{
				HolderID: holderID,
				AssetID:  assetID,
				Amount:   decimal.Zero,
			}, nil
		}
		return nil, err
	}

	return &balance, nil
}

func (s *walletStore) Save(ctx context.Context, tx *db.DB, balance *core.Balance) error {
	if balance.ID == 0 {
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	balance.Version++
	updated := tx.Update().Model(core.Balance{}).
		Where("holder_id=? and asset_id=? and version=?", balance.HolderID, balance.AssetID, version).
		Updates(map[string]interface{}{
			"amount":  balance.Amount,
			"version": balance.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrOperationForbidden
	}

	return nil
}
