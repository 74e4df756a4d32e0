package position

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	return tx.Update().
		Where("user_id=? and asset_id=?", position.UserID, position.AssetID).
		FirstOrCreate(position).Error
}

// Find returns the position for (user, asset), or an empty unsaved one
// (ID == 0) when the user never touched the asset
func (s *positionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&position).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Position{
				UserID:          userID,
				AssetID:         assetID,
				DepositedAmount: decimal.Zero,
				DepositedShares: decimal.Zero,
				BorrowedAmount:  decimal.Zero,
				BorrowedShares:  decimal.Zero,
			}, nil
		}
		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id=?", userID).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return tx.Update().Create(position).Error
	}

	version := position.Version
	position.Version++
	updated := tx.Update().Model(core.Position{}).
		Where("user_id=? and asset_id=? and version=?", position.UserID, position.AssetID, version).
		Updates(position)
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrOperationForbidden
	}

	return nil
}

func (s *positionStore) Borrowers(ctx context.Context, assetID string) ([]string, error) {
	var users []string
	query := s.db.View().Model(core.Position{}).Where("borrowed_shares > 0")
	if assetID != "" {
		query = query.Where("asset_id=?", assetID)
	}
	if err := query.Pluck("distinct user_id", &users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
