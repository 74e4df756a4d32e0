package oracle

import (
	"context"
	"fmt"
	"time"

	"lending/config"
	"lending/core"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// PriceService price oracle adapter over the persisted ticks and the
// external feed
type PriceService struct {
	Config     *config.Config
	PriceStore core.IPriceStore
}

// New new oracle price service
func New(cfg *config.Config, priceStore core.IPriceStore) core.IPriceOracleService {
	return &PriceService{
		Config:     cfg,
		PriceStore: priceStore,
	}
}

// GetQuote latest quote for the asset; quotes older than maxAge are rejected
func (s *PriceService) GetQuote(ctx context.Context, assetID string, maxAge time.Duration) (*core.Quote, error) {
	price, err := s.PriceStore.FindLatest(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if price.Price.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrStalePrice
	}

	if time.Since(price.UpdatedAt) > maxAge {
		return nil, core.ErrStalePrice
	}

	return &core.Quote{
		AssetID: assetID,
		Price:   price.Price,
		Time:    price.UpdatedAt,
	}, nil
}

// PullPriceTicker pull price ticker
func (s *PriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.Config.PriceOracle.EndPoint, assetID, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}

// PullAllPriceTickers pull all price tickers
func (s *PriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers?ts=%d", s.Config.PriceOracle.EndPoint, t.UTC().Unix())
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var tickers []*core.PriceTicker
	if err := resthttp.ParseResponse(resp, &tickers); err != nil {
		return nil, err
	}

	return tickers, nil
}
