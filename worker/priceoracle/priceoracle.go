package priceoracle

import (
	"context"
	"time"

	"lending/config"
	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Worker price oracle worker: pulls fresh tickers for every bank asset and
// persists the latest tick
type Worker struct {
	worker.BaseJob
	DB                 *db.DB
	BankStore          core.IBankStore
	PriceStore         core.IPriceStore
	PriceOracleService core.IPriceOracleService
}

// New new price oracle worker
func New(cfg *config.Config, db *db.DB, bankStore core.IBankStore, priceStore core.IPriceStore, priceSrv core.IPriceOracleService) *Worker {
	job := Worker{
		DB:                 db,
		BankStore:          bankStore,
		PriceStore:         priceStore,
		PriceOracleService: priceSrv,
	}

	l, _ := time.LoadLocation(cfg.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	if _, err := job.Cron.AddFunc("@every 10s", job.Trigger); err != nil {
		panic(err)
	}
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	banks, err := w.BankStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("banks.All")
		return err
	}

	if len(banks) == 0 {
		return nil
	}

	for _, bank := range banks {
		ticker, err := w.PriceOracleService.PullPriceTicker(ctx, bank.AssetID, time.Now())
		if err != nil {
			log.WithError(err).Errorln("pull price ticker", bank.Symbol)
			continue
		}

		if ticker.Price.LessThanOrEqual(decimal.Zero) {
			log.Errorln("invalid ticker price:", bank.Symbol, ":", ticker.Price)
			continue
		}

		price := &core.Price{
			AssetID:   bank.AssetID,
			Price:     ticker.Price,
			UpdatedAt: time.Now(),
		}

		if err := w.DB.Tx(func(tx *db.DB) error {
			return w.PriceStore.Save(ctx, tx, price)
		}); err != nil {
			log.WithError(err).Errorln("prices.Save", bank.Symbol)
		}
	}

	return nil
}
