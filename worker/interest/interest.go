package interest

import (
	"context"
	"time"

	"lending/config"
	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "interest_checkpoint"

// Worker interest worker: periodically brings every bank's aggregate totals
// current so idle pools still compound
type Worker struct {
	worker.BaseJob
	LedgerService core.ILedgerService
	Property      property.Store
}

// New new interest worker
func New(cfg *config.Config, ledgerSrv core.ILedgerService, propertyStore property.Store) *Worker {
	job := Worker{
		LedgerService: ledgerSrv,
		Property:      propertyStore,
	}

	l, _ := time.LoadLocation(cfg.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	if _, err := job.Cron.AddFunc("@every 1m", job.Trigger); err != nil {
		panic(err)
	}
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	if err := w.LedgerService.AccrueAll(ctx); err != nil {
		log.WithError(err).Errorln("AccrueAll")
		return err
	}

	if err := w.Property.Save(ctx, checkpointKey, time.Now().Unix()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
