package worker

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Worker long running daemon
type Worker interface {
	Run(ctx context.Context) error
}

// OnWork job body
type OnWork func() error

// BaseJob cron driven job; Trigger fires OnWork and drops overlapping runs
type BaseJob struct {
	Cron   *cron.Cron
	OnWork OnWork

	running int32
}

// Run starts the cron schedule and blocks until ctx is done
func (job *BaseJob) Run(ctx context.Context) error {
	job.Cron.Start()
	<-ctx.Done()
	job.Cron.Stop()
	return ctx.Err()
}

// Trigger one schedule firing; cron runs each firing on its own goroutine,
// so the guard must be atomic
func (job *BaseJob) Trigger() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	_ = job.OnWork()
}
