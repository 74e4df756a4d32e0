package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerSkipsOverlappingRuns(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	job := &BaseJob{
		OnWork: func() error {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
			}
			<-release
			return nil
		},
	}

	done := make(chan struct{})
	go func() {
		job.Trigger()
		close(done)
	}()

	<-started
	job.Trigger() // firing while the first run is still going is dropped
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	close(release)
	<-done

	job.Trigger() // guard released once the run completes
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
