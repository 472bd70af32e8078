package sync

import (
	"context"
	"sync"
	"time"

	"github.com/crohrer/booksync/internal/logger"
)

// Job runs a sync pass on a fixed interval until stopped.
type Job struct {
	interval time.Duration
	pass     func(ctx context.Context)
	log      *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewJob(interval time.Duration, pass func(ctx context.Context), log *logger.Logger) *Job {
	return &Job{interval: interval, pass: pass, log: log}
}

// Start launches the periodic loop. The first pass happens after one full
// interval; callers wanting an immediate pass trigger it themselves.
func (j *Job) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				j.log.Debug().Str("func", "Start").Msg("periodic sync job stopped")
				return
			case <-ticker.C:
				j.pass(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for a running pass to finish.
func (j *Job) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	j.wg.Wait()
}
