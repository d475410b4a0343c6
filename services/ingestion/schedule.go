package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Schedule re-runs the sync every interval until ctx is cancelled. A run
// never overlaps the previous one; failed runs are logged and the next
// one is attempted on schedule. Schedule only returns once no run is in
// flight.
func (ss *SyncService) Schedule(ctx context.Context, loader AlleleLoader, every time.Duration) error {
	if every <= 0 {
		return fmt.Errorf("invalid sync interval %s", every)
	}

	var (
		running sync.Mutex
		stopped bool
	)

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	_, err := s.Every(every).Do(func() {
		running.Lock()
		defer running.Unlock()
		if stopped {
			return
		}

		slog.Info("running scheduled sync", "every", every)
		if _, runErr := ss.Run(ctx, loader); runErr != nil {
			slog.Error("scheduled sync failed", "err", runErr)
		}
	})
	if err != nil {
		return err
	}

	s.StartAsync()
	<-ctx.Done()
	s.Stop()

	// wait for the run in flight, and keep late starters out
	running.Lock()
	stopped = true
	running.Unlock()

	return nil
}
