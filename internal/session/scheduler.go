package session

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically deletes expired session rows. Best-effort: the
// store already refuses expired records on load, so a missed sweep
// never affects correctness.
type Sweeper struct {
	store    *PostgresStore
	interval time.Duration
}

func NewSweeper(store *PostgresStore, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval}
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := s.store.DeleteExpired(ctx)
			if err != nil {
				log.Printf("Expired session sweep failed: %v", err)
				continue
			}
			if deleted > 0 {
				expiredDeleted.Add(float64(deleted))
				log.Printf("Swept %d expired sessions", deleted)
			}
		case <-ctx.Done():
			return
		}
	}
}
