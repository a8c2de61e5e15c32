package store

import (
	"context"
	"log"
	"time"
)

// RunExpirySweeper periodically deletes expired sessions until the context
// is cancelled.
func (st *Store) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if count := st.SweepExpired(sweepCtx); count > 0 {
				log.Printf("INFO: expiry sweep removed %d sessions", count)
			}
			cancel()
		}
	}
}
