package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RunJanitor purges expired sessions every interval until ctx is done.
func RunJanitor(ctx context.Context, store Store, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Purge(ctx)
			if err != nil {
				log.Error().Err(err).Msg("purge sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired sessions")
			}
		}
	}
}
