package clock

import (
	"context"
	"time"
)

// Delay blocks for d or until ctx is cancelled, whichever comes first.
func Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
