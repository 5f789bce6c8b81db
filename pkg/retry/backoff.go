package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Constant returns a schedule that always waits interval between
// attempts. The source supervisor restarts its subprocess on this
// schedule regardless of how long the previous child survived.
func Constant(interval time.Duration) backoff.BackOff {
	return backoff.NewConstantBackOff(interval)
}

// Sleep waits for d or until ctx is done, whichever comes first, and
// returns ctx.Err when interrupted.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
