package feed

import (
	"context"
	"sync"
	"time"
)

// Poll runs fn right away and then once per interval until ctx ends or
// the returned stop function is called. stop waits for a running fn to
// return, so fn is never called after stop returns. Ticks that arrive
// while fn is still running are dropped.
func Poll(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				fn(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
