package hugface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/metrics"
	"github.com/virallens/emotionarc/internal/platform/retry"
)

// warmProbe is the text sent to force the hosted model to load.
const warmProbe = "warm up"

// loadTimeout bounds the whole load, retries included.
const loadTimeout = 90 * time.Second

// Lifecycle makes model loading an explicit process-scoped resource: the
// first caller starts the load behind a one-time barrier, and a failed load
// marks the process degraded (fallback-only) for its remaining lifetime.
// The load runs detached from whoever triggered it; a caller whose context
// expires while the load is still in flight fails only that call.
type Lifecycle struct {
	client *Client
	once   sync.Once
	done   chan struct{}

	mu      sync.RWMutex
	ready   bool
	loadErr error
}

func newLifecycle(c *Client) *Lifecycle {
	return &Lifecycle{client: c, done: make(chan struct{})}
}

// Warm triggers the one-time load and waits for it, bounded by ctx. Safe for
// concurrent use; every caller that sees the load finish gets the same outcome.
func (l *Lifecycle) Warm(ctx context.Context) error {
	l.once.Do(func() {
		// The load must not inherit the triggering caller's deadline.
		go l.runLoad(context.WithoutCancel(ctx))
	})

	select {
	case <-l.done:
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, ctx.Err())
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.ready {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, l.loadErr)
	}
	return nil
}

// Ready reports the warm state without triggering a load.
func (l *Lifecycle) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

func (l *Lifecycle) runLoad(ctx context.Context) {
	defer close(l.done)

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	err := l.load(ctx)
	l.mu.Lock()
	l.ready = err == nil
	l.loadErr = err
	l.mu.Unlock()

	if err != nil {
		slog.Error("Model warm-up failed, running fallback-only", "model", l.client.modelID, "error", err)
		metrics.ModelWarm.Set(0)
		return
	}
	slog.Info("Model warmed up", "model", l.client.modelID)
	metrics.ModelWarm.Set(1)
}

// load probes the model with retries. Hosted models answer 503 while loading,
// so transient statuses back off and retry; client errors abort immediately.
func (l *Lifecycle) load(ctx context.Context) error {
	policy := retry.Policy{
		MaxAttempts:      4,
		InitialBackoff:   500 * time.Millisecond,
		MaxBackoff:       5 * time.Second,
		RateLimitBackoff: 2 * time.Second,
		Jitter:           0.2,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Info("Model warm-up retry", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}

	classify := func(err error) retry.Action {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			switch {
			case statusErr.Code == 429:
				return retry.After
			case statusErr.Code >= 500:
				return retry.Retry
			default:
				return retry.Stop
			}
		}
		return retry.Retry
	}

	return retry.DoVoid(ctx, policy, classify, func() error {
		// Bypass Scores: the barrier is still closed and singleflight keys
		// would collide with real traffic.
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		_, err := l.client.infer(probeCtx, warmProbe)
		return err
	})
}
