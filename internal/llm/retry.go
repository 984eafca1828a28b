package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

const jitterFraction = 0.2

// RetryProvider retries failed attempts of the wrapped provider. Invalid
// responses get a single extra attempt, truncation and cancellation none.
type RetryProvider struct {
	inner  Provider
	cfg    RetryConfig
	sleep  func(context.Context, time.Duration) error
	jitter func() float64 // uniform in [-1, 1)
}

// WithRetry wraps p with cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{
		inner:  p,
		cfg:    cfg,
		sleep:  sleepContext,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	spentOnce := false

	var err error
	for attempt := range attempts {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.delay(attempt-1, err)); serr != nil {
				return nil, serr
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch policyFor(err) {
		case noRetry:
			return nil, err
		case retryOnce:
			if spentOnce {
				return nil, err
			}
			spentOnce = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// delay is the wait after the n-th failed attempt (0-based). A rate limit
// with a Retry-After hint is honored as is.
func (r *RetryProvider) delay(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(n))
	base = min(base, float64(r.cfg.MaxWait))
	return time.Duration(max(base*(1+jitterFraction*r.jitter()), 0))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
