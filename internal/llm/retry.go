package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrying wraps a Provider with exponential backoff.
type retrying struct {
	Provider
	policy RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry retries rate limits and unavailability up to
// policy.MaxAttempts. Invalid output gets one extra try; truncation and
// context errors are returned immediately.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &retrying{Provider: p, policy: policy, sleep: sleepCtx}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		invalidSeen bool
	)
	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		kind, _ := KindOf(err)
		switch kind {
		case KindTruncated:
			return nil, err
		case KindInvalidOutput:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}

		if attempt == r.policy.MaxAttempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

// wait is the backoff before the next attempt, with ±20% jitter. A
// provider-supplied RetryAfter wins.
func (r *retrying) wait(attempt int, err error) time.Duration {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.RetryAfter > 0 {
		return pe.RetryAfter
	}

	d := float64(r.policy.InitialWait) * math.Pow(r.policy.Multiplier, float64(attempt))
	d = math.Min(d, float64(r.policy.MaxWait))
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
