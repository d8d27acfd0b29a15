package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries a Provider. Rate limits and outages back off and try
// again; a response that fails validation gets one more chance; truncation
// and a finished context end the call.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p so that Generate retries according to cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

type retryDecision int

const (
	giveUp retryDecision = iota
	retryTransient
	retryInvalid
)

// classify maps a Generate error to what the retry loop should do.
func classify(err error) retryDecision {
	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &maxTok):
		return giveUp
	case errors.As(err, &invalid):
		return retryInvalid
	default:
		// Rate limits, outages and plain network errors.
		return retryTransient
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	sawInvalid := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case giveUp:
			return nil, err
		case retryInvalid:
			if sawInvalid {
				return nil, err
			}
			sawInvalid = true
		}
		if attempt+1 == attempts {
			break
		}

		t := time.NewTimer(r.config.delay(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// delay is the wait before attempt+1. A rate limit with RetryAfter wins;
// otherwise the wait grows by Multiplier up to MaxWait with 20% jitter.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := min(float64(c.InitialWait)*math.Pow(c.Multiplier, float64(attempt)), float64(c.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(max(wait, 0))
}
