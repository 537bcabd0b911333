package inglify

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// RateLimitConfig configures a RateLimiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Sustained rate (default: 60)
	BurstSize         int // Bucket capacity (default: RequestsPerMinute)
}

// RateLimiter is a token bucket refilled continuously at
// RequestsPerMinute/60 tokens per second, holding at most BurstSize tokens.
// It guards both outbound model calls and inbound gateway requests.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	tokens   float64
	last     time.Time

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// LimiterOption configures a RateLimiter.
type LimiterOption func(*RateLimiter)

// WithLimiterClock replaces the time source and the timer used by Wait.
func WithLimiterClock(now func() time.Time, after func(time.Duration) <-chan time.Time) LimiterOption {
	return func(l *RateLimiter) {
		if now != nil {
			l.now = now
		}
		if after != nil {
			l.after = after
		}
	}
}

// NewRateLimiter creates a limiter with a full bucket.
func NewRateLimiter(cfg RateLimitConfig, opts ...LimiterOption) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60
	}
	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm
	}

	l := &RateLimiter{
		capacity: burst,
		perSec:   rpm / 60,
		tokens:   burst,
		now:      time.Now,
		after:    time.After,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.last = l.now()
	return l
}

// Reserve takes a token if one is available. Otherwise it takes nothing
// and reports how long until the next token accrues.
func (l *RateLimiter) Reserve() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance()
	if l.tokens >= 1 {
		l.tokens--
		return true, 0
	}

	wait := time.Duration(math.Ceil((1 - l.tokens) / l.perSec * float64(time.Second)))
	if wait <= 0 {
		wait = time.Nanosecond
	}
	return false, wait
}

// Allow takes a token without blocking.
func (l *RateLimiter) Allow() bool {
	ok, _ := l.Reserve()
	return ok
}

// Wait blocks until a token is taken or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		ok, wait := l.Reserve()
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.after(wait):
		}
	}
}

// Tokens returns the tokens currently in the bucket.
func (l *RateLimiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.advance()
	return l.tokens
}

// advance must be called with the lock held.
func (l *RateLimiter) advance() {
	now := l.now()
	if elapsed := now.Sub(l.last); elapsed > 0 {
		l.tokens = math.Min(l.capacity, l.tokens+elapsed.Seconds()*l.perSec)
	}
	l.last = now
}

// RateLimitedProvider spaces out model calls through a RateLimiter.
type RateLimitedProvider struct {
	provider ModelProvider
	limiter  *RateLimiter
}

var _ ModelProvider = (*RateLimitedProvider)(nil)

// NewRateLimitedProvider wraps provider with a limiter built from cfg.
func NewRateLimitedProvider(provider ModelProvider, cfg RateLimitConfig, opts ...LimiterOption) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  NewRateLimiter(cfg, opts...),
	}
}

// Generate waits for a token, then calls the wrapped provider. A wait cut
// short by ctx fails the request as an UpstreamError and is not retried.
func (p *RateLimitedProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", &UpstreamError{
			Message: MsgUpstreamFailed,
			Cause:   fmt.Errorf("waiting for model quota: %w", err),
		}
	}
	return p.provider.Generate(ctx, req)
}

// Model reports the wrapped provider's model, if it has one.
func (p *RateLimitedProvider) Model() string {
	if m, ok := p.provider.(modelNamer); ok {
		return m.Model()
	}
	return ""
}

// Limiter returns the limiter guarding the provider.
func (p *RateLimitedProvider) Limiter() *RateLimiter {
	return p.limiter
}
