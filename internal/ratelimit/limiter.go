// Package ratelimit bounds outbound request rates per fare provider.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// ProviderLimiter keeps one token bucket per provider name, created
// lazily from the defaults unless an explicit limit was set.
type ProviderLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

func NewProviderLimiter(cfg Config) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

func NewProviderLimiterWithDefaults() *ProviderLimiter {
	return NewProviderLimiter(DefaultConfig())
}

func (p *ProviderLimiter) SetLimit(provider string, rps float64, burst int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limiters[provider] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (p *ProviderLimiter) limiter(provider string) *rate.Limiter {
	p.mu.RLock()
	l, ok := p.limiters[provider]
	p.mu.RUnlock()
	if ok {
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok = p.limiters[provider]; ok {
		return l
	}
	l = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)
	p.limiters[provider] = l
	return l
}

// Wait blocks until the provider's bucket allows one request or the
// context is done.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	return p.limiter(provider).Wait(ctx)
}
