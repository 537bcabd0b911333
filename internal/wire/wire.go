// Package wire builds the gateway, its upstream and the stores from a
// loaded configuration.
package wire

import (
	"fmt"
	"io"
	"time"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/history"
	"github.com/inglify/inglify/internal/config"
	"github.com/inglify/inglify/provider"
	"github.com/inglify/inglify/store"
	"go.uber.org/zap"
)

// Key prefixes keep cached responses and history apart in a shared Redis.
const (
	CachePrefix   = "inglify:cache:"
	HistoryPrefix = store.DefaultKeyPrefix
)

// Components collects what the builders opened so callers can close it.
type Components struct {
	Logger  *zap.Logger
	closers []io.Closer
}

// New returns an empty set of components logging to logger.
func New(logger *zap.Logger) *Components {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Components{Logger: logger}
}

// Close releases every connection opened by the builders.
func (c *Components) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// Provider builds the configured upstream, rate limited when enabled.
func Provider(pc config.ProviderConfig, rl config.RateLimitConfig) inglify.ModelProvider {
	var p inglify.ModelProvider
	switch pc.Name {
	case "openai":
		p = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  pc.APIKey,
			Model:   pc.Model,
			BaseURL: pc.BaseURL,
		})
	case "mock":
		p = provider.NewMockProvider()
	default:
		p = provider.NewGeminiProvider(provider.GeminiConfig{
			APIKey:  pc.APIKey,
			Model:   pc.Model,
			BaseURL: pc.BaseURL,
			Timeout: pc.Timeout,
		})
	}

	if rl.Enabled() {
		p = inglify.NewRateLimitedProvider(p, inglify.RateLimitConfig{
			RequestsPerMinute: rl.RequestsPerMinute,
			BurstSize:         rl.Burst,
		})
	}
	return p
}

// Gateway builds the gateway with its optional response cache.
func (c *Components) Gateway(cfg *config.Config) (*inglify.Gateway, error) {
	opts := []inglify.GatewayOption{inglify.WithLogger(c.Logger)}

	switch cfg.Cache.Backend {
	case "memory":
		opts = append(opts, inglify.WithCache(store.NewInMemoryStore(cfg.Cache.TTL)))
	case "redis":
		rs, err := c.redis(cfg.Redis.URL, CachePrefix, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, inglify.WithCache(rs))
	}

	return inglify.NewGateway(Provider(cfg.Provider, cfg.RateLimit), opts...), nil
}

// History opens the configured history store.
func (c *Components) History(cfg *config.Config) (*history.Store, error) {
	var kv store.Store
	switch cfg.History.Backend {
	case "memory":
		kv = store.NewInMemoryStore(0)
	case "redis":
		rs, err := c.redis(cfg.Redis.URL, HistoryPrefix, 0)
		if err != nil {
			return nil, err
		}
		kv = rs
	default:
		fs, err := store.NewFileStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		kv = fs
	}
	return history.New(kv), nil
}

func (c *Components) redis(url, prefix string, ttl time.Duration) (*store.RedisStore, error) {
	rs, err := store.NewRedisStore(store.RedisConfig{
		URL:       url,
		TTL:       ttl,
		KeyPrefix: prefix,
		Logger:    c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.closers = append(c.closers, rs)
	return rs, nil
}
