// Package cache provides the key-value stores that sit in front of the search
// backend, and the codecs used to serialize values into them.
package cache

import (
	"fmt"
	"time"

	"github.com/weiawesome/catalog-service/internal/config"
)

// New builds the cache backend selected by cfg.Backend.
func New(cfg config.CacheConfig, redisCfg config.RedisConfig) (Cache, error) {
	switch cfg.Backend {
	case "", "redis":
		return NewRedisCache(redisCfg)
	case "memory":
		return NewMemoryCache(time.Minute), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
