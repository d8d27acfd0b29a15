package store

import (
	"fmt"

	"github.com/bigfeelings/bigfeelings/internal/store/memory"
	"github.com/bigfeelings/bigfeelings/internal/store/redis"
)

// Backend names accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// BackendConfig selects and configures a Gateway implementation.
type BackendConfig struct {
	Backend string       `mapstructure:"backend"`
	Path    string       `mapstructure:"path"` // sqlite file path
	Redis   redis.Config `mapstructure:"redis"`
}

// OpenBackend opens the configured gateway. An empty Backend means SQLite.
func OpenBackend(cfg BackendConfig) (Gateway, error) {
	switch cfg.Backend {
	case "", BackendSQLite:
		path := cfg.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve db path: %w", err)
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		return Open(path)
	case BackendMemory:
		return memory.New(), nil
	case BackendRedis:
		return redis.New(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
