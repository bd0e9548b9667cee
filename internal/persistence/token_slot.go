package persistence

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/resistance-admin/internal/config"
)

// TokenSlot persists the raw session token under a single fixed key.
type TokenSlot interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Close() error
}

// MemoryTokenSlot keeps the token for the lifetime of the process only.
type MemoryTokenSlot struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenSlot returns an empty in-memory slot.
func NewMemoryTokenSlot() *MemoryTokenSlot {
	return &MemoryTokenSlot{}
}

func (m *MemoryTokenSlot) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenSlot) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenSlot) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *MemoryTokenSlot) Close() error { return nil }

// NewTokenSlot opens the slot selected by cfg.Session.Storage under key.
func NewTokenSlot(cfg config.Config, key string, logger *zap.Logger) (TokenSlot, error) {
	switch cfg.Session.Storage {
	case config.StorageMemory:
		return NewMemoryTokenSlot(), nil
	case config.StorageBolt:
		slot, err := OpenBoltTokenSlot(cfg.Session.BoltPath, key)
		if err != nil {
			return nil, err
		}
		logger.Debug("session token slot", zap.String("driver", "bolt"), zap.String("path", cfg.Session.BoltPath))
		return slot, nil
	case config.StorageRedis:
		redis := NewRedis(cfg.Redis, logger)
		logger.Debug("session token slot", zap.String("driver", "redis"), zap.String("addr", cfg.Redis.Addr))
		return NewRedisTokenSlot(redis, cfg.Session.RedisKeyPrefix+key), nil
	default:
		return nil, fmt.Errorf("unknown session storage %q", cfg.Session.Storage)
	}
}
