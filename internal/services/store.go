package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/config"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for missing keys.
var ErrKeyNotFound = errors.New("key not found")

const (
	KeyCurrentAccount = "currentUser"
	KeyAccounts       = "casinoUsers"
)

// KeyValueStore is the local persistent store behind the account ledger.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func NewKeyValueStore(ctx context.Context, cfg *config.Config) (KeyValueStore, error) {
	switch cfg.StoreDriver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case "redis":
		return NewRedisStore(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
