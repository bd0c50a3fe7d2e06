package cache

import (
	"context"
	"sync"

	"titanicdash/domain/passenger"
	"titanicdash/internal"
	"titanicdash/ports"

	"golang.org/x/sync/singleflight"
)

// KeyedProvider is a DatasetProvider whose result is determined by Key
type KeyedProvider interface {
	ports.DatasetProvider
	Key() string
}

// MemoProvider loads a dataset once per key and serves the stored
// instance afterwards. Failed loads are not stored.
type MemoProvider struct {
	inner  KeyedProvider
	group  singleflight.Group
	mu     sync.RWMutex
	loaded map[string]passenger.Dataset
	logger *internal.Logger
}

// NewMemoProvider wraps inner with process-wide memoization
func NewMemoProvider(inner KeyedProvider) *MemoProvider {
	return &MemoProvider{
		inner:  inner,
		loaded: make(map[string]passenger.Dataset),
		logger: internal.DefaultLogger.With("Cache"),
	}
}

// LoadDataset returns the memoized dataset, loading it on first use
func (m *MemoProvider) LoadDataset(ctx context.Context) (passenger.Dataset, error) {
	key := m.inner.Key()

	if ds, ok := m.lookup(key); ok {
		m.logger.Trace("hit %s", key)
		return ds, nil
	}

	v, err, shared := m.group.Do(key, func() (interface{}, error) {
		if ds, ok := m.lookup(key); ok {
			return ds, nil
		}
		m.logger.Debug("miss %s, loading", key)
		// Joined callers share this load, so one caller's cancellation must not end it.
		ds, err := m.inner.LoadDataset(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.loaded[key] = ds
		m.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return passenger.Dataset{}, err
	}
	if shared {
		m.logger.Debug("joined in-flight load of %s", key)
	}
	return v.(passenger.Dataset), nil
}

// Loaded reports whether a dataset is stored for the current key
func (m *MemoProvider) Loaded() bool {
	_, ok := m.lookup(m.inner.Key())
	return ok
}

// Clear drops every stored dataset so the next call refetches
func (m *MemoProvider) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = make(map[string]passenger.Dataset)
	m.logger.Info("cache cleared")
}

func (m *MemoProvider) lookup(key string) (passenger.Dataset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, ok := m.loaded[key]
	return ds, ok
}
