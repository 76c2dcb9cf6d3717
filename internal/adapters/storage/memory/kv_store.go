package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-marketplace/internal/ports/kv"
)

type kvItem struct {
	seq   uint64
	value []byte
}

// KVStore es el store in-memory (modo dev / tests).
// Guarda copias de los bytes para que nadie mute el estado por fuera.
type KVStore struct {
	mu    sync.RWMutex
	byKey map[string]kvItem
	seq   uint64
}

func NewKVStore() *KVStore {
	return &KVStore{
		byKey: make(map[string]kvItem),
	}
}

var _ kv.Store = (*KVStore)(nil)

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.byKey[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return clone(it.value), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Sobrescribir conserva la posición original (orden de inserción).
	it, exists := s.byKey[key]
	if !exists {
		s.seq++
		it.seq = s.seq
	}
	it.value = clone(value)
	s.byKey[key] = it
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, key)
	return nil
}

func (s *KVStore) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type ordered struct {
		seq   uint64
		entry kv.Entry
	}
	items := make([]ordered, 0)
	for k, it := range s.byKey {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		items = append(items, ordered{seq: it.seq, entry: kv.Entry{Key: k, Value: clone(it.value)}})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].seq < items[j].seq
	})

	out := make([]kv.Entry, 0, len(items))
	for _, it := range items {
		out = append(out, it.entry)
	}
	return out, nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
