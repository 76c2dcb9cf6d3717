package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound lo devuelven los stores cuando la key no existe.
var ErrNotFound = errors.New("kv: key not found")

// Entry es un par key/value devuelto por un scan de prefijo.
type Entry struct {
	Key   string
	Value []byte
}

// Store es la capacidad KV que consume el core: get/set/delete puntuales y scan por prefijo.
// Cada operación es atómica sobre una sola key; no hay transacciones multi-key.
// ScanPrefix devuelve las entradas en orden de inserción (la primera vez que se escribió la key).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}

// GetJSON lee key y decodifica el JSON en out.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("kv: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON serializa v y lo guarda en key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, b)
}
