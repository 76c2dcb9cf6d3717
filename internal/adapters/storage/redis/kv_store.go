// Package redis implementa kv.Store sobre Redis.
// Además de las keys de datos mantiene un sorted set con el orden de inserción,
// que es lo que usa ScanPrefix (Redis SCAN no garantiza orden).
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/go-redis/redis/v8"

	"pet-marketplace/internal/ports/kv"
)

const mgetChunk = 200

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string // namespace físico, p.ej. "petmarket:"
}

type KVStore struct {
	rdb    goredis.UniversalClient
	prefix string
}

// Open crea el cliente y verifica conectividad.
func Open(ctx context.Context, cfg Config) (*KVStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewKVStore(rdb, cfg.KeyPrefix), nil
}

func NewKVStore(rdb goredis.UniversalClient, keyPrefix string) *KVStore {
	return &KVStore{rdb: rdb, prefix: keyPrefix}
}

var _ kv.Store = (*KVStore)(nil)

func (s *KVStore) Close() error { return s.rdb.Close() }

func (s *KVStore) dataKey(key string) string { return s.prefix + key }
func (s *KVStore) orderKey() string         { return s.prefix + "__order" }
func (s *KVStore) seqKey() string           { return s.prefix + "__seq" }

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.dataKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv key required")
	}

	seq, err := s.rdb.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return err
	}

	// ZADD NX: si la key ya estaba indexada, conserva su posición original.
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.dataKey(key), value, 0)
	pipe.ZAddNX(ctx, s.orderKey(), &goredis.Z{Score: float64(seq), Member: key})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.dataKey(key))
	pipe.ZRem(ctx, s.orderKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *KVStore) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	members, err := s.rdb.ZRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0)
	for _, m := range members {
		if strings.HasPrefix(m, prefix) {
			keys = append(keys, m)
		}
	}

	out := make([]kv.Entry, 0, len(keys))
	for start := 0; start < len(keys); start += mgetChunk {
		end := start + mgetChunk
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		physical := make([]string, 0, len(batch))
		for _, k := range batch {
			physical = append(physical, s.dataKey(k))
		}

		vals, err := s.rdb.MGet(ctx, physical...).Result()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			// nil: borrada entre el ZRANGE y el MGET
			str, ok := v.(string)
			if !ok {
				continue
			}
			out = append(out, kv.Entry{Key: batch[i], Value: []byte(str)})
		}
	}
	return out, nil
}
