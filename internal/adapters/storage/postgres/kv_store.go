package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"pet-marketplace/internal/ports/kv"
)

// KVStore implementa kv.Store sobre una tabla (key TEXT PK, value JSONB).
// seq (BIGSERIAL) conserva el orden de inserción para los scans.
type KVStore struct {
	db *sqlx.DB
}

func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: sqlx.NewDb(db, "pgx")}
}

var _ kv.Store = (*KVStore)(nil)

type kvRow struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv key required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, key, string(value))
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}

func (s *KVStore) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	rows := make([]kvRow, 0)
	err := s.db.SelectContext(ctx, &rows, `
		SELECT key, value
		FROM kv_store
		WHERE key LIKE $1 ESCAPE '\'
		ORDER BY seq ASC
	`, likePrefix(prefix))
	if err != nil {
		return nil, err
	}

	out := make([]kv.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, kv.Entry{Key: r.Key, Value: r.Value})
	}
	return out, nil
}

// likePrefix escapa los comodines de LIKE para que el prefijo sea literal.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
