package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"stickermissions/internal/database"
)

// KVRepository stores serialized values under fixed logical keys
type KVRepository struct {
	db database.DBTX
}

// NewKVRepository creates a new key-value repository
func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves the value stored under key. found is false when the key was never set.
func (r *KVRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT kv_value FROM kv_store WHERE kv_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *KVRepository) Set(key, value string) error {
	if _, err := r.db.Exec(r.db.GetDialect().UpsertKV(), key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// All returns every stored key and value
func (r *KVRepository) All() (map[string]string, error) {
	rows, err := r.db.Query("SELECT kv_key, kv_value FROM kv_store ORDER BY kv_key")
	if err != nil {
		return nil, fmt.Errorf("failed to query kv store: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read kv rows: %w", err)
	}
	return values, nil
}

// DeleteAll removes every stored key
func (r *KVRepository) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM kv_store"); err != nil {
		return fmt.Errorf("failed to clear kv store: %w", err)
	}
	return nil
}
