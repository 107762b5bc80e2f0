package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("UpsertKV placeholders", func(t *testing.T) {
		result := dialect.RewriteQuery(dialect.UpsertKV())
		if !strings.Contains(result, "($1, $2,") {
			t.Errorf("RewriteQuery(UpsertKV()) = %v, want numbered placeholders", result)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("UpsertKV uses duplicate key update", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertKV(), "ON DUPLICATE KEY UPDATE") {
			t.Errorf("UpsertKV() = %v, want ON DUPLICATE KEY UPDATE", dialect.UpsertKV())
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT kv_value FROM kv_store WHERE kv_key = ?",
			expected: "SELECT kv_value FROM kv_store WHERE kv_key = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT kv_value FROM kv_store WHERE kv_key = ?",
			expected: "SELECT kv_value FROM kv_store WHERE kv_key = $1",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM kv_store WHERE kv_key = ?",
			expected: "DELETE FROM kv_store WHERE kv_key = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
