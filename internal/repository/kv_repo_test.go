package repository

import (
	"path/filepath"
	"testing"

	"stickermissions/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return db
}

func TestKVRepositoryGetSet(t *testing.T) {
	repo := NewKVRepository(newTestDB(t))

	if _, found, err := repo.Get("missions"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v; want not found", found, err)
	}

	if err := repo.Set("missions", `{"version":1}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set("missions", `{"version":1,"data":[]}`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	value, found, err := repo.Get("missions")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v; want found", found, err)
	}
	if value != `{"version":1,"data":[]}` {
		t.Errorf("Get() = %v, want the overwritten value", value)
	}
}

func TestKVRepositoryAllAndDeleteAll(t *testing.T) {
	repo := NewKVRepository(newTestDB(t))

	for key, value := range map[string]string{"pin": "a", "profile": "b"} {
		if err := repo.Set(key, value); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 || all["pin"] != "a" || all["profile"] != "b" {
		t.Errorf("All() = %v, want pin=a profile=b", all)
	}

	if err := repo.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	all, err = repo.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("All() after DeleteAll = %v, want empty", all)
	}
}
