package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"stickermissions/internal/database"
	"stickermissions/internal/repository"
	"stickermissions/internal/store"
)

const backupFormatVersion = "1.0"

// BackupData is the complete export of the key-value store. Entries keep each
// stored value as raw JSON so the file stays readable.
type BackupData struct {
	Version      string                     `json:"version"`
	ExportedAt   time.Time                  `json:"exported_at"`
	DatabaseType string                     `json:"database_type"`
	Entries      map[string]json.RawMessage `json:"entries"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes every stored key to outputPath
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes every stored key to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	values, err := repository.NewKVRepository(s.db).All()
	if err != nil {
		return fmt.Errorf("failed to export kv store: %w", err)
	}

	backup := &BackupData{
		Version:      backupFormatVersion,
		ExportedAt:   time.Now(),
		DatabaseType: s.db.Dialect.DriverName(),
		Entries:      make(map[string]json.RawMessage, len(values)),
	}
	for key, value := range values {
		if !json.Valid([]byte(value)) {
			log.Printf("Warning: skipping %s, stored value is not JSON", key)
			continue
		}
		backup.Entries[key] = json.RawMessage(value)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	log.Printf("Exported %d keys", len(backup.Entries))
	return nil
}

// Import restores a backup file
func (s *BackupService) Import(inputPath string, clearExisting bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, clearExisting)
}

// ImportFromReader restores a backup. Unknown keys are rejected before any
// write; all writes happen in one transaction.
func (s *BackupService) ImportFromReader(reader io.Reader, clearExisting bool) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupFormatVersion {
		return fmt.Errorf("unsupported backup version: %q", backup.Version)
	}

	keys := make([]string, 0, len(backup.Entries))
	for key := range backup.Entries {
		if !store.IsKnownKey(key) {
			return fmt.Errorf("unknown key in backup: %s", key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := repository.NewKVRepository(tx)
	if clearExisting {
		if err := repo.DeleteAll(); err != nil {
			return err
		}
	}
	for _, key := range keys {
		if err := repo.Set(key, string(backup.Entries[key])); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Imported %d keys (exported %s)", len(keys), backup.ExportedAt.Format(time.RFC3339))
	return nil
}
