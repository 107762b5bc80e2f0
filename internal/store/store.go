// Package store holds the app's authoritative state and writes it to a
// key-value backend one logical key at a time.
package store

import (
	"errors"
	"fmt"
	"log"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
)

// KV is the synchronous key-value persistence the store writes through
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store owns a State and persists it through a KV backend
type Store struct {
	kv    KV
	state *State
	debug bool
}

// New creates a store holding default state. Call Load to read persisted values.
func New(kv KV, debug bool) *Store {
	return &Store{
		kv:    kv,
		state: defaultState(""),
		debug: debug,
	}
}

// State returns the live state. Callers that mutate it must Commit the touched keys.
func (s *Store) State() *State {
	return s.state
}

func defaultState(monthID string) *State {
	return &State{
		Missions:       []models.Mission{},
		Stickers:       []models.StickerDay{},
		RewardConfig:   defaultRewardConfig(),
		Archives:       []models.ArchiveEntry{},
		CurrentMonthID: monthID,
		Presets:        []models.MissionPreset{},
		MissionLogs:    []models.MissionLog{},
	}
}

// Load replaces the in-memory state with what the backend holds. Absent keys
// and values that fail validation fall back to defaults. Only backend read
// errors are returned.
func (s *Store) Load(clock dateutil.Clock) error {
	state := defaultState(dateutil.CurrentMonthID(clock))

	for _, key := range AllKeys {
		value, found, err := s.kv.Get(string(key))
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", key, err)
		}
		if !found {
			if s.debug {
				log.Printf("[DEBUG] store: %s absent, using default", key)
			}
			continue
		}
		if err := decodeKey(state, key, value); err != nil {
			if errors.Is(err, ErrSchemaMismatch) {
				log.Printf("Warning: discarding stored %s: %v", key, err)
				continue
			}
			return err
		}
	}

	s.state = state
	return nil
}

// Commit writes the named keys. Write failures are logged and otherwise
// ignored; in-memory state is never rolled back.
func (s *Store) Commit(keys ...Key) {
	for _, key := range keys {
		value, err := encodeKey(s.state, key)
		if err != nil {
			log.Printf("Error encoding %s: %v", key, err)
			continue
		}
		if err := s.kv.Set(string(key), value); err != nil {
			log.Printf("Error persisting %s: %v", key, err)
			continue
		}
		if s.debug {
			log.Printf("[DEBUG] store: committed %s (%d bytes)", key, len(value))
		}
	}
}

// CommitAll writes every key
func (s *Store) CommitAll() {
	s.Commit(AllKeys...)
}
