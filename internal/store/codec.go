package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
	"stickermissions/internal/validation"
)

// SchemaVersion is written into every envelope. Values carrying any other
// version are rejected and replaced by the key's default.
const SchemaVersion = 1

var ErrSchemaMismatch = errors.New("stored value does not match schema")

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func encodeValue(data interface{}) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{Version: SchemaVersion, Data: raw})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeValue(value string, dst interface{}) error {
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if env.Version != SchemaVersion {
		return fmt.Errorf("%w: version %d", ErrSchemaMismatch, env.Version)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: missing data", ErrSchemaMismatch)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}

// encodeKey serializes the slice of state that key names
func encodeKey(state *State, key Key) (string, error) {
	switch key {
	case KeyMissions:
		return encodeValue(nonNil(state.Missions))
	case KeyStickers:
		return encodeValue(nonNil(state.Stickers))
	case KeyBonusBalance:
		return encodeValue(state.BonusBalance)
	case KeyArchives:
		return encodeValue(nonNil(state.Archives))
	case KeyCurrentMonthID:
		return encodeValue(state.CurrentMonthID)
	case KeyLastResetDate:
		return encodeValue(state.LastResetDate)
	case KeyPresets:
		return encodeValue(nonNil(state.Presets))
	case KeyRewardConfig:
		config := state.RewardConfig
		config.Steps = nonNil(config.Steps)
		return encodeValue(config)
	case KeyProfile:
		return encodeValue(state.Profile)
	case KeyMissionLogs:
		return encodeValue(nonNil(state.MissionLogs))
	case KeyPIN:
		return encodeValue(state.PINHash)
	}
	return "", fmt.Errorf("unknown key %q", key)
}

// decodeKey parses value into state, sanitizing entries that violate invariants
func decodeKey(state *State, key Key, value string) error {
	switch key {
	case KeyMissions:
		var missions []models.Mission
		if err := decodeValue(value, &missions); err != nil {
			return err
		}
		state.Missions, state.ActiveMissionID = sanitizeMissions(missions)
	case KeyStickers:
		var stickers []models.StickerDay
		if err := decodeValue(value, &stickers); err != nil {
			return err
		}
		state.Stickers = sanitizeStickers(stickers)
	case KeyBonusBalance:
		var balance int
		if err := decodeValue(value, &balance); err != nil {
			return err
		}
		if balance < 0 {
			return fmt.Errorf("%w: negative bonus balance", ErrSchemaMismatch)
		}
		state.BonusBalance = balance
	case KeyArchives:
		var archives []models.ArchiveEntry
		if err := decodeValue(value, &archives); err != nil {
			return err
		}
		state.Archives = sanitizeArchives(archives)
	case KeyCurrentMonthID:
		var monthID string
		if err := decodeValue(value, &monthID); err != nil {
			return err
		}
		if _, err := dateutil.ParseMonthID(monthID); err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		state.CurrentMonthID = monthID
	case KeyLastResetDate:
		var date string
		if err := decodeValue(value, &date); err != nil {
			return err
		}
		if date != "" && !dateutil.IsDateKey(date) {
			return fmt.Errorf("%w: invalid reset date %q", ErrSchemaMismatch, date)
		}
		state.LastResetDate = date
	case KeyPresets:
		var presets []models.MissionPreset
		if err := decodeValue(value, &presets); err != nil {
			return err
		}
		state.Presets = sanitizePresets(presets)
	case KeyRewardConfig:
		var config models.RewardConfig
		if err := decodeValue(value, &config); err != nil {
			return err
		}
		if err := validation.ValidateRewardConfig(config); err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		config.Steps = nonNil(config.Steps)
		state.RewardConfig = config
	case KeyProfile:
		var profile models.ChildProfile
		if err := decodeValue(value, &profile); err != nil {
			return err
		}
		state.Profile = profile
	case KeyMissionLogs:
		var logs []models.MissionLog
		if err := decodeValue(value, &logs); err != nil {
			return err
		}
		state.MissionLogs = sanitizeLogs(logs)
	case KeyPIN:
		var hash string
		if err := decodeValue(value, &hash); err != nil {
			return err
		}
		state.PINHash = hash
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// sanitizeMissions drops malformed missions and demotes every active mission
// after the first one back to pending.
func sanitizeMissions(missions []models.Mission) ([]models.Mission, string) {
	out := make([]models.Mission, 0, len(missions))
	seen := make(map[string]bool, len(missions))
	activeID := ""
	for _, m := range missions {
		if m.ID == "" || seen[m.ID] || m.DurationMinutes <= 0 || !m.Status.Valid() {
			continue
		}
		seen[m.ID] = true
		if m.Status == models.MissionActive {
			if activeID != "" {
				m.Status = models.MissionPending
			} else {
				activeID = m.ID
			}
		}
		out = append(out, m)
	}
	return out, activeID
}

func sanitizeStickers(stickers []models.StickerDay) []models.StickerDay {
	out := make([]models.StickerDay, 0, len(stickers))
	seen := make(map[string]bool, len(stickers))
	for _, s := range stickers {
		if !dateutil.IsDateKey(s.Date) || seen[s.Date] || s.Count < 0 {
			continue
		}
		if s.StickerType != "" && !s.StickerType.Valid() {
			s.StickerType = models.StickerStar
		}
		seen[s.Date] = true
		out = append(out, s)
	}
	return out
}

func sanitizeArchives(archives []models.ArchiveEntry) []models.ArchiveEntry {
	out := make([]models.ArchiveEntry, 0, len(archives))
	for _, a := range archives {
		if _, err := dateutil.ParseMonthID(a.MonthID); err != nil {
			continue
		}
		a.Stickers = sanitizeStickers(a.Stickers)
		out = append(out, a)
	}
	return out
}

func sanitizePresets(presets []models.MissionPreset) []models.MissionPreset {
	out := make([]models.MissionPreset, 0, len(presets))
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		templates := make([]models.MissionTemplate, 0, len(p.Missions))
		for _, tpl := range p.Missions {
			if validation.ValidateMission(tpl.Title, tpl.DurationMinutes) != nil {
				continue
			}
			templates = append(templates, tpl)
		}
		p.Missions = templates
		out = append(out, p)
	}
	return out
}

func sanitizeLogs(logs []models.MissionLog) []models.MissionLog {
	out := make([]models.MissionLog, 0, len(logs))
	for _, l := range logs {
		if !dateutil.IsDateKey(l.Date) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
