package store

import "stickermissions/internal/models"

// State is the authoritative in-memory copy of everything the app persists.
// It is owned by a Store and mutated only by the service layer.
type State struct {
	Missions        []models.Mission
	ActiveMissionID string
	Stickers        []models.StickerDay
	BonusBalance    int
	RewardConfig    models.RewardConfig
	Archives        []models.ArchiveEntry
	CurrentMonthID  string
	LastResetDate   string
	Presets         []models.MissionPreset
	Profile         models.ChildProfile
	MissionLogs     []models.MissionLog
	PINHash         string
}

// MissionIndex returns the slice index of the mission with id, or -1
func (s *State) MissionIndex(id string) int {
	for i := range s.Missions {
		if s.Missions[i].ID == id {
			return i
		}
	}
	return -1
}

// ActiveMission returns the active mission, if any
func (s *State) ActiveMission() (models.Mission, bool) {
	if s.ActiveMissionID == "" {
		return models.Mission{}, false
	}
	i := s.MissionIndex(s.ActiveMissionID)
	if i < 0 {
		return models.Mission{}, false
	}
	return s.Missions[i], true
}

// StickerFor returns the board entry for date, if any
func (s *State) StickerFor(date string) (models.StickerDay, bool) {
	for _, sticker := range s.Stickers {
		if sticker.Date == date {
			return sticker, true
		}
	}
	return models.StickerDay{}, false
}

// PresetIndex returns the slice index of the preset with id, or -1
func (s *State) PresetIndex(id string) int {
	for i := range s.Presets {
		if s.Presets[i].ID == id {
			return i
		}
	}
	return -1
}

func defaultRewardConfig() models.RewardConfig {
	return models.RewardConfig{Type: models.RewardText, Steps: []models.RewardStep{}}
}
