package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
	"stickermissions/internal/store"
	"stickermissions/internal/validation"
)

var ErrPresetNotFound = errors.New("preset not found")

// PresetService saves and restores named sets of mission templates
type PresetService struct {
	store *store.Store
	clock dateutil.Clock
}

// NewPresetService creates a new preset service
func NewPresetService(st *store.Store, clock dateutil.Clock) *PresetService {
	return &PresetService{store: st, clock: clock}
}

// List returns every saved preset
func (s *PresetService) List() []models.MissionPreset {
	presets := s.store.State().Presets
	out := make([]models.MissionPreset, len(presets))
	copy(out, presets)
	return out
}

// Save snapshots the current missions, minus identity and status, under name
func (s *PresetService) Save(name string) (models.MissionPreset, error) {
	if err := validation.ValidatePresetName(name); err != nil {
		return models.MissionPreset{}, err
	}

	st := s.store.State()
	templates := make([]models.MissionTemplate, 0, len(st.Missions))
	for _, m := range st.Missions {
		templates = append(templates, models.MissionTemplate{
			Title:           m.Title,
			DurationMinutes: m.DurationMinutes,
			Reward:          m.Reward,
		})
	}

	preset := models.MissionPreset{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(name),
		Missions: templates,
	}
	st.Presets = append(st.Presets, preset)
	s.store.Commit(store.KeyPresets)
	return preset, nil
}

// Load replaces the whole mission list with fresh pending missions built from
// the preset's templates. Existing missions, including an active one, are discarded.
func (s *PresetService) Load(id string) error {
	st := s.store.State()
	i := st.PresetIndex(id)
	if i < 0 {
		return ErrPresetNotFound
	}

	missions := make([]models.Mission, 0, len(st.Presets[i].Missions))
	for _, tpl := range st.Presets[i].Missions {
		missions = append(missions, newMission(tpl, s.clock))
	}
	st.Missions = missions
	st.ActiveMissionID = ""
	s.store.Commit(store.KeyMissions)
	return nil
}

// Delete removes a preset
func (s *PresetService) Delete(id string) bool {
	st := s.store.State()
	i := st.PresetIndex(id)
	if i < 0 {
		return false
	}
	st.Presets = append(st.Presets[:i], st.Presets[i+1:]...)
	s.store.Commit(store.KeyPresets)
	return true
}
