package service

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
	"stickermissions/internal/store"
	"stickermissions/internal/validation"
)

var ErrMissionNotFound = errors.New("mission not found")

// MissionService owns mission CRUD and the pending/active/completed transitions.
// Transitions that would break the single-active invariant are rejected as
// no-ops and reported by a false return.
type MissionService struct {
	store *store.Store
	clock dateutil.Clock
}

// NewMissionService creates a new mission service
func NewMissionService(st *store.Store, clock dateutil.Clock) *MissionService {
	return &MissionService{store: st, clock: clock}
}

// List returns a copy of every mission in display order
func (s *MissionService) List() []models.Mission {
	missions := s.store.State().Missions
	out := make([]models.Mission, len(missions))
	copy(out, missions)
	return out
}

// Get returns the mission with id
func (s *MissionService) Get(id string) (models.Mission, error) {
	st := s.store.State()
	i := st.MissionIndex(id)
	if i < 0 {
		return models.Mission{}, ErrMissionNotFound
	}
	return st.Missions[i], nil
}

// Active returns the currently active mission, if any
func (s *MissionService) Active() (models.Mission, bool) {
	return s.store.State().ActiveMission()
}

// Add appends a new pending mission
func (s *MissionService) Add(title string, durationMinutes int, reward string) (models.Mission, error) {
	if err := validation.ValidateMission(title, durationMinutes); err != nil {
		return models.Mission{}, err
	}

	mission := newMission(models.MissionTemplate{
		Title:           strings.TrimSpace(title),
		DurationMinutes: durationMinutes,
		Reward:          strings.TrimSpace(reward),
	}, s.clock)

	st := s.store.State()
	st.Missions = append(st.Missions, mission)
	s.store.Commit(store.KeyMissions)
	return mission, nil
}

// Delete removes a mission, clearing the active pointer if it pointed at it
func (s *MissionService) Delete(id string) bool {
	st := s.store.State()
	i := st.MissionIndex(id)
	if i < 0 {
		return false
	}

	st.Missions = append(st.Missions[:i], st.Missions[i+1:]...)
	if st.ActiveMissionID == id {
		st.ActiveMissionID = ""
	}
	s.store.Commit(store.KeyMissions)
	return true
}

// Start activates a pending mission when no other mission is active
func (s *MissionService) Start(id string) bool {
	if !startMission(s.store.State(), id) {
		return false
	}
	s.store.Commit(store.KeyMissions)
	return true
}

// Cancel returns the active mission to pending
func (s *MissionService) Cancel(id string) bool {
	if !cancelMission(s.store.State(), id) {
		return false
	}
	s.store.Commit(store.KeyMissions)
	return true
}

// Complete finishes the active mission and logs the completion for today
func (s *MissionService) Complete(id string) bool {
	return s.complete(id, false)
}

// CompleteBypass finishes a mission in any non-completed state. It backs the
// PIN-gated time-warp.
func (s *MissionService) CompleteBypass(id string) bool {
	return s.complete(id, true)
}

func (s *MissionService) complete(id string, bypass bool) bool {
	if !completeMission(s.store.State(), id, s.clock, bypass) {
		return false
	}
	s.store.Commit(store.KeyMissions, store.KeyMissionLogs)
	return true
}

// DailyReset makes every mission pending again the first time it runs on a
// new calendar day. It reports whether a reset happened.
func (s *MissionService) DailyReset() bool {
	today := dateutil.Today(s.clock)
	if !resetMissions(s.store.State(), today) {
		return false
	}
	log.Printf("Daily reset applied for %s", today)
	s.store.Commit(store.KeyMissions, store.KeyLastResetDate)
	return true
}

func newMission(tpl models.MissionTemplate, clock dateutil.Clock) models.Mission {
	return models.Mission{
		ID:              uuid.New().String(),
		Title:           tpl.Title,
		DurationMinutes: tpl.DurationMinutes,
		Reward:          tpl.Reward,
		Status:          models.MissionPending,
		CreatedAt:       clock.Now(),
	}
}

func startMission(st *store.State, id string) bool {
	if st.ActiveMissionID != "" {
		return false
	}
	i := st.MissionIndex(id)
	if i < 0 || st.Missions[i].Status != models.MissionPending {
		return false
	}
	st.Missions[i].Status = models.MissionActive
	st.ActiveMissionID = id
	return true
}

func cancelMission(st *store.State, id string) bool {
	i := st.MissionIndex(id)
	if i < 0 || st.Missions[i].Status != models.MissionActive {
		return false
	}
	st.Missions[i].Status = models.MissionPending
	if st.ActiveMissionID == id {
		st.ActiveMissionID = ""
	}
	return true
}

func completeMission(st *store.State, id string, clock dateutil.Clock, bypass bool) bool {
	i := st.MissionIndex(id)
	if i < 0 {
		return false
	}

	status := st.Missions[i].Status
	if status == models.MissionCompleted || (!bypass && status != models.MissionActive) {
		return false
	}

	now := clock.Now()
	st.Missions[i].Status = models.MissionCompleted
	st.Missions[i].CompletedAt = &now
	st.MissionLogs = append(st.MissionLogs, models.MissionLog{
		Date:  dateutil.DateKey(now),
		Title: st.Missions[i].Title,
	})
	if st.ActiveMissionID == id {
		st.ActiveMissionID = ""
	}
	return true
}

func resetMissions(st *store.State, today string) bool {
	if st.LastResetDate == today {
		return false
	}
	for i := range st.Missions {
		st.Missions[i].Status = models.MissionPending
		st.Missions[i].CompletedAt = nil
	}
	st.ActiveMissionID = ""
	st.LastResetDate = today
	return true
}
