package app

import (
	"context"
	"time"

	"stickermissions/internal/countdown"
	"stickermissions/internal/models"
	"stickermissions/internal/summary"
)

// AddMission creates a pending mission. Parent only.
func (a *App) AddMission(title string, durationMinutes int, reward string) (models.Mission, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return models.Mission{}, err
	}
	return a.missions.Add(title, durationMinutes, reward)
}

// DeleteMission removes a mission. Parent only.
func (a *App) DeleteMission(id string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return false, err
	}
	if a.timerMissionID == id {
		a.stopTimer()
	}
	return a.missions.Delete(id), nil
}

// StartMission activates a pending mission and returns its countdown, ready to
// Run. A mission left active by an earlier session gets a fresh countdown.
func (a *App) StartMission(id string) (*countdown.Timer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		return nil, ErrTimerRunning
	}
	if active, ok := a.missions.Active(); !ok || active.ID != id {
		if !a.missions.Start(id) {
			return nil, ErrCannotStart
		}
	}
	return a.newTimerLocked(id)
}

// ResumeMission returns a countdown for the mission that is already active
func (a *App) ResumeMission() (*countdown.Timer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		return nil, ErrTimerRunning
	}
	active, ok := a.missions.Active()
	if !ok {
		return nil, ErrNoActive
	}
	return a.newTimerLocked(active.ID)
}

func (a *App) newTimerLocked(id string) (*countdown.Timer, error) {
	mission, err := a.missions.Get(id)
	if err != nil {
		return nil, err
	}
	a.timer = countdown.ForMinutes(mission.DurationMinutes)
	a.timerMissionID = id
	return a.timer, nil
}

// RunCountdown drives timer until it ends. Reaching zero completes the mission.
func (a *App) RunCountdown(ctx context.Context, timer *countdown.Timer, interval time.Duration, onTick func(time.Duration)) error {
	a.mu.Lock()
	if timer == nil || timer != a.timer {
		a.mu.Unlock()
		return ErrNoActive
	}
	id := a.timerMissionID
	a.mu.Unlock()

	return timer.Run(ctx, interval, onTick, func() {
		a.CompleteMission(id)
	})
}

// PauseCountdown pauses the running countdown
func (a *App) PauseCountdown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil && a.timer.Pause()
}

// ResumeCountdown resumes a paused countdown
func (a *App) ResumeCountdown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil && a.timer.Resume()
}

// CancelMission returns the active mission to pending and stops its countdown
func (a *App) CancelMission(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.missions.Cancel(id) {
		return false
	}
	if a.timerMissionID == id {
		a.stopTimer()
	}
	return true
}

// CompleteMission finishes the active mission
func (a *App) CompleteMission(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.completeLocked(id, false)
}

func (a *App) completeLocked(id string, bypass bool) bool {
	var ok bool
	if bypass {
		ok = a.missions.CompleteBypass(id)
	} else {
		ok = a.missions.Complete(id)
	}
	if !ok {
		return false
	}
	if a.timerMissionID == id {
		a.stopTimer()
	}

	mission, _ := a.missions.Get(id)
	a.encourage(summary.MissionPraise(mission.Title, len(a.store.State().MissionLogs)))
	return true
}

func (a *App) stopTimer() {
	if a.timer != nil {
		a.timer.Cancel()
	}
	a.timer = nil
	a.timerMissionID = ""
}

// AwardSticker places today's sticker when every mission is done
func (a *App) AwardSticker(stickerType models.StickerType) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.stickers.Award(stickerType) {
		return false
	}
	a.encourage(summary.StickerPraise(a.profiles.Profile().Name, a.stickers.Total()))
	return true
}

// UseBonus spends a bonus sticker on the earliest empty day
func (a *App) UseBonus() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stickers.UseBonus()
}

// GrantBonus adds bonus stickers. Parent only.
func (a *App) GrantBonus(count int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return err
	}
	return a.stickers.GrantBonus(count)
}

// Rollover archives the month. Parent only.
func (a *App) Rollover() (models.ArchiveEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return models.ArchiveEntry{}, err
	}
	return a.archive.Rollover(), nil
}

// SetRewardConfig replaces the tier table. Parent only.
func (a *App) SetRewardConfig(config models.RewardConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return err
	}
	return a.rewards.SetConfig(config)
}

// SavePreset snapshots the mission list. Parent only.
func (a *App) SavePreset(name string) (models.MissionPreset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return models.MissionPreset{}, err
	}
	return a.presets.Save(name)
}

// LoadPreset replaces the mission list. Parent only.
func (a *App) LoadPreset(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return err
	}
	if err := a.presets.Load(id); err != nil {
		return err
	}
	a.stopTimer()
	return nil
}

// DeletePreset removes a preset. Parent only.
func (a *App) DeletePreset(id string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireParent(); err != nil {
		return false, err
	}
	return a.presets.Delete(id), nil
}

// SetProfile stores the child profile. The first call completes onboarding and
// needs no parent unlock; later changes do.
func (a *App) SetProfile(name string, photo []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profiles.OnboardingComplete() {
		if err := a.requireParent(); err != nil {
			return err
		}
	}
	return a.profiles.SetProfile(name, photo)
}
