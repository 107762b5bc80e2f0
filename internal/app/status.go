package app

import (
	"stickermissions/internal/models"
	"stickermissions/internal/service"
)

// Status is everything the home screen shows
type Status struct {
	ChildName      string
	Onboarded      bool
	MonthID        string
	Missions       []models.Mission
	Active         *models.Mission
	Eligible       bool
	Stickers       int
	BonusBalance   int
	Reward         string
	NextReward     string
	NextRemaining  int
	HasNextReward  bool
	Summary        string
	ParentUnlocked bool
}

// Status snapshots the current state
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := Status{
		ChildName:      a.profiles.Profile().Name,
		Onboarded:      a.profiles.OnboardingComplete(),
		MonthID:        a.archive.CurrentMonthID(),
		Missions:       a.missions.List(),
		Eligible:       a.stickers.Eligible(),
		Stickers:       a.stickers.Total(),
		BonusBalance:   a.stickers.BonusBalance(),
		Reward:         a.rewards.Current(),
		Summary:        a.summary.Message(),
		ParentUnlocked: a.parentUnlocked,
	}
	if active, ok := a.missions.Active(); ok {
		status.Active = &active
	}
	if next, remaining, ok := a.rewards.Next(); ok {
		status.NextReward = a.rewards.Format(next)
		status.NextRemaining = remaining
		status.HasNextReward = true
	}
	return status
}

// Board lays out the current month
func (a *App) Board() ([]service.BoardDay, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stickers.Board()
}

// Stats lists this month's completions per mission
func (a *App) Stats() []service.MissionCount {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profiles.MonthlyStats()
}

// Archives lists archived months, newest first
func (a *App) Archives() []models.ArchiveEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.archive.Archives()
}

// Presets lists saved presets
func (a *App) Presets() []models.MissionPreset {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.presets.List()
}

// RewardConfig returns the tier table
func (a *App) RewardConfig() models.RewardConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rewards.Config()
}
