package models

import "time"

// MissionStatus is the lifecycle state of a mission
type MissionStatus string

const (
	MissionPending   MissionStatus = "pending"
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s MissionStatus) Valid() bool {
	switch s {
	case MissionPending, MissionActive, MissionCompleted:
		return true
	}
	return false
}

// Mission is a timed task the child performs for a reward
type Mission struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	DurationMinutes int           `json:"durationMinutes"`
	Reward          string        `json:"reward"`
	Status          MissionStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
}

// Duration returns the countdown length for the mission
func (m Mission) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}

// MissionTemplate is a mission without identity or status, as stored in presets
type MissionTemplate struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	Reward          string `json:"reward"`
}

// MissionPreset is a named, reusable set of mission templates
type MissionPreset struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Missions []MissionTemplate `json:"missions"`
}

// MissionLog records one mission completion on a given day
type MissionLog struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}
