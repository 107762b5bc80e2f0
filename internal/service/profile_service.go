package service

import (
	"sort"
	"strings"

	"stickermissions/internal/models"
	"stickermissions/internal/store"
	"stickermissions/internal/validation"
)

// MissionCount is one row of the monthly statistics
type MissionCount struct {
	Title string
	Count int
}

// ProfileService manages the child profile and the statistics derived from mission logs
type ProfileService struct {
	store *store.Store
}

// NewProfileService creates a new profile service
func NewProfileService(st *store.Store) *ProfileService {
	return &ProfileService{store: st}
}

// Profile returns the child profile
func (s *ProfileService) Profile() models.ChildProfile {
	return s.store.State().Profile
}

// SetProfile stores the child's name and optional photo
func (s *ProfileService) SetProfile(name string, photo []byte) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	s.store.State().Profile = models.ChildProfile{Name: strings.TrimSpace(name), Photo: photo}
	s.store.Commit(store.KeyProfile)
	return nil
}

// OnboardingComplete reports whether a child name has been set
func (s *ProfileService) OnboardingComplete() bool {
	return strings.TrimSpace(s.store.State().Profile.Name) != ""
}

// MonthlyCounts maps each mission title to its completions this month
func (s *ProfileService) MonthlyCounts() map[string]int {
	return countMissionLogs(s.store.State().MissionLogs)
}

// MonthlyStats lists completions per title, most frequent first
func (s *ProfileService) MonthlyStats() []MissionCount {
	counts := s.MonthlyCounts()
	stats := make([]MissionCount, 0, len(counts))
	for title, count := range counts {
		stats = append(stats, MissionCount{Title: title, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Title < stats[j].Title
	})
	return stats
}

func countMissionLogs(logs []models.MissionLog) map[string]int {
	counts := make(map[string]int)
	for _, l := range logs {
		counts[l.Title]++
	}
	return counts
}
