package service

import (
	"stickermissions/internal/models"
	"stickermissions/internal/store"
	"stickermissions/internal/validation"
)

// RewardService holds the parent's tier table and evaluates it against the board
type RewardService struct {
	store     *store.Store
	formatter *RewardFormatter
}

// NewRewardService creates a new reward service
func NewRewardService(st *store.Store, formatter *RewardFormatter) *RewardService {
	return &RewardService{store: st, formatter: formatter}
}

// Config returns a copy of the tier table
func (s *RewardService) Config() models.RewardConfig {
	config := s.store.State().RewardConfig
	steps := make([]models.RewardStep, len(config.Steps))
	copy(steps, config.Steps)
	config.Steps = steps
	return config
}

// SetConfig replaces the tier table
func (s *RewardService) SetConfig(config models.RewardConfig) error {
	if err := validation.ValidateRewardConfig(config); err != nil {
		return err
	}
	if config.Steps == nil {
		config.Steps = []models.RewardStep{}
	}
	s.store.State().RewardConfig = config
	s.store.Commit(store.KeyRewardConfig)
	return nil
}

// Current renders the reward unlocked by the stickers on the board
func (s *RewardService) Current() string {
	st := s.store.State()
	return CurrentReward(models.TotalStickers(st.Stickers), st.RewardConfig, s.formatter)
}

// Next returns the next tier to aim for and how many stickers it still needs
func (s *RewardService) Next() (models.RewardStep, int, bool) {
	st := s.store.State()
	total := models.TotalStickers(st.Stickers)
	step, ok := NextRewardStep(total, st.RewardConfig)
	if !ok {
		return models.RewardStep{}, 0, false
	}
	return step, step.StickersThreshold - total, true
}

// Format renders a step's text the way Current would
func (s *RewardService) Format(step models.RewardStep) string {
	if s.store.State().RewardConfig.Type == models.RewardCurrency && s.formatter != nil {
		return s.formatter.FormatCurrency(step.RewardText)
	}
	return step.RewardText
}
