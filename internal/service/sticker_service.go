package service

import (
	"errors"
	"fmt"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
	"stickermissions/internal/store"
)

var ErrInvalidBonusGrant = errors.New("bonus grant must be positive")

// BoardDay is one calendar cell of the current month's sticker board
type BoardDay struct {
	Date    string
	Sticker *models.StickerDay
	IsToday bool
}

// StickerService awards the daily sticker and places bonus stickers
type StickerService struct {
	store *store.Store
	clock dateutil.Clock
}

// NewStickerService creates a new sticker service
func NewStickerService(st *store.Store, clock dateutil.Clock) *StickerService {
	return &StickerService{store: st, clock: clock}
}

// Eligible reports whether today's sticker can be awarded
func (s *StickerService) Eligible() bool {
	return canAwardSticker(s.store.State(), dateutil.Today(s.clock))
}

// Award places today's sticker. It is a no-op when the child is not eligible,
// which includes a second call on the same day.
func (s *StickerService) Award(stickerType models.StickerType) bool {
	if stickerType == "" {
		stickerType = models.StickerStar
	}
	if !stickerType.Valid() {
		return false
	}

	st := s.store.State()
	today := dateutil.Today(s.clock)
	if !canAwardSticker(st, today) {
		return false
	}

	entry := models.StickerDay{
		Date:        today,
		Count:       1,
		StickerType: stickerType,
	}
	// A zero-count placeholder for today is replaced so dates stay unique.
	replaced := false
	for i := range st.Stickers {
		if st.Stickers[i].Date == today {
			st.Stickers[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		st.Stickers = append(st.Stickers, entry)
	}
	s.store.Commit(store.KeyStickers)
	return true
}

// UseBonus spends one bonus sticker on the earliest empty day of the current
// month. When every day is filled nothing is placed and the balance is kept.
func (s *StickerService) UseBonus() bool {
	st := s.store.State()
	if st.BonusBalance <= 0 {
		return false
	}

	day, ok := firstEmptyDay(st.CurrentMonthID, st.Stickers)
	if !ok {
		return false
	}

	st.Stickers = append(st.Stickers, models.StickerDay{
		Date:        day,
		Count:       1,
		IsBonusUsed: true,
		StickerType: models.StickerStar,
	})
	st.BonusBalance--
	s.store.Commit(store.KeyStickers, store.KeyBonusBalance)
	return true
}

// GrantBonus adds bonus stickers to the balance
func (s *StickerService) GrantBonus(count int) error {
	if count <= 0 {
		return ErrInvalidBonusGrant
	}
	s.store.State().BonusBalance += count
	s.store.Commit(store.KeyBonusBalance)
	return nil
}

// BonusBalance returns the number of unspent bonus stickers
func (s *StickerService) BonusBalance() int {
	return s.store.State().BonusBalance
}

// Total sums the stickers on the active board
func (s *StickerService) Total() int {
	return models.TotalStickers(s.store.State().Stickers)
}

// Board lays out the current month day by day
func (s *StickerService) Board() ([]BoardDay, error) {
	st := s.store.State()
	days, err := dateutil.DaysInMonth(st.CurrentMonthID)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	today := dateutil.Today(s.clock)
	board := make([]BoardDay, 0, len(days))
	for _, day := range days {
		cell := BoardDay{Date: day, IsToday: day == today}
		if sticker, ok := st.StickerFor(day); ok {
			sticker := sticker
			cell.Sticker = &sticker
		}
		board = append(board, cell)
	}
	return board, nil
}

func canAwardSticker(st *store.State, today string) bool {
	if len(st.Missions) == 0 || st.ActiveMissionID != "" {
		return false
	}
	for _, m := range st.Missions {
		if m.Status != models.MissionCompleted {
			return false
		}
	}
	if sticker, ok := st.StickerFor(today); ok && sticker.Count > 0 {
		return false
	}
	return true
}

// firstEmptyDay finds the earliest day of monthID with no board entry
func firstEmptyDay(monthID string, stickers []models.StickerDay) (string, bool) {
	days, err := dateutil.DaysInMonth(monthID)
	if err != nil {
		return "", false
	}

	filled := make(map[string]bool, len(stickers))
	for _, s := range stickers {
		filled[s.Date] = true
	}
	for _, day := range days {
		if !filled[day] {
			return day, true
		}
	}
	return "", false
}
