package service

import (
	"context"
	"log"
	"sync"
	"time"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
	"stickermissions/internal/store"
)

// MonthlyReporter is told about every archived month. Delivery is best-effort.
type MonthlyReporter interface {
	SendMonthlyReport(ctx context.Context, childName string, entry models.ArchiveEntry, missionCounts map[string]int) error
}

const reportTimeout = 30 * time.Second

// ArchiveService snapshots the sticker board at the end of a month
type ArchiveService struct {
	store    *store.Store
	clock    dateutil.Clock
	reporter MonthlyReporter
	pending  sync.WaitGroup
}

// NewArchiveService creates a new archive service. reporter may be nil.
func NewArchiveService(st *store.Store, clock dateutil.Clock, reporter MonthlyReporter) *ArchiveService {
	return &ArchiveService{store: st, clock: clock, reporter: reporter}
}

// Archives returns archived months, newest first
func (s *ArchiveService) Archives() []models.ArchiveEntry {
	archives := s.store.State().Archives
	out := make([]models.ArchiveEntry, len(archives))
	copy(out, archives)
	return out
}

// CurrentMonthID returns the month the active board belongs to
func (s *ArchiveService) CurrentMonthID() string {
	return s.store.State().CurrentMonthID
}

// Rollover archives the active board, starts the month the clock is in and
// clears stickers and mission logs. It only runs when a parent asks for it.
func (s *ArchiveService) Rollover() models.ArchiveEntry {
	st := s.store.State()
	now := s.clock.Now()

	stickers := make([]models.StickerDay, len(st.Stickers))
	copy(stickers, st.Stickers)

	entry := models.ArchiveEntry{
		MonthID:       st.CurrentMonthID,
		Stickers:      stickers,
		TotalStickers: models.TotalStickers(stickers),
		ArchivedAt:    now,
	}
	counts := countMissionLogs(st.MissionLogs)
	childName := st.Profile.Name

	st.Archives = append([]models.ArchiveEntry{entry}, st.Archives...)
	st.CurrentMonthID = dateutil.MonthID(now)
	st.Stickers = []models.StickerDay{}
	st.MissionLogs = []models.MissionLog{}

	s.store.Commit(store.KeyArchives, store.KeyCurrentMonthID, store.KeyStickers, store.KeyMissionLogs)
	log.Printf("Archived %s with %d stickers, now tracking %s", entry.MonthID, entry.TotalStickers, st.CurrentMonthID)

	if s.reporter != nil {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
			defer cancel()
			if err := s.reporter.SendMonthlyReport(ctx, childName, entry, counts); err != nil {
				log.Printf("Error sending monthly report for %s: %v", entry.MonthID, err)
			}
		}()
	}

	return entry
}

// WaitReports blocks until queued monthly reports are sent or ctx ends
func (s *ArchiveService) WaitReports(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
