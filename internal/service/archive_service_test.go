package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"stickermissions/internal/models"
)

type fakeReporter struct {
	reports chan models.ArchiveEntry
	counts  chan map[string]int
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{
		reports: make(chan models.ArchiveEntry, 1),
		counts:  make(chan map[string]int, 1),
	}
}

func (f *fakeReporter) SendMonthlyReport(ctx context.Context, childName string, entry models.ArchiveEntry, missionCounts map[string]int) error {
	f.reports <- entry
	f.counts <- missionCounts
	return nil
}

func TestArchiveServiceRollover(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	reporter := newFakeReporter()
	archive := NewArchiveService(st, clock, reporter)

	for day := 1; day <= 7; day++ {
		st.State().Stickers = append(st.State().Stickers, models.StickerDay{
			Date:        fmt.Sprintf("2024-03-%02d", day),
			Count:       1,
			StickerType: models.StickerStar,
		})
	}
	st.State().MissionLogs = []models.MissionLog{
		{Date: "2024-03-02", Title: "Read"},
		{Date: "2024-03-03", Title: "Read"},
	}
	st.State().Archives = []models.ArchiveEntry{{MonthID: "2024-02", TotalStickers: 3}}

	april := time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)
	clock.At = april
	entry := archive.Rollover()

	if entry.MonthID != "2024-03" || entry.TotalStickers != 7 || len(entry.Stickers) != 7 {
		t.Errorf("Rollover() = %s total %d (%d days), want 2024-03 total 7", entry.MonthID, entry.TotalStickers, len(entry.Stickers))
	}
	if !entry.ArchivedAt.Equal(april) {
		t.Errorf("ArchivedAt = %v, want %v", entry.ArchivedAt, april)
	}

	archives := archive.Archives()
	if len(archives) != 2 || archives[0].MonthID != "2024-03" || archives[1].MonthID != "2024-02" {
		t.Errorf("Archives() = %v, want newest first", archives)
	}
	if got := archive.CurrentMonthID(); got != "2024-04" {
		t.Errorf("CurrentMonthID() = %q, want 2024-04", got)
	}
	if len(st.State().Stickers) != 0 {
		t.Errorf("Stickers length = %d, want 0", len(st.State().Stickers))
	}
	if len(st.State().MissionLogs) != 0 {
		t.Errorf("MissionLogs length = %d, want 0", len(st.State().MissionLogs))
	}

	select {
	case reported := <-reporter.reports:
		if reported.MonthID != "2024-03" {
			t.Errorf("reported month = %q, want 2024-03", reported.MonthID)
		}
		if counts := <-reporter.counts; counts["Read"] != 2 {
			t.Errorf("reported counts = %v, want Read:2", counts)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("monthly report was not sent")
	}
}

func TestArchiveServiceRolloverSnapshotIsIndependent(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	archive := NewArchiveService(st, clock, nil)
	st.State().Stickers = []models.StickerDay{{Date: "2024-03-01", Count: 1}}

	entry := archive.Rollover()
	st.State().Stickers = append(st.State().Stickers, models.StickerDay{Date: "2024-03-02", Count: 1})

	if len(entry.Stickers) != 1 || len(archive.Archives()[0].Stickers) != 1 {
		t.Errorf("archived stickers changed after rollover: %v", archive.Archives()[0].Stickers)
	}
}
