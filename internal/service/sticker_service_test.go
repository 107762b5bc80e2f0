package service

import (
	"errors"
	"fmt"
	"testing"

	"stickermissions/internal/models"
)

func completeAll(t *testing.T, missions *MissionService) {
	t.Helper()
	for _, m := range missions.List() {
		if !missions.CompleteBypass(m.ID) && m.Status != models.MissionCompleted {
			t.Fatalf("CompleteBypass(%s) = false", m.Title)
		}
	}
}

func TestStickerServiceEligible(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, missions *MissionService)
		want  bool
	}{
		{
			name:  "no missions",
			setup: func(t *testing.T, missions *MissionService) {},
			want:  false,
		},
		{
			name: "pending mission",
			setup: func(t *testing.T, missions *MissionService) {
				addMission(t, missions, "Read")
			},
			want: false,
		},
		{
			name: "active mission",
			setup: func(t *testing.T, missions *MissionService) {
				m := addMission(t, missions, "Read")
				missions.Start(m.ID)
			},
			want: false,
		},
		{
			name: "all completed",
			setup: func(t *testing.T, missions *MissionService) {
				addMission(t, missions, "Read")
				addMission(t, missions, "Piano")
				completeAll(t, missions)
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _, clock := newTestStore(t, march7)
			missions := NewMissionService(st, clock)
			stickers := NewStickerService(st, clock)
			tt.setup(t, missions)

			if got := stickers.Eligible(); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStickerServiceAwardOncePerDay(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	missions := NewMissionService(st, clock)
	stickers := NewStickerService(st, clock)
	addMission(t, missions, "Read")
	completeAll(t, missions)

	if !stickers.Award(models.StickerRocket) {
		t.Fatal("Award() = false, want true")
	}
	before := len(st.State().Stickers)
	if stickers.Award(models.StickerHeart) {
		t.Error("second Award() = true, want false")
	}
	if stickers.Eligible() {
		t.Error("Eligible() after award = true, want false")
	}
	if got := len(st.State().Stickers); got != before || got != 1 {
		t.Errorf("sticker entries = %d, want 1", got)
	}
	day := st.State().Stickers[0]
	if day.Date != "2024-03-07" || day.Count != 1 || day.StickerType != models.StickerRocket {
		t.Errorf("sticker = %+v", day)
	}
}

func TestStickerServiceAwardType(t *testing.T) {
	tests := []struct {
		name        string
		stickerType models.StickerType
		want        bool
		wantType    models.StickerType
	}{
		{name: "default star", stickerType: "", want: true, wantType: models.StickerStar},
		{name: "crown", stickerType: models.StickerCrown, want: true, wantType: models.StickerCrown},
		{name: "unknown", stickerType: "unicorn", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _, clock := newTestStore(t, march7)
			missions := NewMissionService(st, clock)
			stickers := NewStickerService(st, clock)
			addMission(t, missions, "Read")
			completeAll(t, missions)

			if got := stickers.Award(tt.stickerType); got != tt.want {
				t.Fatalf("Award() = %v, want %v", got, tt.want)
			}
			if tt.want && st.State().Stickers[0].StickerType != tt.wantType {
				t.Errorf("StickerType = %v, want %v", st.State().Stickers[0].StickerType, tt.wantType)
			}
		})
	}
}

func TestStickerServiceAwardReplacesEmptyEntry(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	missions := NewMissionService(st, clock)
	stickers := NewStickerService(st, clock)
	addMission(t, missions, "Read")
	completeAll(t, missions)
	st.State().Stickers = []models.StickerDay{{Date: "2024-03-07", Count: 0}}

	if !stickers.Award(models.StickerStar) {
		t.Fatal("Award() = false, want true")
	}
	if got := len(st.State().Stickers); got != 1 {
		t.Errorf("sticker entries = %d, want 1", got)
	}
	if got := stickers.Total(); got != 1 {
		t.Errorf("Total() = %d, want 1", got)
	}
}

func TestStickerServiceUseBonus(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	stickers := NewStickerService(st, clock)
	st.State().Stickers = []models.StickerDay{
		{Date: "2024-03-01", Count: 1, StickerType: models.StickerStar},
		{Date: "2024-03-03", Count: 1, StickerType: models.StickerStar},
	}

	if stickers.UseBonus() {
		t.Fatal("UseBonus() with empty balance = true, want false")
	}
	if err := stickers.GrantBonus(2); err != nil {
		t.Fatalf("GrantBonus() error = %v", err)
	}

	for _, want := range []string{"2024-03-02", "2024-03-04"} {
		before := stickers.BonusBalance()
		if !stickers.UseBonus() {
			t.Fatalf("UseBonus() = false, want true")
		}
		if got := stickers.BonusBalance(); got != before-1 {
			t.Errorf("BonusBalance() = %d, want %d", got, before-1)
		}
		placed, ok := st.State().StickerFor(want)
		if !ok || !placed.IsBonusUsed || placed.Count != 1 || placed.StickerType != models.StickerStar {
			t.Errorf("StickerFor(%s) = %+v, %v", want, placed, ok)
		}
	}

	if stickers.UseBonus() {
		t.Error("UseBonus() after spending balance = true, want false")
	}
	if got := stickers.BonusBalance(); got != 0 {
		t.Errorf("BonusBalance() = %d, want 0", got)
	}
}

func TestStickerServiceUseBonusFullMonth(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	stickers := NewStickerService(st, clock)
	st.State().CurrentMonthID = "2024-02"
	for day := 1; day <= 29; day++ {
		st.State().Stickers = append(st.State().Stickers, models.StickerDay{
			Date:  fmt.Sprintf("2024-02-%02d", day),
			Count: 1,
		})
	}
	st.State().BonusBalance = 3

	if stickers.UseBonus() {
		t.Error("UseBonus() on full month = true, want false")
	}
	if got := stickers.BonusBalance(); got != 3 {
		t.Errorf("BonusBalance() = %d, want 3", got)
	}
	if got := len(st.State().Stickers); got != 29 {
		t.Errorf("sticker entries = %d, want 29", got)
	}
}

func TestStickerServiceGrantBonus(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	stickers := NewStickerService(st, clock)

	for _, n := range []int{0, -1} {
		if err := stickers.GrantBonus(n); !errors.Is(err, ErrInvalidBonusGrant) {
			t.Errorf("GrantBonus(%d) error = %v, want ErrInvalidBonusGrant", n, err)
		}
	}
	if err := stickers.GrantBonus(4); err != nil {
		t.Fatalf("GrantBonus(4) error = %v", err)
	}
	if got := stickers.BonusBalance(); got != 4 {
		t.Errorf("BonusBalance() = %d, want 4", got)
	}
}

func TestStickerServiceBoard(t *testing.T) {
	st, _, clock := newTestStore(t, march7)
	stickers := NewStickerService(st, clock)
	st.State().Stickers = []models.StickerDay{{Date: "2024-03-05", Count: 1, StickerType: models.StickerMedal}}

	board, err := stickers.Board()
	if err != nil {
		t.Fatalf("Board() error = %v", err)
	}
	if len(board) != 31 {
		t.Fatalf("Board() length = %d, want 31", len(board))
	}
	if board[4].Sticker == nil || board[4].Sticker.StickerType != models.StickerMedal {
		t.Errorf("board[4] = %+v, want medal", board[4])
	}
	if !board[6].IsToday {
		t.Error("board[6].IsToday = false, want true")
	}
	if board[0].Sticker != nil {
		t.Errorf("board[0].Sticker = %+v, want nil", board[0].Sticker)
	}
}
