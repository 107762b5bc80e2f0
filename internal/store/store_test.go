package store

import (
	"reflect"
	"testing"
	"time"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
)

var testClock = &dateutil.FixedClock{At: time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s := New(NewMemoryKV(), false)
	if err := s.Load(testClock); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	st := s.State()
	if st.CurrentMonthID != "2024-06" {
		t.Errorf("CurrentMonthID = %v, want 2024-06", st.CurrentMonthID)
	}
	if len(st.Missions) != 0 || len(st.Stickers) != 0 || st.BonusBalance != 0 {
		t.Errorf("Load() on empty backend = %+v, want empty state", st)
	}
	if st.RewardConfig.Type != models.RewardText {
		t.Errorf("RewardConfig.Type = %v, want text", st.RewardConfig.Type)
	}
	if st.PINHash != "" {
		t.Errorf("PINHash = %q, want empty (factory pin)", st.PINHash)
	}
}

func TestCommitLoadRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv, false)
	if err := s.Load(testClock); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	created := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	completed := created.Add(time.Hour)
	st := s.State()
	st.Missions = []models.Mission{
		{ID: "m1", Title: "Read", DurationMinutes: 10, Reward: "Candy", Status: models.MissionCompleted, CreatedAt: created, CompletedAt: &completed},
		{ID: "m2", Title: "Piano", DurationMinutes: 20, Reward: "Sticker", Status: models.MissionActive, CreatedAt: created},
	}
	st.ActiveMissionID = "m2"
	st.Stickers = []models.StickerDay{{Date: "2024-06-01", Count: 1, StickerType: models.StickerHeart}}
	st.BonusBalance = 3
	st.RewardConfig = models.RewardConfig{Type: models.RewardCurrency, Steps: []models.RewardStep{{StickersThreshold: 0, RewardText: "1000"}}}
	st.Archives = []models.ArchiveEntry{{MonthID: "2024-05", Stickers: []models.StickerDay{{Date: "2024-05-02", Count: 1}}, TotalStickers: 1, ArchivedAt: created}}
	st.LastResetDate = "2024-06-15"
	st.Presets = []models.MissionPreset{{ID: "p1", Name: "School days", Missions: []models.MissionTemplate{{Title: "Read", DurationMinutes: 10, Reward: "Candy"}}}}
	st.Profile = models.ChildProfile{Name: "Mina", Photo: []byte{0x1, 0x2}}
	st.MissionLogs = []models.MissionLog{{Date: "2024-06-01", Title: "Read"}}
	st.PINHash = "$2a$10$hash"
	s.CommitAll()

	reloaded := New(kv, false)
	if err := reloaded.Load(testClock); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(reloaded.State(), st) {
		t.Errorf("reloaded state = %+v\nwant %+v", reloaded.State(), st)
	}
}

func TestLoadRejectsMismatchedShapes(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		value string
		check func(*State) bool
	}{
		{
			name:  "not an envelope",
			key:   KeyMissions,
			value: `[{"id":"m1"}]`,
			check: func(s *State) bool { return len(s.Missions) == 0 },
		},
		{
			name:  "future version",
			key:   KeyBonusBalance,
			value: `{"version":2,"data":5}`,
			check: func(s *State) bool { return s.BonusBalance == 0 },
		},
		{
			name:  "negative balance",
			key:   KeyBonusBalance,
			value: `{"version":1,"data":-4}`,
			check: func(s *State) bool { return s.BonusBalance == 0 },
		},
		{
			name:  "wrong type",
			key:   KeyStickers,
			value: `{"version":1,"data":"lots"}`,
			check: func(s *State) bool { return len(s.Stickers) == 0 },
		},
		{
			name:  "malformed month id",
			key:   KeyCurrentMonthID,
			value: `{"version":1,"data":"June"}`,
			check: func(s *State) bool { return s.CurrentMonthID == "2024-06" },
		},
		{
			name:  "too many reward steps",
			key:   KeyRewardConfig,
			value: `{"version":1,"data":{"type":"text","steps":[{"stickersThreshold":1,"rewardText":"a"},{"stickersThreshold":2,"rewardText":"a"},{"stickersThreshold":3,"rewardText":"a"},{"stickersThreshold":4,"rewardText":"a"},{"stickersThreshold":5,"rewardText":"a"},{"stickersThreshold":6,"rewardText":"a"}]}}`,
			check: func(s *State) bool { return len(s.RewardConfig.Steps) == 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			kv.Set(string(tt.key), tt.value)

			s := New(kv, false)
			if err := s.Load(testClock); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !tt.check(s.State()) {
				t.Errorf("Load() kept invalid %s value: %+v", tt.key, s.State())
			}
		})
	}
}

func TestLoadRepairsInvariants(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(string(KeyMissions), `{"version":1,"data":[
		{"id":"a","title":"A","durationMinutes":5,"status":"active"},
		{"id":"b","title":"B","durationMinutes":5,"status":"active"},
		{"id":"a","title":"dup","durationMinutes":5,"status":"pending"},
		{"id":"c","title":"C","durationMinutes":0,"status":"pending"},
		{"id":"d","title":"D","durationMinutes":5,"status":"sleeping"}
	]}`)
	kv.Set(string(KeyStickers), `{"version":1,"data":[
		{"date":"2024-06-01","count":1},
		{"date":"2024-06-01","count":1},
		{"date":"June 2","count":1}
	]}`)

	s := New(kv, false)
	if err := s.Load(testClock); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	st := s.State()

	if len(st.Missions) != 2 {
		t.Fatalf("len(Missions) = %d, want 2", len(st.Missions))
	}
	active := 0
	for _, m := range st.Missions {
		if m.Status == models.MissionActive {
			active++
		}
	}
	if active != 1 || st.ActiveMissionID != "a" {
		t.Errorf("active missions = %d (pointer %q), want 1 (a)", active, st.ActiveMissionID)
	}
	if len(st.Stickers) != 1 {
		t.Errorf("len(Stickers) = %d, want 1", len(st.Stickers))
	}
}

func TestCommitIgnoresWriteFailures(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv, false)
	if err := s.Load(testClock); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	kv.FailWrites = true
	s.State().BonusBalance = 2
	s.Commit(KeyBonusBalance)

	if s.State().BonusBalance != 2 {
		t.Errorf("BonusBalance = %d after failed write, want 2", s.State().BonusBalance)
	}
	if _, found, _ := kv.Get(string(KeyBonusBalance)); found {
		t.Error("failed write should not have stored a value")
	}
}
