package service

import (
	"testing"
	"time"

	"stickermissions/internal/dateutil"
	"stickermissions/internal/models"
	"stickermissions/internal/store"
)

var fixedMarch = dateutil.FixedClock{At: time.Date(2024, time.March, 7, 9, 0, 0, 0, time.UTC)}

func newTestStore(t *testing.T, at time.Time) (*store.Store, *store.MemoryKV, *dateutil.FixedClock) {
	t.Helper()
	kv := store.NewMemoryKV()
	clock := &dateutil.FixedClock{At: at}
	st := store.New(kv, false)
	if err := st.Load(clock); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return st, kv, clock
}

func addMission(t *testing.T, missions *MissionService, title string) models.Mission {
	t.Helper()
	m, err := missions.Add(title, 10, "")
	if err != nil {
		t.Fatalf("Add(%q) error = %v", title, err)
	}
	return m
}

func countActive(st *store.State) int {
	n := 0
	for _, m := range st.Missions {
		if m.Status == models.MissionActive {
			n++
		}
	}
	return n
}
