package dateutil

import (
	"testing"
	"time"
)

func TestDateKeyAndMonthID(t *testing.T) {
	at := time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC)

	if got := DateKey(at); got != "2024-03-07" {
		t.Errorf("DateKey() = %v, want 2024-03-07", got)
	}
	if got := MonthID(at); got != "2024-03" {
		t.Errorf("MonthID() = %v, want 2024-03", got)
	}

	clock := &FixedClock{At: at}
	if got := Today(clock); got != "2024-03-07" {
		t.Errorf("Today() = %v, want 2024-03-07", got)
	}
	if got := CurrentMonthID(clock); got != "2024-03" {
		t.Errorf("CurrentMonthID() = %v, want 2024-03", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name    string
		monthID string
		count   int
		first   string
		last    string
		wantErr bool
	}{
		{name: "leap february", monthID: "2024-02", count: 29, first: "2024-02-01", last: "2024-02-29"},
		{name: "common february", monthID: "2023-02", count: 28, first: "2023-02-01", last: "2023-02-28"},
		{name: "thirty one days", monthID: "2024-12", count: 31, first: "2024-12-01", last: "2024-12-31"},
		{name: "malformed", monthID: "2024/12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := DaysInMonth(tt.monthID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysInMonth() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(days) != tt.count {
				t.Fatalf("len(DaysInMonth()) = %d, want %d", len(days), tt.count)
			}
			if days[0] != tt.first || days[len(days)-1] != tt.last {
				t.Errorf("DaysInMonth() spans %s..%s, want %s..%s", days[0], days[len(days)-1], tt.first, tt.last)
			}
		})
	}
}

func TestIsDateKey(t *testing.T) {
	if !IsDateKey("2024-01-31") {
		t.Error("IsDateKey(2024-01-31) = false, want true")
	}
	if IsDateKey("2024-02-30") {
		t.Error("IsDateKey(2024-02-30) = true, want false")
	}
}
