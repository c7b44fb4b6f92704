package booking

import (
	"testing"
	"time"
)

func TestRepoConflictCheckerUsesThirtyMinuteWindow(t *testing.T) {
	repo := &fakeRepo{existing: true}
	checker := &RepoConflictChecker{Repo: repo}

	at := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	conflict, err := checker.HasConflict(at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conflict {
		t.Error("conflict = false, want true when the repository reports one")
	}
	if !repo.lastWindowAt.Equal(at) {
		t.Errorf("window anchor = %v, want %v", repo.lastWindowAt, at)
	}
	if repo.lastWindow != 30*time.Minute {
		t.Errorf("window = %v, want 30m", repo.lastWindow)
	}
}

func TestSlotKeyGroupsInstantsByWindow(t *testing.T) {
	base := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b time.Time
		same bool
	}{
		{"identical instants", base, base, true},
		{"same half-hour window", base.Add(5 * time.Minute), base.Add(25 * time.Minute), true},
		{"window edge", base, base.Add(29*time.Minute + 59*time.Second), true},
		{"next window", base, base.Add(30 * time.Minute), false},
		{"previous window", base, base.Add(-time.Minute), false},
		{"timezone normalized", base, base.In(time.FixedZone("PKT", 5*3600)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := slotKey(tt.a), slotKey(tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("slotKey(%v) = %q, slotKey(%v) = %q, want same=%v", tt.a, ka, tt.b, kb, tt.same)
			}
		})
	}
}

func TestCalendarBookingsCoversWholeMonth(t *testing.T) {
	deps := newDeps()
	svc := newTestService(deps)

	var gotFrom, gotTo time.Time
	deps.repo.rangeFn = func(from, to time.Time) {
		gotFrom, gotTo = from, to
	}

	if _, err := svc.CalendarBookings(time.Date(2026, 9, 15, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrom := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !gotFrom.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", gotFrom, wantFrom)
	}
	wantTo := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if !gotTo.Equal(wantTo) {
		t.Errorf("to = %v, want %v", gotTo, wantTo)
	}
}
