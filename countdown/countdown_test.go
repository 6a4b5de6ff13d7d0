package countdown

import (
	"context"
	"testing"
	"time"
)

func TestReleasedBoundary(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		release *time.Time
		want    bool
	}{
		{"no release date", nil, true},
		{"one second past", timePtr(now.Add(-time.Second)), true},
		{"exactly now", timePtr(now), true},
		{"one day out", timePtr(now.Add(24 * time.Hour)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Released(tt.release, now); got != tt.want {
				t.Errorf("Released() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUntilBreakdown(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		release time.Time
		want    Remaining
	}{
		{"one day", now.Add(24 * time.Hour), Remaining{Days: 1}},
		{"mixed", now.Add(49*time.Hour + 30*time.Minute + 5*time.Second), Remaining{Days: 2, Hours: 1, Minutes: 30, Seconds: 5}},
		{"past clamps to zero", now.Add(-time.Hour), Remaining{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Until(tt.release, now); got != tt.want {
				t.Errorf("Until() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTakeSnapshot(t *testing.T) {
	now := time.Now()
	release := now.Add(24 * time.Hour)

	snap := Take(&release, now)
	if snap.Released {
		t.Fatal("one day out reported released")
	}
	if snap.Remaining.Days != 1 {
		t.Errorf("remaining days = %d, want 1", snap.Remaining.Days)
	}

	snap = Take(&release, now.Add(25*time.Hour))
	if !snap.Released {
		t.Error("past release date still gated")
	}
}

func TestGateAlreadyReleased(t *testing.T) {
	g := NewGate(nil)
	go g.Run(context.Background())

	snap, ok := <-g.Updates()
	if !ok || !snap.Released {
		t.Fatalf("snapshot = %+v ok=%v, want released", snap, ok)
	}
	if _, ok := <-g.Updates(); ok {
		t.Error("channel should close once the gate is open")
	}
}

func TestGateCancel(t *testing.T) {
	release := time.Now().Add(time.Hour)
	g := NewGate(&release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	<-g.Updates()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func timePtr(t time.Time) *time.Time { return &t }
