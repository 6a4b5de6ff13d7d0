package reveal

import "testing"

func TestOneShotLatch(t *testing.T) {
	g := NewGate()

	if g.Visible("a") {
		t.Error("section visible before entering viewport")
	}
	if !g.MarkVisible("a") {
		t.Error("first MarkVisible should report the latch")
	}
	if g.MarkVisible("a") {
		t.Error("second MarkVisible should be a no-op")
	}
	// Scrolling back out never hides a revealed section.
	if !g.Visible("a") {
		t.Error("latched section reverted to hidden")
	}
	if g.Visible("b") {
		t.Error("unrelated section leaked visibility")
	}
}
