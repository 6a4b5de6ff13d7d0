// Package reveal is the one-shot scroll visibility latch. A section
// becomes visible the first time it enters the viewport and never
// reverts, even when scrolled back out.
package reveal

import "sync"

// Options are handed to the client-side intersection observer. The
// negative bottom margin fires the reveal slightly before the section
// fully enters the viewport.
type Options struct {
	Threshold    float64 `json:"threshold"`
	BottomMargin string  `json:"bottomMargin"`
}

var DefaultOptions = Options{
	Threshold:    0.1,
	BottomMargin: "-60px",
}

// Gate tracks which section ids have latched visible.
type Gate struct {
	mu      sync.Mutex
	visible map[string]bool
}

func NewGate() *Gate {
	return &Gate{visible: make(map[string]bool)}
}

// MarkVisible latches the section. The first call returns true, which
// tells the caller to tear down its observer; repeats are no-ops.
func (g *Gate) MarkVisible(sectionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.visible[sectionID] {
		return false
	}
	g.visible[sectionID] = true
	return true
}

// Visible reports whether the section has ever been revealed.
func (g *Gate) Visible(sectionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible[sectionID]
}
