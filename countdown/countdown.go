// Package countdown derives the released/unreleased state for
// time-gated hero sections from the local clock. The transition is
// never confirmed server-side, so clock skew can open the gate a
// little early or late; that matches the stored behavior.
package countdown

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Remaining is the broken-down time left until release.
type Remaining struct {
	Days    int `json:"d"`
	Hours   int `json:"h"`
	Minutes int `json:"m"`
	Seconds int `json:"s"`
}

// Snapshot is one observation of the gate.
type Snapshot struct {
	Released  bool      `json:"released"`
	Remaining Remaining `json:"remaining"`
}

// Released reports whether the content is available. No release date
// means always released.
func Released(releaseDate *time.Time, now time.Time) bool {
	return releaseDate == nil || !now.Before(*releaseDate)
}

// Until breaks down the time left before releaseDate. Negative
// durations clamp to zero.
func Until(releaseDate, now time.Time) Remaining {
	d := releaseDate.Sub(now)
	if d < 0 {
		d = 0
	}
	return Remaining{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d/time.Hour) % 24,
		Minutes: int(d/time.Minute) % 60,
		Seconds: int(d/time.Second) % 60,
	}
}

// Take returns the current snapshot.
func Take(releaseDate *time.Time, now time.Time) Snapshot {
	snap := Snapshot{Released: Released(releaseDate, now)}
	if !snap.Released {
		snap.Remaining = Until(*releaseDate, now)
	}
	return snap
}

// Gate re-derives the snapshot every second while unreleased, then
// freezes in the released state. Tied to a context so the ticker is
// torn down with the page it serves.
type Gate struct {
	releaseDate *time.Time
	updates     chan Snapshot
	logger      *log.Entry
}

func NewGate(releaseDate *time.Time) *Gate {
	return &Gate{
		releaseDate: releaseDate,
		updates:     make(chan Snapshot, 1),
		logger: log.WithFields(log.Fields{
			"module": "countdown",
		}),
	}
}

// Updates delivers snapshots. The channel closes once the gate opens
// or the context is canceled.
func (g *Gate) Updates() <-chan Snapshot {
	return g.updates
}

// Run ticks once per second until release. Already-released dates (or
// no date at all) close the channel after a single released snapshot.
func (g *Gate) Run(ctx context.Context) {
	defer close(g.updates)

	snap := Take(g.releaseDate, time.Now())
	g.push(snap)
	if snap.Released {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			snap = Take(g.releaseDate, now)
			g.push(snap)
			if snap.Released {
				g.logger.Debug("countdown reached zero, gate open")
				return
			}
		}
	}
}

// push replaces a stale unread snapshot rather than blocking the tick.
func (g *Gate) push(snap Snapshot) {
	select {
	case g.updates <- snap:
	default:
		select {
		case <-g.updates:
		default:
		}
		g.updates <- snap
	}
}
