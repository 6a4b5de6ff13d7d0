// Package analytics is the fire-and-forget event sink. Callers never
// block on it and never observe its failures.
package analytics

import (
	log "github.com/sirupsen/logrus"
)

// Sink is the capability handed to the composition and playback
// layers. Track must return immediately.
type Sink interface {
	Track(eventType string, payload map[string]any)
}

// Recorder persists events. The sqlite store implements this; tests
// swap in an in-memory one.
type Recorder interface {
	Record(eventType string, payload map[string]any) error
}

type event struct {
	Type    string
	Payload map[string]any
}

// Dispatcher fans events into a Recorder on its own goroutine. A full
// buffer drops the event rather than stalling a page render.
type Dispatcher struct {
	events   chan event
	done     chan struct{}
	recorder Recorder
	logger   *log.Entry
}

func NewDispatcher(recorder Recorder, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}
	d := &Dispatcher{
		events:   make(chan event, buffer),
		done:     make(chan struct{}),
		recorder: recorder,
		logger: log.WithFields(log.Fields{
			"module": "analytics",
		}),
	}
	go d.drain()
	return d
}

func (d *Dispatcher) Track(eventType string, payload map[string]any) {
	select {
	case d.events <- event{Type: eventType, Payload: payload}:
	default:
		d.logger.Warnf("event buffer full, dropping %s event", eventType)
	}
}

// Close stops accepting events and flushes what is already buffered.
func (d *Dispatcher) Close() {
	close(d.events)
	<-d.done
}

func (d *Dispatcher) drain() {
	defer close(d.done)
	for e := range d.events {
		if err := d.recorder.Record(e.Type, e.Payload); err != nil {
			d.logger.Warnf("failed to record %s event: %v", e.Type, err)
		}
	}
}

// Nop discards every event. Used when no store is configured and in
// tests that don't assert on analytics.
type Nop struct{}

func (Nop) Track(string, map[string]any) {}
