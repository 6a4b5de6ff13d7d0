package controller

import (
	"sync"
	"time"

	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"

	"fanlink/analytics"
	"fanlink/playback"
	"fanlink/reveal"
)

// PageSession holds the ephemeral per-page state: the playback
// coordinator's two axes and the reveal latches. None of it is
// persisted; a restart simply starts every page idle again.
type PageSession struct {
	PageID    string
	Playback  *playback.Coordinator
	Reveal    *reveal.Gate
	CreatedAt time.Time
}

type Controller struct {
	// This is a map of page handle to the session for that page
	sessions   map[string]*PageSession
	sink       analytics.Sink
	closeDelay time.Duration
	mutex      sync.Mutex
}

func NewController(sink analytics.Sink, closeDelay time.Duration) *Controller {
	if sink == nil {
		sink = analytics.Nop{}
	}
	return &Controller{
		sessions:   make(map[string]*PageSession),
		sink:       sink,
		closeDelay: closeDelay,
	}
}

// Handle normalizes a page identifier into its canonical slug so
// "My Band" and "my-band" address the same session.
func Handle(pageID string) string {
	return slug.Make(pageID)
}

func (c *Controller) GetSession(pageID string) *PageSession {
	handle := Handle(pageID)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if session, ok := c.sessions[handle]; ok {
		return session
	}

	log.Tracef("creating session for page %s", handle)
	session := &PageSession{
		PageID:    handle,
		Playback:  playback.NewCoordinator(handle, c.sink, c.closeDelay),
		Reveal:    reveal.NewGate(),
		CreatedAt: time.Now(),
	}

	session.listenForPlaybackEvents()

	c.sessions[handle] = session
	return session
}

func (s *PageSession) listenForPlaybackEvents() {
	logger := log.WithFields(log.Fields{
		"module": "controller",
		"pageID": s.PageID,
	})
	go func() {
		for notification := range s.Playback.Notifications() {
			logger.Tracef("playback %s list=%s key=%s",
				notification.Event, notification.ListID, notification.Key)
		}
	}()
}

// Reset drops a page's session so the next request starts idle. The
// coordinator is closed so the session's event listener exits instead
// of blocking on a channel nobody feeds anymore.
func (c *Controller) Reset(pageID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	handle := Handle(pageID)
	if session, ok := c.sessions[handle]; ok {
		session.Playback.Close()
	}
	delete(c.sessions, handle)
}
