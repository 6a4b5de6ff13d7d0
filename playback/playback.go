package playback

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"fanlink/analytics"
	"fanlink/links"
)

// Action tells the caller what effect a click produced.
type Action string

const (
	ActionOpenInline   Action = "open_inline"
	ActionCloseInline  Action = "close_inline"
	ActionOpenFloating Action = "open_floating"
	ActionRedirect     Action = "redirect"
	ActionNone         Action = "none"
)

type NotificationType string

const (
	InlineOpened    NotificationType = "inline_opened"
	InlineClosed    NotificationType = "inline_closed"
	FloatingOpened  NotificationType = "floating_opened"
	FloatingClosing NotificationType = "floating_closing"
	FloatingCleared NotificationType = "floating_cleared"
)

type Notification struct {
	Event  NotificationType
	ListID string
	Key    string
}

// FloatingState is the page-wide floating player slot. Hidden marks
// the exit-animation phase before the slot is cleared.
type FloatingState struct {
	Platform links.Platform `json:"platform"`
	URL      string         `json:"url"`
	Hidden   bool           `json:"hidden"`
}

// Coordinator owns the two playback axes: one inline embed key per
// rendering list, one floating slot per page. Its transition methods
// are the only mutation surface; nothing else may set playback state.
type Coordinator struct {
	mu            sync.Mutex
	pageID        string
	inline        map[string]string
	floating      *FloatingState
	teardown      *time.Timer
	closeDelay    time.Duration
	notifications chan Notification
	closed        bool
	sink          analytics.Sink
	logger        *log.Entry
}

// DefaultCloseDelay covers the floating player's exit animation.
const DefaultCloseDelay = 300 * time.Millisecond

func NewCoordinator(pageID string, sink analytics.Sink, closeDelay time.Duration) *Coordinator {
	if sink == nil {
		sink = analytics.Nop{}
	}
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	return &Coordinator{
		pageID:        pageID,
		inline:        make(map[string]string),
		closeDelay:    closeDelay,
		notifications: make(chan Notification, 100),
		sink:          sink,
		logger: log.WithFields(log.Fields{
			"module": "playback",
			"pageID": pageID,
		}),
	}
}

// Notifications announces transitions to observers. Sends never block;
// a slow observer loses notifications, not playback state.
func (c *Coordinator) Notifications() <-chan Notification {
	return c.notifications
}

// Click runs one transition for a user click and returns the action
// the rendering surface should take. Exactly one analytics event is
// emitted per click, whatever the behavior.
func (c *Coordinator) Click(listID string, link links.Link) Action {
	if !link.Actionable() {
		return ActionNone
	}
	defer c.track(link)

	switch link.Behavior {
	case links.BehaviorEmbed:
		return c.clickInline(listID, link)
	case links.BehaviorEmbedFloating:
		return c.clickFloating(link)
	default:
		c.logger.Tracef("redirecting to %s", link.URL)
		return ActionRedirect
	}
}

func (c *Coordinator) clickInline(listID string, link links.Link) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := link.Key()
	if c.inline[listID] == key {
		// Same key again closes it.
		delete(c.inline, listID)
		c.notify(Notification{Event: InlineClosed, ListID: listID, Key: key})
		return ActionCloseInline
	}

	// A different key replaces this list's embed; other lists keep
	// their own independent inline state.
	c.inline[listID] = key
	c.notify(Notification{Event: InlineOpened, ListID: listID, Key: key})
	return ActionOpenInline
}

func (c *Coordinator) clickFloating(link links.Link) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A pending teardown from an earlier close must not clear the
	// slot we are about to fill.
	if c.teardown != nil {
		c.teardown.Stop()
		c.teardown = nil
	}

	c.floating = &FloatingState{Platform: link.Platform, URL: link.URL}
	c.notify(Notification{Event: FloatingOpened, Key: link.Key()})
	return ActionOpenFloating
}

// CloseFloating starts the two-phase teardown: the slot is marked
// hidden immediately, then cleared after the close delay. Callers must
// not assume synchronous teardown.
func (c *Coordinator) CloseFloating() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.floating == nil || c.floating.Hidden {
		return
	}
	c.floating.Hidden = true
	c.notify(Notification{Event: FloatingClosing})

	c.teardown = time.AfterFunc(c.closeDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.floating == nil || !c.floating.Hidden {
			return
		}
		c.floating = nil
		c.teardown = nil
		c.notify(Notification{Event: FloatingCleared})
	})
}

// InlineKey returns the active inline embed key for one rendering
// list, if any.
func (c *Coordinator) InlineKey(listID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key, ok := c.inline[listID]
	return key, ok
}

// Floating returns a copy of the floating slot, or nil when idle.
func (c *Coordinator) Floating() *FloatingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.floating == nil {
		return nil
	}
	state := *c.floating
	return &state
}

// Close cancels any pending teardown and closes the notifications
// channel so observers drain and exit. Transitions after Close still
// work; they just stop announcing.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.teardown != nil {
		c.teardown.Stop()
		c.teardown = nil
	}
	close(c.notifications)
}

func (c *Coordinator) notify(n Notification) {
	if c.closed {
		return
	}
	select {
	case c.notifications <- n:
	default:
	}
}

func (c *Coordinator) track(link links.Link) {
	c.sink.Track("link_click", map[string]any{
		"pageId": c.pageID,
		"url":    link.URL,
		"type":   string(link.Category()),
		"label":  link.Label,
	})
}
