package controller

import (
	"sync"
	"testing"
	"time"
)

func TestGetSessionReuse(t *testing.T) {
	c := NewController(nil, 0)

	first := c.GetSession("My Band")
	second := c.GetSession("my-band")
	if first != second {
		t.Error("handle normalization should map both spellings to one session")
	}
	if first.PageID != "my-band" {
		t.Errorf("PageID = %q, want slug form", first.PageID)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	c := NewController(nil, 0)

	a := c.GetSession("artist-a")
	b := c.GetSession("artist-b")
	if a == b {
		t.Fatal("distinct pages share a session")
	}

	a.Reveal.MarkVisible("s1")
	if b.Reveal.Visible("s1") {
		t.Error("reveal state leaked between pages")
	}
}

func TestReset(t *testing.T) {
	c := NewController(nil, 0)

	before := c.GetSession("page")
	before.Reveal.MarkVisible("s1")
	c.Reset("page")

	after := c.GetSession("page")
	if after == before {
		t.Error("Reset should drop the session")
	}
	if after.Reveal.Visible("s1") {
		t.Error("reset session kept old reveal state")
	}
}

func TestResetClosesPlayback(t *testing.T) {
	c := NewController(nil, 0)

	session := c.GetSession("page")
	notifications := session.Playback.Notifications()
	c.Reset("page")

	// The dropped session's notification channel closes so its
	// listener goroutine exits rather than leaking.
	select {
	case _, open := <-notifications:
		if open {
			t.Error("expected the channel closed, got a notification")
		}
	case <-time.After(time.Second):
		t.Fatal("notifications channel still open after Reset")
	}
}

func TestGetSessionConcurrent(t *testing.T) {
	c := NewController(nil, 0)

	var wg sync.WaitGroup
	sessions := make([]*PageSession, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = c.GetSession("same-page")
		}(i)
	}
	wg.Wait()

	for i := 1; i < 50; i++ {
		if sessions[i] != sessions[0] {
			t.Fatal("concurrent GetSession returned different sessions")
		}
	}
}
