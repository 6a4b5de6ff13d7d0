package database

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *Database {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "fanlink.db"))
	d, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRecordAndQueryClicks(t *testing.T) {
	d := testDB(t)

	clicks := []struct{ url, linkType, label string }{
		{"https://open.spotify.com/track/a", "streaming", "Spotify"},
		{"https://open.spotify.com/track/a", "streaming", "Spotify"},
		{"https://instagram.com/artist", "social", "Instagram"},
	}
	for _, c := range clicks {
		if err := d.RecordClick("artist-page", c.url, c.linkType, c.label); err != nil {
			t.Fatalf("RecordClick() error: %v", err)
		}
	}

	recent, err := d.GetRecentClicks("artist-page", 10)
	if err != nil {
		t.Fatalf("GetRecentClicks() error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d clicks, want 3", len(recent))
	}

	top, err := d.GetTopLinks("artist-page", 10)
	if err != nil {
		t.Fatalf("GetTopLinks() error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d top links, want 2", len(top))
	}
	if top[0].URL != "https://open.spotify.com/track/a" || top[0].ClickCount != 2 {
		t.Errorf("top link = %+v, want spotify with 2 clicks", top[0])
	}
	if time.Since(top[0].LastClicked) > time.Minute {
		t.Errorf("last clicked = %v, want recent", top[0].LastClicked)
	}
}

func TestRecordDispatchesByEventType(t *testing.T) {
	d := testDB(t)

	err := d.Record("link_click", map[string]any{
		"pageId": "p", "url": "u", "type": "custom", "label": "L",
	})
	if err != nil {
		t.Fatalf("Record(link_click) error: %v", err)
	}

	err = d.Record("section_impression", map[string]any{
		"pageId": "p", "sectionType": "hero", "position": float64(0),
	})
	if err != nil {
		t.Fatalf("Record(section_impression) error: %v", err)
	}

	// Unknown events are dropped, not errors.
	if err := d.Record("mystery", nil); err != nil {
		t.Errorf("Record(unknown) error: %v", err)
	}

	recent, err := d.GetRecentClicks("p", 5)
	if err != nil {
		t.Fatalf("GetRecentClicks() error: %v", err)
	}
	if len(recent) != 1 || recent[0].Label != "L" {
		t.Errorf("clicks = %+v, want one labeled L", recent)
	}
}

func TestQueriesScopedToPage(t *testing.T) {
	d := testDB(t)

	d.RecordClick("page-a", "u1", "custom", "")
	d.RecordClick("page-b", "u2", "custom", "")

	top, err := d.GetTopLinks("page-a", 10)
	if err != nil {
		t.Fatalf("GetTopLinks() error: %v", err)
	}
	if len(top) != 1 || top[0].URL != "u1" {
		t.Errorf("page-a top links = %+v, leaked another page's clicks", top)
	}
}
