package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

type ClickRecord struct {
	ID        int64
	PageID    string
	URL       string
	LinkType  string
	Label     string
	ClickedAt time.Time
}

type TopLinkRecord struct {
	URL         string
	Label       string
	ClickCount  int
	LastClicked time.Time
}

// New creates a new Database instance. dbPath defaults to DB_PATH env var or /app/data/fanlink.db.
func New() (*Database, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "/app/data/fanlink.db"
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS click_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			link_type TEXT NOT NULL DEFAULT 'custom',
			label TEXT NOT NULL DEFAULT '',
			clicked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_click_events_page_id ON click_events(page_id)`,
		`CREATE INDEX IF NOT EXISTS idx_click_events_clicked_at ON click_events(page_id, clicked_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_click_events_url ON click_events(page_id, url)`,
		`CREATE TABLE IF NOT EXISTS section_impressions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id TEXT NOT NULL DEFAULT '',
			section_type TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_section_impressions_page ON section_impressions(page_id, seen_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// Record implements the analytics recorder. Unknown event types are
// logged and dropped rather than failing the dispatcher.
func (d *Database) Record(eventType string, payload map[string]any) error {
	switch eventType {
	case "link_click":
		return d.RecordClick(
			str(payload, "pageId"),
			str(payload, "url"),
			str(payload, "type"),
			str(payload, "label"),
		)
	case "section_impression":
		return d.RecordImpression(
			str(payload, "pageId"),
			str(payload, "sectionType"),
			intField(payload, "position"),
		)
	default:
		log.Tracef("ignoring unrecorded event type %s", eventType)
		return nil
	}
}

// RecordClick inserts one link click event.
func (d *Database) RecordClick(pageID, url, linkType, label string) error {
	_, err := d.db.Exec(
		`INSERT INTO click_events (page_id, url, link_type, label, clicked_at)
		 VALUES (?, ?, ?, ?, ?)`,
		pageID, url, linkType, label, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

// RecordImpression inserts one structural boundary event.
func (d *Database) RecordImpression(pageID, sectionType string, position int) error {
	_, err := d.db.Exec(
		`INSERT INTO section_impressions (page_id, section_type, position, seen_at)
		 VALUES (?, ?, ?, ?)`,
		pageID, sectionType, position, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record impression: %w", err)
	}
	return nil
}

// GetRecentClicks returns the most recent clicks for a page.
func (d *Database) GetRecentClicks(pageID string, limit int) ([]ClickRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT id, page_id, url, link_type, label, clicked_at
		 FROM click_events
		 WHERE page_id = ?
		 ORDER BY clicked_at DESC
		 LIMIT ?`,
		pageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	var records []ClickRecord
	for rows.Next() {
		var r ClickRecord
		var clickedAt string
		if err := rows.Scan(&r.ID, &r.PageID, &r.URL, &r.LinkType, &r.Label, &clickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan click row: %w", err)
		}
		r.ClickedAt = parseStoredTime(clickedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetTopLinks returns the most clicked links for a page.
func (d *Database) GetTopLinks(pageID string, limit int) ([]TopLinkRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT url, label, COUNT(*) as click_count, MAX(clicked_at) as last_clicked
		 FROM click_events
		 WHERE page_id = ?
		 GROUP BY url
		 ORDER BY click_count DESC, last_clicked DESC
		 LIMIT ?`,
		pageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query top links: %w", err)
	}
	defer rows.Close()

	var records []TopLinkRecord
	for rows.Next() {
		var r TopLinkRecord
		var lastClicked string
		if err := rows.Scan(&r.URL, &r.Label, &r.ClickCount, &lastClicked); err != nil {
			return nil, fmt.Errorf("failed to scan top link row: %w", err)
		}
		r.LastClicked = parseStoredTime(lastClicked)
		records = append(records, r)
	}
	return records, rows.Err()
}

// parseStoredTime handles the datetime formats found in the table:
// RFC3339Nano for rows we write, plain SQLite datetimes for rows
// created by the CURRENT_TIMESTAMP default.
func parseStoredTime(value string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t
		}
	}
	log.Warnf("failed to parse stored timestamp '%s' with all known formats", value)
	return time.Now()
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
