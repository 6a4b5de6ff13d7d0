// Package compose walks a stored layout and produces the render plan
// for one public page: inheritance resolved, links normalized, reveal
// and countdown gating attached.
package compose

import (
	"encoding/json"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"fanlink/analytics"
	"fanlink/countdown"
	"fanlink/links"
	"fanlink/reveal"
	"fanlink/section"
)

// Request carries everything the hosting CRUD layer persists for one
// page render. ArtistLayout is only set for release-scoped pages and
// is read, never written.
type Request struct {
	PageID       string            `json:"pageId"`
	Layout       json.RawMessage   `json:"layout"`
	ArtistLayout []section.Section `json:"artistLayout,omitempty"`
	ReleaseDate  *time.Time        `json:"releaseDate,omitempty"`
}

// RenderedSection is one composed block, ready for the rendering
// client.
type RenderedSection struct {
	ID          string              `json:"id"`
	Type        section.Type        `json:"type"`
	Data        section.Data        `json:"data"`
	Inherited   bool                `json:"inherited"`
	Links       []links.Link        `json:"links,omitempty"`
	Collapsible bool                `json:"collapsible"`
	Collapsed   bool                `json:"collapsed"`
	Divider     bool                `json:"divider"`
	Reveal      *reveal.Options     `json:"reveal,omitempty"`
	Countdown   *countdown.Snapshot `json:"countdown,omitempty"`
}

type Plan struct {
	PageID   string            `json:"pageId"`
	Sections []RenderedSection `json:"sections"`
}

type Composer struct {
	sink   analytics.Sink
	logger *log.Entry
}

func New(sink analytics.Sink) *Composer {
	if sink == nil {
		sink = analytics.Nop{}
	}
	return &Composer{
		sink: sink,
		logger: log.WithFields(log.Fields{
			"module": "compose",
		}),
	}
}

// Compose builds the plan in stored order. Malformed layout falls back
// to the default two-section page; composition itself never fails.
func (c *Composer) Compose(req Request) Plan {
	sections := section.ParseLayout(req.Layout)
	now := time.Now()

	plan := Plan{
		PageID:   req.PageID,
		Sections: make([]RenderedSection, 0, len(sections)),
	}

	for i, sec := range sections {
		data := section.ResolveData(sec, req.ArtistLayout)

		rendered := RenderedSection{
			ID:        sec.ID,
			Type:      sec.Type,
			Data:      data,
			Inherited: data.InheritFromArtist() && sec.Type != section.TypeHero && sec.Type != section.TypeTracklist,
			// Divider between consecutive sections, except right
			// after hero and after the last section.
			Divider: i < len(sections)-1 && sec.Type != section.TypeHero,
		}

		switch sec.Type {
		case section.TypeLinks:
			rendered.Links = links.Normalize(data)
		case section.TypeTracklist:
			rendered.Links = trackLinks(data)
		}

		if data.UseButton() {
			// Each disclosure is seeded closed and fully
			// independent; there is no accordion constraint.
			rendered.Collapsible = true
			rendered.Collapsed = true
		}

		if sec.Type == section.TypeHero {
			// Hero is never scroll-gated.
			if req.ReleaseDate != nil {
				snap := countdown.Take(req.ReleaseDate, now)
				rendered.Countdown = &snap
			}
		} else {
			opts := reveal.DefaultOptions
			rendered.Reveal = &opts
		}

		c.sink.Track("section_impression", map[string]any{
			"pageId":      req.PageID,
			"sectionType": string(sec.Type),
			"position":    i,
		})

		plan.Sections = append(plan.Sections, rendered)
	}

	c.logger.Debugf("composed %d sections for page %s", len(plan.Sections), req.PageID)
	return plan
}

// trackLinks turns tracklist entries into canonical links. The
// platform comes from the registry's URL patterns so a Bandcamp track
// degrades to a custom redirect instead of a broken embed.
func trackLinks(data section.Data) []links.Link {
	raw, _ := data["tracks"].([]any)
	out := make([]links.Link, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		title, _ := m["title"].(string)
		url, _ := m["url"].(string)

		platform := links.Detect(url)
		behavior := links.Registry[platform].DefaultBehavior
		link := links.Link{
			ID:       trackID(m, i),
			Platform: platform,
			URL:      url,
			Behavior: behavior,
			Label:    title,
		}
		if link.Label == "" {
			link.Label = links.Registry[platform].Name
		}
		out = append(out, link)
	}
	return out
}

func trackID(m map[string]any, position int) string {
	if id, _ := m["id"].(string); id != "" {
		return id
	}
	return "track-" + strconv.Itoa(position)
}
