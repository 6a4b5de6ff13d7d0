package links

import (
	"strconv"
	"strings"
)

// Platform identifies where a link points. Everything the registry does
// not know about is normalized to PlatformCustom.
type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformAppleMusic Platform = "appleMusic"
	PlatformSoundCloud Platform = "soundCloud"
	PlatformYouTube    Platform = "youtube"
	PlatformInstagram  Platform = "instagram"
	PlatformTwitter    Platform = "twitter"
	PlatformTikTok     Platform = "tiktok"
	PlatformFacebook   Platform = "facebook"
	PlatformCustom     Platform = "custom"
)

// Behavior decides what a click on the link does.
type Behavior string

const (
	BehaviorEmbed         Behavior = "embed"
	BehaviorEmbedFloating Behavior = "embed-floating"
	BehaviorRedirect      Behavior = "redirect"
)

// Category is the coarse grouping reported to analytics.
type Category string

const (
	CategoryStreaming Category = "streaming"
	CategorySocial    Category = "social"
	CategoryCustom    Category = "custom"
)

// Link is the canonical shape every renderer consumes. Section data is
// normalized into this exactly once, at the boundary.
type Link struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	Behavior Behavior `json:"behavior"`
	Label    string   `json:"label"`
}

// Key identifies a link for playback purposes. Two links to the same
// URL on the same platform share one inline embed slot.
func (l Link) Key() string {
	return string(l.Platform) + "|" + l.URL
}

// Category returns the coarse type carried on analytics events.
func (l Link) Category() Category {
	if info, ok := Registry[l.Platform]; ok {
		return info.Category
	}
	return CategoryCustom
}

// Actionable reports whether the link can be rendered as a control.
// Links without a URL are rendered disabled, never dropped.
func (l Link) Actionable() bool {
	return l.URL != ""
}

// Normalize converts a section's raw data into the canonical link list.
// A non-empty unified `links` array wins entirely over legacy fields;
// this is an intentional precedence rule, not a merge. The input is
// never mutated and repeated calls yield identical output.
func Normalize(data map[string]any) []Link {
	if unified, present := unifiedLinks(data); present {
		return unified
	}
	return legacyLinks(data)
}

// unifiedLinks reports presence separately from its output: a non-empty
// array whose entries are all malformed still suppresses the legacy
// fields and yields an empty list.
func unifiedLinks(data map[string]any) ([]Link, bool) {
	raw, ok := data["links"].([]any)
	if !ok || len(raw) == 0 {
		return nil, false
	}

	out := make([]Link, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		link := Link{
			ID:       stringField(m, "id"),
			Platform: Platform(stringField(m, "platform")),
			URL:      stringField(m, "url"),
			Behavior: Behavior(stringField(m, "behavior")),
			Label:    stringField(m, "label"),
		}

		info, known := Registry[link.Platform]
		if !known {
			// Unrecognized platform passes through custom-shaped
			// with whatever label was stored.
			link.Platform = PlatformCustom
			info = Registry[PlatformCustom]
		}
		if link.Behavior == "" {
			link.Behavior = info.DefaultBehavior
		}
		if link.Label == "" && known {
			link.Label = info.Name
		}
		if link.ID == "" {
			link.ID = defaultID(link.Platform, i)
		}
		out = append(out, link)
	}
	return out, true
}

func legacyLinks(data map[string]any) []Link {
	var out []Link
	for _, platform := range legacyOrder {
		url := stringField(data, string(platform))
		if url == "" {
			continue
		}
		info := Registry[platform]
		out = append(out, Link{
			ID:       string(platform),
			Platform: platform,
			URL:      url,
			Behavior: info.DefaultBehavior,
			Label:    info.Name,
		})
	}

	others, _ := data["otherLinks"].([]any)
	for i, entry := range others {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		link := Link{
			ID:       stringField(m, "id"),
			Platform: PlatformCustom,
			URL:      stringField(m, "url"),
			Behavior: BehaviorRedirect,
			Label:    stringField(m, "label"),
		}
		if link.ID == "" {
			link.ID = defaultID(PlatformCustom, i)
		}
		out = append(out, link)
	}
	return out
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// defaultID must be deterministic so Normalize stays idempotent; editor
// code assigns real uuids when links are created, this only covers
// stored data that predates ids.
func defaultID(platform Platform, position int) string {
	if platform == PlatformCustom {
		return "custom-" + strconv.Itoa(position)
	}
	return string(platform)
}
