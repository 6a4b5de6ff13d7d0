package section

import (
	"encoding/json"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Type is the closed set of section variants. Extending the page
// builder means adding a variant here plus its default data.
type Type string

const (
	TypeHero         Type = "hero"
	TypeLinks        Type = "links"
	TypeTracklist    Type = "tracklist"
	TypeMerch        Type = "merch"
	TypeTourDates    Type = "tour_dates"
	TypeVideo        Type = "video"
	TypeEmailCapture Type = "email_capture"
	TypeBio          Type = "bio"
	TypeContact      Type = "contact"
)

// Data is a section's free-form payload. Two flags are universal and
// type-independent: inheritFromArtist and useButton.
type Data map[string]any

// Section is one typed, configurable content block on a page.
type Section struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`
	Data Data   `json:"data"`
}

// InheritFromArtist reports the universal inheritance flag.
func (d Data) InheritFromArtist() bool {
	v, _ := d["inheritFromArtist"].(bool)
	return v
}

// UseButton reports whether the section is wrapped in a collapsible
// disclosure control.
func (d Data) UseButton() bool {
	v, _ := d["useButton"].(bool)
	return v
}

// Clone returns a shallow copy of the data map so callers can attach
// flags without writing back to stored layout.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func validType(t Type) bool {
	switch t {
	case TypeHero, TypeLinks, TypeTracklist, TypeMerch, TypeTourDates,
		TypeVideo, TypeEmailCapture, TypeBio, TypeContact:
		return true
	}
	return false
}

// ParseLayout decodes a stored layout value. Anything that is not a
// non-empty array of sections (legacy scalar, null, malformed JSON)
// yields the built-in default layout instead of an error: a bad stored
// value must never take the public page down.
func ParseLayout(raw json.RawMessage) []Section {
	if len(raw) == 0 {
		return DefaultLayout()
	}

	var sections []Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		log.Warnf("stored layout is not a section array, substituting default: %v", err)
		return DefaultLayout()
	}
	if len(sections) == 0 {
		return DefaultLayout()
	}

	for i := range sections {
		if sections[i].ID == "" {
			sections[i].ID = uuid.NewString()
		}
		if sections[i].Data == nil {
			sections[i].Data = Data{}
		}
		if !validType(sections[i].Type) {
			log.Warnf("unknown section type %q in stored layout", sections[i].Type)
		}
	}
	return sections
}

// DefaultLayout is the two-section fallback used for legacy or empty
// stored values.
func DefaultLayout() []Section {
	return []Section{
		New(TypeHero),
		New(TypeLinks),
	}
}

// New creates a section with the default data for its type.
func New(t Type) Section {
	return Section{
		ID:   uuid.NewString(),
		Type: t,
		Data: DefaultData(t),
	}
}

// DefaultData seeds a freshly created section's payload.
func DefaultData(t Type) Data {
	switch t {
	case TypeHero:
		return Data{"title": "", "subtitle": "", "imageUrl": ""}
	case TypeLinks:
		return Data{"links": []any{}}
	case TypeTracklist:
		return Data{"tracks": []any{}}
	case TypeMerch:
		return Data{"items": []any{}}
	case TypeTourDates:
		return Data{"dates": []any{}}
	case TypeVideo:
		return Data{"videoUrl": ""}
	case TypeEmailCapture:
		return Data{"heading": "Join the mailing list", "buttonText": "Subscribe"}
	case TypeBio:
		return Data{"text": ""}
	case TypeContact:
		return Data{"email": "", "phone": ""}
	}
	return Data{}
}
