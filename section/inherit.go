package section

import (
	log "github.com/sirupsen/logrus"
)

// Types that never defer to the artist page, regardless of what the
// stored flag says. Enforced here, not left to caller discipline.
var neverInherited = map[Type]bool{
	TypeHero:      true,
	TypeTracklist: true,
}

// ResolveData returns the section's effective payload. When the
// section declares inheritFromArtist, the first artist section of the
// same type supplies the data, with the flag re-attached so renderers
// can still show the inherited indicator. Missing target falls back to
// local data. Neither layout is ever written to.
func ResolveData(sec Section, artistLayout []Section) Data {
	if !sec.Data.InheritFromArtist() || neverInherited[sec.Type] {
		return sec.Data
	}

	for _, candidate := range artistLayout {
		if candidate.Type != sec.Type {
			continue
		}
		resolved := candidate.Data.Clone()
		resolved["inheritFromArtist"] = true
		return resolved
	}

	log.Tracef("no artist section of type %s to inherit, using local data", sec.Type)
	return sec.Data
}
