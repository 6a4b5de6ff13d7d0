package section

// Editor operations over an ordered section list. All of them return a
// new slice; removal is immediate and local until the caller persists.

// Update shallow-merges a partial payload into the identified
// section's data.
func Update(sections []Section, id string, patch Data) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		merged := out[i].Data.Clone()
		for k, v := range patch {
			merged[k] = v
		}
		out[i].Data = merged
		break
	}
	return out
}

// Move relocates the section at index from to index to, preserving
// relative order of everything else. Out-of-range indexes are a no-op.
func Move(sections []Section, from, to int) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)

	rest := make([]Section, 0, len(out)+1)
	rest = append(rest, out[:to]...)
	rest = append(rest, moved)
	rest = append(rest, out[to:]...)
	return rest
}

// Remove filters out the identified section.
func Remove(sections []Section, id string) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.ID == id {
			continue
		}
		out = append(out, s)
	}
	return out
}
