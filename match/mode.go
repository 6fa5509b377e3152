package match

// Mode selects what typing in the query box does: narrow the seeded
// match list in place, or run a fresh search against the databases.
type Mode int

const (
	// ModeFilter narrows the original candidate list.
	ModeFilter Mode = iota
	// ModeSearch re-queries the configured databases.
	ModeSearch
)

// InitialMode picks the starting mode for a session: search when there
// is nothing to filter, filter otherwise.
func InitialMode(initial []Match) Mode {
	if len(initial) == 0 {
		return ModeSearch
	}
	return ModeFilter
}

// Toggle flips between the two modes.
func (m Mode) Toggle() Mode {
	if m == ModeFilter {
		return ModeSearch
	}
	return ModeFilter
}

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "filter"
}
