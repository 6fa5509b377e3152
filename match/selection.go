package match

// Selection tracks the highlighted row of the current view. An index of
// -1 means nothing is selected; callers should disable action
// affordances in that state.
type Selection struct {
	view  []Match
	index int
}

// NewSelection starts with an empty view and no selection.
func NewSelection() *Selection {
	return &Selection{index: -1}
}

// SetView replaces the visible match list. A previous selection is kept
// only if its index is still in range for the new view; otherwise the
// selection resets to none rather than clamping to the nearest row.
func (s *Selection) SetView(view []Match) {
	s.view = view
	if s.index < 0 || s.index >= len(view) {
		s.index = -1
	}
}

// View returns the currently visible matches.
func (s *Selection) View() []Match {
	return s.view
}

// Select moves the selection to index i, or clears it when i is out of
// range.
func (s *Selection) Select(i int) {
	if i < 0 || i >= len(s.view) {
		s.index = -1
		return
	}
	s.index = i
}

// Index returns the selected row, -1 when none.
func (s *Selection) Index() int {
	return s.index
}

// MoveUp shifts the selection one row up. No wraparound.
func (s *Selection) MoveUp() {
	if s.index > 0 {
		s.index--
	}
}

// MoveDown shifts the selection one row down. No wraparound.
func (s *Selection) MoveDown() {
	if s.index >= 0 && s.index < len(s.view)-1 {
		s.index++
	}
}

// Current returns the selected match, if any.
func (s *Selection) Current() (Match, bool) {
	if s.index < 0 || s.index >= len(s.view) {
		return Match{}, false
	}
	return s.view[s.index], true
}
