package match

// SessionState tracks the lifecycle of one picker interaction.
type SessionState int

const (
	// StateOpen accepts filtering, searching and navigation.
	StateOpen SessionState = iota
	// StateCommitted means a match was activated.
	StateCommitted
	// StateCancelled means the session ended without a commit.
	StateCancelled
)

// Session ties candidates, selection and mode together for a single
// picker interaction. It is created per interaction and discarded at a
// terminal state; none of its methods are safe for concurrent use.
type Session struct {
	candidates *Candidates
	selection  *Selection
	mode       Mode
	state      SessionState

	activated Match
}

// NewSession seeds a session from the caller-supplied initial matches
// and databases. The initial view is the full baseline; the starting
// mode is search when the baseline is empty, filter otherwise. Nothing
// is selected until the caller selects or navigates.
func NewSession(initial []Match, dbs []Database) *Session {
	s := &Session{
		candidates: NewCandidates(initial, dbs),
		selection:  NewSelection(),
		mode:       InitialMode(initial),
	}
	s.replaceView(initial)
	return s
}

// Mode returns the active input mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// State returns the lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// View returns the currently visible matches.
func (s *Session) View() []Match {
	return s.selection.View()
}

// Current returns the selected match, if any.
func (s *Session) Current() (Match, bool) {
	return s.selection.Current()
}

// Index returns the selected row of the view, -1 when none.
func (s *Session) Index() int {
	return s.selection.Index()
}

// Availability reports which actions the selected match supports.
func (s *Session) Availability() Availability {
	m, ok := s.selection.Current()
	return AvailabilityFor(m, ok)
}

// MoveUp moves the selection one row up.
func (s *Session) MoveUp() { s.selection.MoveUp() }

// MoveDown moves the selection one row down, selecting the first row
// when nothing was selected yet.
func (s *Session) MoveDown() {
	if s.selection.Index() < 0 && len(s.selection.View()) > 0 {
		s.selection.Select(0)
		return
	}
	s.selection.MoveDown()
}

// Select moves the selection to row i of the view.
func (s *Session) Select(i int) { s.selection.Select(i) }

// SetMode switches the input mode. Entering filter resets the view to
// the full baseline and re-applies query; entering search empties the
// view until a query arrives. It returns true when the caller should
// move focus back to the query input.
func (s *Session) SetMode(m Mode, query string) (refocus bool) {
	if s.mode == m || s.state != StateOpen {
		return false
	}
	s.mode = m
	if m == ModeFilter {
		s.replaceView(s.candidates.Filter(query))
	} else {
		s.replaceView(s.candidates.Search(query))
	}
	return true
}

// Execute runs the active mode's operation with the given query and
// replaces the view with its result.
func (s *Session) Execute(query string) []Match {
	if s.state != StateOpen {
		return s.selection.View()
	}
	var view []Match
	if s.mode == ModeFilter {
		view = s.candidates.Filter(query)
	} else {
		view = s.candidates.Search(query)
	}
	s.replaceView(view)
	return view
}

// Activate commits the selected match and moves the session to its
// terminal committed state. It reports false when nothing is selected
// or the session already ended.
func (s *Session) Activate() (Match, bool) {
	if s.state != StateOpen {
		return Match{}, false
	}
	m, ok := s.selection.Current()
	if !ok {
		return Match{}, false
	}
	s.state = StateCommitted
	s.activated = m
	return m, true
}

// Resolve applies an entry action to the current selection. Type
// results commit the session; copy results cancel it (the caller
// copies the value and closes without a commit).
func (s *Session) Resolve(action ActionKind) (Result, error) {
	if s.state != StateOpen {
		return Result{}, ErrNoSelection
	}
	m, ok := s.selection.Current()
	res, err := Resolve(m, ok, action)
	if err != nil {
		return Result{}, err
	}
	if res.Kind == ResultType {
		s.state = StateCommitted
		s.activated = res.Match
	} else {
		s.state = StateCancelled
	}
	return res, nil
}

// Cancel ends the session without a commit. It returns true only on
// the transition out of the open state, so a rejected notification is
// emitted at most once however many times the close path runs.
func (s *Session) Cancel() bool {
	if s.state != StateOpen {
		return false
	}
	s.state = StateCancelled
	return true
}

// Activated returns the committed match after a successful Activate or
// type-action Resolve.
func (s *Session) Activated() (Match, bool) {
	if s.state != StateCommitted {
		return Match{}, false
	}
	return s.activated, true
}

func (s *Session) replaceView(view []Match) {
	s.selection.SetView(view)
}
