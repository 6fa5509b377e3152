package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialModeFollowsSeed(t *testing.T) {
	assert.Equal(t, ModeFilter, InitialMode([]Match{defaultMatch("a", "b")}))
	assert.Equal(t, ModeSearch, InitialMode(nil))

	s := NewSession([]Match{defaultMatch("a", "b")}, nil)
	assert.Equal(t, ModeFilter, s.Mode())

	s = NewSession(nil, nil)
	assert.Equal(t, ModeSearch, s.Mode())
}

func TestModeToggle(t *testing.T) {
	assert.Equal(t, ModeSearch, ModeFilter.Toggle())
	assert.Equal(t, ModeFilter, ModeSearch.Toggle())
}

func TestSetModeResetsViewToModeBaseline(t *testing.T) {
	baseline := []Match{defaultMatch("GitHub", "octocat"), defaultMatch("Bank", "alice")}
	db := &fakeDB{name: "vault", entries: []Entry{&fakeEntry{title: "Found", sequence: "{ENTER}"}}}
	s := NewSession(baseline, []Database{db})

	// Entering search mode empties the view until a query arrives.
	refocus := s.SetMode(ModeSearch, "")
	assert.True(t, refocus)
	assert.Empty(t, s.View())

	// Back to filter with a pending query re-applies it immediately.
	refocus = s.SetMode(ModeFilter, "git")
	assert.True(t, refocus)
	require.Len(t, s.View(), 1)
	assert.Equal(t, "GitHub", s.View()[0].Entry.Title())

	// Switching to the already-active mode does nothing.
	assert.False(t, s.SetMode(ModeFilter, "git"))
}

func TestExecuteDispatchesByMode(t *testing.T) {
	baseline := []Match{defaultMatch("GitHub", "octocat"), defaultMatch("Bank", "alice")}
	db := &fakeDB{name: "vault", entries: []Entry{&fakeEntry{title: "Remote", sequence: "{ENTER}"}}}
	s := NewSession(baseline, []Database{db})

	view := s.Execute("bank")
	require.Len(t, view, 1)
	assert.Equal(t, "Bank", view[0].Entry.Title())
	assert.Empty(t, db.queries, "filter mode never hits the databases")

	s.SetMode(ModeSearch, "")
	view = s.Execute("remote")
	require.Len(t, view, 1)
	assert.Equal(t, "Remote", view[0].Entry.Title())
	assert.Equal(t, []string{"remote"}, db.queries)
}

func TestCommitScenario(t *testing.T) {
	entry := &fakeEntry{
		title:    "EntryA",
		username: "alice",
		password: "hunter2",
		sequence: "{USERNAME}{TAB}{PASSWORD}{ENTER}",
	}
	seed := []Match{{Entry: entry, Sequence: "{USERNAME}{TAB}{PASSWORD}{ENTER}"}}
	s := NewSession(seed, nil)
	require.Equal(t, ModeFilter, s.Mode())

	s.Execute("")
	s.Select(0)

	res, err := s.Resolve(TypePassword)
	require.NoError(t, err)
	assert.Equal(t, ResultType, res.Kind)
	assert.Same(t, entry, res.Match.Entry.(*fakeEntry))
	assert.Equal(t, "{PASSWORD}", res.Match.Sequence, "matched sequence is overridden by the placeholder")

	assert.Equal(t, StateCommitted, s.State())
	activated, ok := s.Activated()
	require.True(t, ok)
	assert.Equal(t, "{PASSWORD}", activated.Sequence)
}

func TestActivateCommitsCurrentMatch(t *testing.T) {
	seed := []Match{defaultMatch("GitHub", "octocat"), defaultMatch("Bank", "alice")}
	s := NewSession(seed, nil)
	s.Select(1)

	m, ok := s.Activate()
	require.True(t, ok)
	assert.Equal(t, "Bank", m.Entry.Title())
	assert.Equal(t, StateCommitted, s.State())

	// Terminal states are sticky.
	_, ok = s.Activate()
	assert.False(t, ok)
	assert.False(t, s.Cancel())
}

func TestActivateWithoutSelectionIsNoop(t *testing.T) {
	s := NewSession([]Match{defaultMatch("a", "b")}, nil)
	_, ok := s.Activate()
	assert.False(t, ok)
	assert.Equal(t, StateOpen, s.State())
}

func TestCancelScenarioEmitsRejectedExactlyOnce(t *testing.T) {
	s := NewSession([]Match{defaultMatch("a", "b")}, nil)

	assert.True(t, s.Cancel(), "first close reports the rejection")
	assert.False(t, s.Cancel(), "second close is silent")
	assert.Equal(t, StateCancelled, s.State())

	_, ok := s.Activated()
	assert.False(t, ok, "no commit was emitted")
}

func TestCopyActionClosesWithoutCommit(t *testing.T) {
	entry := &fakeEntry{title: "EntryA", username: "alice", password: "hunter2"}
	s := NewSession([]Match{{Entry: entry, Sequence: "{ENTER}"}}, nil)
	s.Select(0)

	res, err := s.Resolve(CopyPassword)
	require.NoError(t, err)
	assert.Equal(t, ResultCopy, res.Kind)
	assert.Equal(t, "hunter2", res.Value)

	assert.Equal(t, StateCancelled, s.State())
	_, ok := s.Activated()
	assert.False(t, ok)
}

func TestResolveWithoutSelection(t *testing.T) {
	s := NewSession([]Match{defaultMatch("a", "b")}, nil)
	_, err := s.Resolve(TypeUsername)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, StateOpen, s.State(), "NoSelection recovers locally")
}

func TestAvailabilityFollowsSelection(t *testing.T) {
	entry := &fakeEntry{title: "E", username: "alice", totp: "123456"}
	s := NewSession([]Match{{Entry: entry, Sequence: "{ENTER}"}}, nil)

	assert.Equal(t, Availability{}, s.Availability(), "nothing selected, everything disabled")

	s.Select(0)
	assert.Equal(t, Availability{Username: true, Password: false, TOTP: true}, s.Availability())
}

func TestMoveDownFromNoneSelectsFirstRow(t *testing.T) {
	s := NewSession([]Match{defaultMatch("a", "b"), defaultMatch("c", "d")}, nil)
	_, ok := s.Current()
	require.False(t, ok)

	s.MoveDown()
	m, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "a", m.Entry.Title())
}
