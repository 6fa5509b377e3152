package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntry implements Entry for tests.
type fakeEntry struct {
	title        string
	username     string
	password     string
	totp         string
	sequence     string
	associations []string
}

func (e *fakeEntry) Title() string             { return e.title }
func (e *fakeEntry) Username() string          { return e.username }
func (e *fakeEntry) Password() string          { return e.password }
func (e *fakeEntry) TOTP() string              { return e.totp }
func (e *fakeEntry) HasTOTP() bool             { return e.totp != "" }
func (e *fakeEntry) EffectiveSequence() string { return e.sequence }
func (e *fakeEntry) Associations() []string    { return e.associations }

// fakeDB implements Database with canned results.
type fakeDB struct {
	name    string
	entries []Entry
	err     error
	queries []string
}

func (d *fakeDB) Name() string { return d.name }

func (d *fakeDB) Search(query string) ([]Entry, error) {
	d.queries = append(d.queries, query)
	if d.err != nil {
		return nil, d.err
	}
	return d.entries, nil
}

func seqs(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Sequence
	}
	return out
}

func defaultMatch(title, username string) Match {
	return Match{
		Entry:    &fakeEntry{title: title, username: username, sequence: "{USERNAME}{TAB}{PASSWORD}{ENTER}"},
		Sequence: "{USERNAME}{TAB}{PASSWORD}{ENTER}",
	}
}

func TestFilterEmptyQueryReturnsFullBaseline(t *testing.T) {
	baseline := []Match{
		defaultMatch("GitHub", "octocat"),
		defaultMatch("GitLab", "tanuki"),
		defaultMatch("Bank", "alice"),
	}
	c := NewCandidates(baseline, nil)

	got := c.Filter("")
	require.Len(t, got, 3)
	assert.Equal(t, baseline, got)
}

func TestFilterMatchesTitleUsernameAndSequence(t *testing.T) {
	baseline := []Match{
		defaultMatch("GitHub", "octocat"),
		defaultMatch("GitLab", "tanuki"),
		{Entry: &fakeEntry{title: "Router", username: "admin"}, Sequence: "{PASSWORD}{ENTER}"},
	}
	c := NewCandidates(baseline, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"git", []string{"GitHub", "GitLab"}},
		{"HUB", []string{"GitHub"}},
		{"tanuki", []string{"GitLab"}},
		{"{tab}", []string{"GitHub", "GitLab"}},
		{"admin", []string{"Router"}},
		{"nothing matches this", nil},
	}
	for _, tc := range tests {
		got := c.Filter(tc.query)
		var titles []string
		for _, m := range got {
			titles = append(titles, m.Entry.Title())
		}
		assert.Equal(t, tc.want, titles, "query %q", tc.query)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	baseline := []Match{
		defaultMatch("GitHub", "octocat"),
		defaultMatch("GitLab", "tanuki"),
		defaultMatch("Bank", "alice"),
	}
	once := NewCandidates(baseline, nil).Filter("git")
	twice := NewCandidates(once, nil).Filter("git")
	assert.Equal(t, once, twice)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	db := &fakeDB{name: "vault", entries: []Entry{&fakeEntry{title: "GitHub", sequence: "{ENTER}"}}}
	c := NewCandidates(nil, []Database{db})

	assert.Empty(t, c.Search(""))
	assert.Empty(t, db.queries, "empty query must not hit the database")
}

func TestSearchDedupesSequencesPerEntry(t *testing.T) {
	entry := &fakeEntry{
		title:    "GitHub",
		sequence: "{USERNAME}{ENTER}",
		associations: []string{
			"{USERNAME}{ENTER}",
			"{PASSWORD}{ENTER}",
		},
	}
	db := &fakeDB{name: "vault", entries: []Entry{entry}}
	c := NewCandidates(nil, []Database{db})

	got := c.Search("github")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"{USERNAME}{ENTER}", "{PASSWORD}{ENTER}"}, seqs(got))
}

func TestSearchDedupIsScopedPerEntry(t *testing.T) {
	// Two entries offering the same sequence both stay in the result;
	// dedup never crosses entry boundaries.
	a := &fakeEntry{title: "A", sequence: "{PASSWORD}{ENTER}"}
	b := &fakeEntry{title: "B", sequence: "{PASSWORD}{ENTER}"}
	db := &fakeDB{name: "vault", entries: []Entry{a, b}}
	c := NewCandidates(nil, []Database{db})

	got := c.Search("x")
	require.Len(t, got, 2)
}

func TestSearchSkipsEmptyEffectiveSequence(t *testing.T) {
	entry := &fakeEntry{
		title:        "NoDefault",
		sequence:     "",
		associations: []string{"{PASSWORD}{ENTER}", ""},
	}
	db := &fakeDB{name: "vault", entries: []Entry{entry}}
	c := NewCandidates(nil, []Database{db})

	got := c.Search("x")
	require.Len(t, got, 1)
	assert.Equal(t, "{PASSWORD}{ENTER}", got[0].Sequence)
}

func TestSearchConcatenatesDatabasesInOrder(t *testing.T) {
	first := &fakeDB{name: "work", entries: []Entry{
		&fakeEntry{title: "W1", sequence: "{ENTER}"},
		&fakeEntry{title: "W2", sequence: "{ENTER}"},
	}}
	second := &fakeDB{name: "personal", entries: []Entry{
		&fakeEntry{title: "P1", sequence: "{ENTER}"},
	}}
	c := NewCandidates(nil, []Database{first, second})

	got := c.Search("x")
	require.Len(t, got, 3)
	assert.Equal(t, "W1", got[0].Entry.Title())
	assert.Equal(t, "W2", got[1].Entry.Title())
	assert.Equal(t, "P1", got[2].Entry.Title())
}

func TestSearchFailingDatabaseDoesNotBlockOthers(t *testing.T) {
	broken := &fakeDB{name: "locked", err: errors.New("database is locked")}
	working := &fakeDB{name: "vault", entries: []Entry{&fakeEntry{title: "OK", sequence: "{ENTER}"}}}
	c := NewCandidates(nil, []Database{broken, working})

	got := c.Search("x")
	require.Len(t, got, 1)
	assert.Equal(t, "OK", got[0].Entry.Title())
}
