package match

import "strings"

// Candidates owns the baseline match list handed in by the caller and
// produces views of it, either by filtering the baseline or by
// re-querying the configured databases.
type Candidates struct {
	baseline []Match
	dbs      []Database
}

// NewCandidates seeds the working set. initial becomes the filter
// baseline (may be empty, in which case the caller is expected to start
// in search mode); dbs back search mode.
func NewCandidates(initial []Match, dbs []Database) *Candidates {
	return &Candidates{baseline: initial, dbs: dbs}
}

// Baseline returns the full seeded match list.
func (c *Candidates) Baseline() []Match {
	return c.baseline
}

// Filter returns the baseline matches whose title, username or sequence
// contains query, case-insensitively. An empty query returns the full
// baseline.
func (c *Candidates) Filter(query string) []Match {
	if query == "" {
		return c.baseline
	}

	q := strings.ToLower(query)
	filtered := make([]Match, 0, len(c.baseline))
	for _, m := range c.baseline {
		text := strings.ToLower(m.Entry.Title() + "\n" + m.Entry.Username() + "\n" + m.Sequence)
		if strings.Contains(text, q) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// Search queries every database for entries matching query and expands
// each hit into one match per distinct sequence: the effective sequence
// first if non-empty, then each association not already offered for
// that entry. Sequence comparison is exact and case-sensitive, and the
// dedup scope is a single entry - two different entries may well offer
// the same sequence. An empty query yields no matches. A database that
// fails to search contributes nothing; the others still do.
func (c *Candidates) Search(query string) []Match {
	if query == "" {
		return nil
	}

	var matches []Match
	for _, db := range c.dbs {
		entries, err := db.Search(query)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			matches = append(matches, expandSequences(entry)...)
		}
	}
	return matches
}

func expandSequences(entry Entry) []Match {
	seen := make(map[string]struct{})
	var matches []Match

	if seq := entry.EffectiveSequence(); seq != "" {
		matches = append(matches, Match{Entry: entry, Sequence: seq})
		seen[seq] = struct{}{}
	}
	for _, seq := range entry.Associations() {
		if seq == "" {
			continue
		}
		if _, ok := seen[seq]; ok {
			continue
		}
		matches = append(matches, Match{Entry: entry, Sequence: seq})
		seen[seq] = struct{}{}
	}
	return matches
}
