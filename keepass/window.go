package keepass

import (
	"regexp"
	"strings"

	"github.com/keepick/keepick/match"
	"github.com/tobischo/gokeepasslib/v3"
)

// windowMatches collects the (entry, sequence) pairs applicable to a
// window title: every association whose window pattern matches, plus
// the effective sequence when the entry title occurs in the window
// title and no association already contributed it. Sequences are
// deduplicated per entry.
func windowMatches(group *gokeepasslib.Group, windowTitle string) []match.Match {
	var matches []match.Match
	for i := range group.Entries {
		entry := &Entry{entry: &group.Entries[i]}
		for _, seq := range entry.sequencesForWindow(windowTitle) {
			matches = append(matches, match.Match{Entry: entry, Sequence: seq})
		}
	}
	for i := range group.Groups {
		matches = append(matches, windowMatches(&group.Groups[i], windowTitle)...)
	}
	return matches
}

func (e *Entry) sequencesForWindow(windowTitle string) []string {
	if !e.entry.AutoType.Enabled.Bool || windowTitle == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var sequences []string
	add := func(seq string) {
		if seq == "" {
			return
		}
		if _, ok := seen[seq]; ok {
			return
		}
		seen[seq] = struct{}{}
		sequences = append(sequences, seq)
	}

	if len(e.entry.AutoType.Associations) > 0 {
		assoc := &e.entry.AutoType.Associations[0]
		if windowPatternMatches(assoc.Window, windowTitle) {
			seq := assoc.KeystrokeSequence
			if seq == "" {
				seq = e.EffectiveSequence()
			}
			add(seq)
		}
	}

	// Title fallback: an entry whose title occurs in the window title
	// is offered its effective sequence.
	title := e.Title()
	if title != "" && strings.Contains(strings.ToLower(windowTitle), strings.ToLower(title)) {
		add(e.EffectiveSequence())
	}

	return sequences
}

// windowPatternMatches checks an association window pattern against a
// title. Patterns are case-insensitive and support the KeePass
// wildcards * (any run) and ? (any single character).
func windowPatternMatches(pattern, title string) bool {
	if pattern == "" {
		return false
	}

	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(title)
}
