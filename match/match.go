// Package match implements the candidate list, selection and action
// resolution behind the auto-type entry picker. It holds no UI state;
// the tui package drives it through plain synchronous calls.
package match

// Entry is an opaque handle to a credential entry owned by a backend.
// Handles must not outlive the database they were read from.
type Entry interface {
	Title() string
	Username() string
	Password() string
	// TOTP returns the current one-time code, or "" when none is
	// configured or generation fails.
	TOTP() string
	HasTOTP() bool
	// EffectiveSequence is the auto-type sequence the entry uses when
	// no specific association applies. May be empty.
	EffectiveSequence() string
	// Associations lists the entry's alternate keystroke sequences.
	Associations() []string
}

// Database is a searchable credential store. Search is synchronous and
// may be expensive; result ordering is backend-defined and preserved.
type Database interface {
	Name() string
	Search(query string) ([]Entry, error)
}

// Match pairs an entry with one keystroke sequence offered to the user.
type Match struct {
	Entry    Entry
	Sequence string
}
