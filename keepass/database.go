// Package keepass backs the match picker with KDBX files read through
// gokeepasslib.
package keepass

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keepick/keepick/match"
	"github.com/tobischo/gokeepasslib/v3"
)

// Database is an unlocked KDBX file. It implements match.Database.
type Database struct {
	name string
	db   *gokeepasslib.Database
}

// Open decodes and unlocks a KDBX file. Credentials may be a password,
// a key file, or both.
func Open(path, password, keyFile string) (*Database, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database %v: %w", path, err)
	}
	defer file.Close()

	db := gokeepasslib.NewDatabase()
	db.Credentials, err = credentials(password, keyFile)
	if err != nil {
		return nil, fmt.Errorf("building credentials for %v: %w", path, err)
	}

	if err := gokeepasslib.NewDecoder(file).Decode(db); err != nil {
		return nil, fmt.Errorf("decoding database %v: %w", path, err)
	}
	if err := db.UnlockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("unlocking database %v: %w", path, err)
	}

	return &Database{name: filepath.Base(path), db: db}, nil
}

func credentials(password, keyFile string) (*gokeepasslib.DBCredentials, error) {
	switch {
	case password != "" && keyFile != "":
		return gokeepasslib.NewPasswordAndKeyCredentials(password, keyFile)
	case keyFile != "":
		return gokeepasslib.NewKeyCredentials(keyFile)
	default:
		return gokeepasslib.NewPasswordCredentials(password), nil
	}
}

// Name returns the database file name.
func (d *Database) Name() string {
	return d.name
}

// Search walks the group tree and returns every entry matching the
// query. See matchesQuery for the matching rules.
func (d *Database) Search(query string) ([]match.Entry, error) {
	if d.db.Content == nil || d.db.Content.Root == nil {
		return nil, fmt.Errorf("database %v has no content", d.name)
	}

	var found []match.Entry
	for i := range d.db.Content.Root.Groups {
		found = append(found, searchGroup(&d.db.Content.Root.Groups[i], query)...)
	}
	return found, nil
}

// MatchesForWindow returns the matches whose auto-type associations (or
// title, as a fallback) apply to the given window title. This seeds the
// picker's filter baseline.
func (d *Database) MatchesForWindow(windowTitle string) []match.Match {
	if d.db.Content == nil || d.db.Content.Root == nil {
		return nil
	}

	var matches []match.Match
	for i := range d.db.Content.Root.Groups {
		matches = append(matches, windowMatches(&d.db.Content.Root.Groups[i], windowTitle)...)
	}
	return matches
}

func searchGroup(group *gokeepasslib.Group, query string) []match.Entry {
	var found []match.Entry
	for i := range group.Entries {
		entry := &Entry{entry: &group.Entries[i]}
		if entry.matchesQuery(query) {
			found = append(found, entry)
		}
	}
	for i := range group.Groups {
		found = append(found, searchGroup(&group.Groups[i], query)...)
	}
	return found
}
