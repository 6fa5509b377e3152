package keepass

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/tobischo/gokeepasslib/v3"
)

// DefaultSequence is used when an entry defines no auto-type sequence
// of its own.
const DefaultSequence = "{USERNAME}{TAB}{PASSWORD}{ENTER}"

const otpKey = "otp"

// Entry adapts a gokeepasslib entry to match.Entry. It borrows the
// underlying entry from its database and must not outlive it.
type Entry struct {
	entry *gokeepasslib.Entry
}

func (e *Entry) Title() string    { return e.entry.GetTitle() }
func (e *Entry) Username() string { return e.entry.GetContent("UserName") }
func (e *Entry) Password() string { return e.entry.GetPassword() }
func (e *Entry) URL() string      { return e.entry.GetContent("URL") }
func (e *Entry) Notes() string    { return e.entry.GetContent("Notes") }

// HasTOTP reports whether a one-time secret is configured.
func (e *Entry) HasTOTP() bool {
	return e.entry.GetContent(otpKey) != ""
}

// TOTP generates the current one-time code from the otp attribute. The
// attribute holds an otpauth:// URL as written by KeePassXC, or a bare
// base32 secret. Returns "" when nothing is configured or the secret is
// unusable.
func (e *Entry) TOTP() string {
	raw := e.entry.GetContent(otpKey)
	if raw == "" {
		return ""
	}

	secret := raw
	if key, err := otp.NewKeyFromURL(raw); err == nil {
		secret = key.Secret()
	}

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		return ""
	}
	return code
}

// EffectiveSequence is the sequence used when no association matches:
// the entry's own default, falling back to the KeePass standard
// sequence. Empty when auto-type is disabled for the entry.
func (e *Entry) EffectiveSequence() string {
	if !e.entry.AutoType.Enabled.Bool {
		return ""
	}
	if seq := e.entry.AutoType.DefaultSequence; seq != "" {
		return seq
	}
	return DefaultSequence
}

// Associations lists the entry's window-specific keystroke sequences.
// An association without its own sequence inherits the effective one.
func (e *Entry) Associations() []string {
	if !e.entry.AutoType.Enabled.Bool {
		return nil
	}
	if len(e.entry.AutoType.Associations) == 0 {
		return nil
	}
	assoc := &e.entry.AutoType.Associations[0]
	seq := assoc.KeystrokeSequence
	if seq == "" {
		seq = e.EffectiveSequence()
	}
	return []string{seq}
}

// matchesQuery applies the search rule: the query splits into
// whitespace-separated terms and every term must occur, case
// insensitively, in the title, username, URL or notes.
func (e *Entry) matchesQuery(query string) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return false
	}

	text := strings.ToLower(e.Title() + "\n" + e.Username() + "\n" + e.URL() + "\n" + e.Notes())
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
