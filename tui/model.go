// Package tui renders the auto-type match picker. It owns terminal
// event plumbing only; list, mode, selection and action semantics live
// in the match package.
package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/keepick/keepick/match"
)

type model struct {
	session  *match.Session
	debounce *match.Debounce
	query    textinput.Model

	// executed is the query text of the last filter/search run, so a
	// commit key can flush a pending run before activating.
	executed string

	menuOpen  bool
	menuIndex int

	copied  bool
	copyErr error
	width   int
	height  int
}

func newModel(session *match.Session, debounce *match.Debounce) model {
	query := textinput.New()
	query.Placeholder = "Type to " + session.Mode().String()
	query.Prompt = "> "
	query.Focus()

	m := model{
		session:  session,
		debounce: debounce,
		query:    query,
	}
	// Preselect the first row so enter works immediately.
	m.session.Select(0)
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchTickMsg:
		if m.debounce.Latest(msg.gen) {
			m.runQuery()
		}
		return m, nil

	case clipboardCopiedMsg:
		m.copied = true
		m.copyErr = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		m.session.Cancel()
		return m, tea.Quit
	}

	if m.menuOpen {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.session.MoveUp()
		return m, nil

	case key.Matches(msg, keys.Down):
		m.session.MoveDown()
		return m, nil

	case key.Matches(msg, keys.ToggleMode):
		if m.session.SetMode(m.session.Mode().Toggle(), m.query.Value()) {
			m.executed = m.query.Value()
			m.afterViewChange()
			m.query.Placeholder = "Type to " + m.session.Mode().String()
			m.query.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.Menu):
		if _, ok := m.session.Current(); ok {
			m.menuOpen = true
			m.menuIndex = 0
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		// Commit key: flush any pending run, then activate.
		m.debounce.Bypass()
		if m.query.Value() != m.executed {
			m.runQuery()
		}
		if _, ok := m.session.Activate(); ok {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.Escape):
		if m.query.Value() != "" {
			m.query.SetValue("")
			m.debounce.Bypass()
			m.runQuery()
			return m, nil
		}
		m.session.Cancel()
		return m, tea.Quit
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before {
		gen := m.debounce.Arm()
		tick := tea.Tick(m.debounce.Interval(), func(time.Time) tea.Msg {
			return searchTickMsg{gen: gen}
		})
		return m, tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
		return m, nil

	case key.Matches(msg, keys.Escape):
		m.menuOpen = false
		return m, nil

	case key.Matches(msg, keys.Enter):
		item := menuItems[m.menuIndex]
		if !itemEnabled(m.session.Availability(), item.action) {
			return m, nil
		}
		res, err := m.session.Resolve(item.action)
		if err != nil {
			m.menuOpen = false
			return m, nil
		}
		if res.Kind == match.ResultCopy {
			return m, copyCmd(res.Value)
		}
		return m, tea.Quit
	}

	return m, nil
}

// runQuery executes the active mode with the current query text and
// replaces the view.
func (m *model) runQuery() {
	m.session.Execute(m.query.Value())
	m.executed = m.query.Value()
	m.afterViewChange()
}

// afterViewChange preselects the first row of a fresh view when the
// replacement cleared the selection.
func (m *model) afterViewChange() {
	if _, ok := m.session.Current(); !ok {
		m.session.Select(0)
	}
}

// Outcome is what the picker run produced.
type Outcome struct {
	// Activated is the committed match, nil when the session was
	// cancelled.
	Activated *match.Match
	// Copied reports that a field value went to the clipboard (the
	// session then ends without a commit).
	Copied  bool
	CopyErr error
}

// Run drives the picker to completion and reports the outcome.
func Run(initial []match.Match, dbs []match.Database, debounceInterval time.Duration) (Outcome, error) {
	session := match.NewSession(initial, dbs)
	m := newModel(session, match.NewDebounce(debounceInterval))

	finalModel, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("running picker: %w", err)
	}

	final := finalModel.(model)
	outcome := Outcome{Copied: final.copied, CopyErr: final.copyErr}
	if activated, ok := session.Activated(); ok {
		outcome.Activated = &activated
	}
	return outcome, nil
}

func copyCmd(value string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(value)}
	}
}
