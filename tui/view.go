package tui

import (
	"fmt"
	"strings"

	"github.com/keepick/keepick/match"
)

const helpText = "up/down: navigate | enter: auto-type | tab: filter/search | ctrl+a: actions | esc: cancel"

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select entry to Auto-Type") + "\n\n")
	b.WriteString(m.query.View() + "\n")
	b.WriteString(renderModeLine(m.session.Mode()) + "\n\n")
	b.WriteString(m.renderMatches())

	if m.menuOpen {
		b.WriteString("\n" + renderMenu(m.menuIndex, m.session.Availability()))
	} else {
		b.WriteString("\n" + renderStatus(len(m.session.View()), m.copyErr))
	}

	return dialogStyle.Render(b.String())
}

func renderModeLine(mode match.Mode) string {
	filter := "( ) filter existing"
	search := "( ) search all databases"
	if mode == match.ModeFilter {
		filter = modeActiveStyle.Render("(*) filter existing")
	} else {
		search = modeActiveStyle.Render("(*) search all databases")
	}
	return filter + "   " + search
}

func (m model) renderMatches() string {
	view := m.session.View()
	if len(view) == 0 {
		return mutedStyle.Render("  no matches") + "\n"
	}

	selected := m.session.Index()

	var b strings.Builder
	for i, mt := range view {
		line := fmt.Sprintf("%-24s %-20s %s",
			truncate(mt.Entry.Title(), 22),
			truncate(mt.Entry.Username(), 18),
			sequenceStyle.Render(truncate(mt.Sequence, 36)))
		if i == selected {
			b.WriteString(selectedStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func renderStatus(count int, copyErr error) string {
	status := fmt.Sprintf("%d match(es)", count)
	if copyErr != nil {
		status = errorStyle.Render("Clipboard: " + copyErr.Error())
	}
	return status + "\n" + mutedStyle.Render(helpText)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
