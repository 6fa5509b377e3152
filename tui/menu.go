package tui

import (
	"strings"

	"github.com/keepick/keepick/match"
)

type menuItem struct {
	label  string
	action match.ActionKind
}

var menuItems = []menuItem{
	{"Type {USERNAME}", match.TypeUsername},
	{"Type {PASSWORD}", match.TypePassword},
	{"Type {TOTP}", match.TypeTotp},
	{"Copy Username", match.CopyUsername},
	{"Copy Password", match.CopyPassword},
	{"Copy TOTP", match.CopyTotp},
}

// itemEnabled consults the named availability record instead of menu
// positions, so the type and copy groups share one rule per field.
func itemEnabled(avail match.Availability, action match.ActionKind) bool {
	switch action {
	case match.TypeUsername, match.CopyUsername:
		return avail.Username
	case match.TypePassword, match.CopyPassword:
		return avail.Password
	case match.TypeTotp, match.CopyTotp:
		return avail.TOTP
	}
	return false
}

func renderMenu(cursor int, avail match.Availability) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Actions") + "\n")
	for i, item := range menuItems {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		line := prefix + item.label
		switch {
		case !itemEnabled(avail, item.action):
			b.WriteString(disabledStyle.Render(line))
		case i == cursor:
			b.WriteString(selectedStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter apply  esc close"))
	return b.String()
}
