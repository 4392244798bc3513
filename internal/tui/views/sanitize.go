package views

import (
	"strings"
	"unicode"

	"github.com/rivo/tview"
)

// clean prepares user-authored text (names, message bodies) for a dynamic
// color TextView or table cell.
func clean(s string) string {
	return tview.Escape(sanitizeForTerminal(s))
}

// sanitizeForTerminal drops runes tcell cannot lay out in a single cell
// sequence: emoji modifiers and joiners, variation selectors, and control
// characters other than newline. Scenario files are edited by hand and
// pasted from phones, so both kinds show up.
func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if dropRune(r) {
			return -1
		}
		if r == '\t' {
			return ' '
		}
		return r
	}, s)
}

func dropRune(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tones
		return true
	case r == 0x200D: // ZWJ
		return true
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF:
		return true
	case r == '\n' || r == '\t':
		return false
	}
	return unicode.IsControl(r)
}
