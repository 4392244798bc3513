package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// ChatRow is one line of the chat list.
type ChatRow struct {
	ContactID string
	Name      string
	Status    string
	Preview   string
	Time      string
	FromMe    bool
	Typing    bool
}

// ChatList shows one row per contact with the newest message of its chat.
type ChatList struct {
	*tview.Table
	theme  *ui.Theme
	rows   []ChatRow
	filter string
}

// NewChatList creates the chat list table.
func NewChatList(theme *ui.Theme) *ChatList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetTitle(" Chats ")

	cl := &ChatList{
		Table: table,
		theme: theme,
	}
	cl.ApplyTheme()
	return cl
}

// ApplyTheme implements ui.Themed.
func (cl *ChatList) ApplyTheme() {
	cl.SetBorderColor(cl.theme.BorderColor)
	cl.SetBackgroundColor(cl.theme.BgColor)
	cl.SetTitleColor(cl.theme.TitleColor)
	cl.SetSelectedStyle(tcell.StyleDefault.
		Foreground(cl.theme.TableCursorFg).
		Background(cl.theme.TableCursorBg))
	cl.render()
}

// Name implements Component.
func (cl *ChatList) Name() string { return "Chats" }

// Start implements Component.
func (cl *ChatList) Start() {}

// Stop implements Component.
func (cl *ChatList) Stop() {}

// Hints implements Component.
func (cl *ChatList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "1-9", Description: "Jump"},
	}
}

// Update replaces the rows and re-renders.
func (cl *ChatList) Update(rows []ChatRow) {
	cl.rows = rows
	cl.render()
}

// SetFilter sets the active filter text and re-renders.
func (cl *ChatList) SetFilter(filter string) {
	cl.filter = filter
	cl.render()
}

// Filter returns the active filter text.
func (cl *ChatList) Filter() string {
	return cl.filter
}

// ClearFilter clears the active filter.
func (cl *ChatList) ClearFilter() {
	cl.filter = ""
	cl.render()
}

func (cl *ChatList) visible() []ChatRow {
	if cl.filter == "" {
		return cl.rows
	}
	needle := strings.ToLower(cl.filter)
	var out []ChatRow
	for _, r := range cl.rows {
		if strings.Contains(strings.ToLower(r.Name), needle) || strings.Contains(strings.ToLower(r.Preview), needle) {
			out = append(out, r)
		}
	}
	return out
}

func (cl *ChatList) render() {
	cl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 1},
		{" LAST MESSAGE", 2},
		{" TIME", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		cl.SetCell(0, col, cell)
	}

	rows := cl.visible()
	for i, r := range rows {
		name := " " + clean(r.Name)
		if r.Status != "" {
			name += fmt.Sprintf(" [%s::d](%s)[-:-:-]", ui.ColorName(cl.theme.CounterColor), clean(r.Status))
		}

		preview := clean(r.Preview)
		switch {
		case r.Typing:
			preview = fmt.Sprintf("[%s::i]typing...[-:-:-]", ui.ColorName(cl.theme.TypingColor))
		case r.FromMe && r.Preview != "":
			preview = "You: " + preview
		}

		row := i + 1
		cl.SetCell(row, 0, tview.NewTableCell(name).SetExpansion(1).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 1, tview.NewTableCell(" "+preview).SetExpansion(2).SetTextColor(cl.theme.FgColor).SetMaxWidth(60))
		cl.SetCell(row, 2, tview.NewTableCell(r.Time+" ").SetExpansion(0).SetTextColor(cl.theme.FgColor).SetAlign(tview.AlignRight))
	}

	if cl.filter != "" {
		cl.SetTitle(fmt.Sprintf(" Chats (%d/%d) filter: %s ", len(rows), len(cl.rows), tview.Escape(cl.filter)))
	} else {
		cl.SetTitle(fmt.Sprintf(" Chats (%d) ", len(cl.rows)))
	}
}

// SelectedChat returns the contact id of the selected row.
func (cl *ChatList) SelectedChat() string {
	row, _ := cl.GetSelection()
	return cl.ChatByIndex(row)
}

// ChatByIndex returns the contact id of the Nth visible row (1-based).
func (cl *ChatList) ChatByIndex(n int) string {
	rows := cl.visible()
	if n < 1 || n > len(rows) {
		return ""
	}
	return rows[n-1].ContactID
}
