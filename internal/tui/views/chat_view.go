package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// ChatView displays one conversation: the merged message list, a typing
// line and a composer.
type ChatView struct {
	*tview.Flex
	theme    *ui.Theme
	header   *tview.TextView
	messages *tview.TextView
	typing   *tview.TextView
	composer *tview.InputField

	contact  mock.Contact
	msgs     []mock.Message
	selected int
	isTyping bool

	onSend    func(text string)
	onInspect func(m mock.Message)
	senders   func(m mock.Message) string
}

// NewChatView creates the chat view.
func NewChatView(theme *ui.Theme) *ChatView {
	header := tview.NewTextView().SetDynamicColors(true)
	header.SetBorderPadding(0, 0, 1, 1)

	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetScrollable(true).
		SetWordWrap(true)
	messages.SetBorder(true)

	typing := tview.NewTextView().SetDynamicColors(true)
	typing.SetBorderPadding(0, 0, 1, 1)

	composer := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0).
		SetPlaceholder("Message")
	composer.SetBorder(true)
	composer.SetTitle(" Compose (i to focus) ")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(messages, 0, 1, true).
		AddItem(typing, 1, 0, false).
		AddItem(composer, 3, 0, false)

	cv := &ChatView{
		Flex:     flex,
		theme:    theme,
		header:   header,
		messages: messages,
		typing:   typing,
		composer: composer,
		selected: -1,
	}

	composer.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && cv.onSend != nil {
			text := composer.GetText()
			if strings.TrimSpace(text) != "" {
				cv.onSend(text)
				composer.SetText("")
			}
		}
	})
	messages.SetInputCapture(cv.handleListKey)

	cv.ApplyTheme()
	return cv
}

// ApplyTheme implements ui.Themed.
func (cv *ChatView) ApplyTheme() {
	t := cv.theme
	cv.header.SetBackgroundColor(t.PhoneBarBg)
	cv.header.SetTextColor(t.PhoneBarFg)
	cv.messages.SetBorderColor(t.BorderColor)
	cv.messages.SetBackgroundColor(t.BgColor)
	cv.messages.SetTextColor(t.FgColor)
	cv.messages.SetTitleColor(t.TitleColor)
	cv.typing.SetBackgroundColor(t.BgColor)
	cv.typing.SetTextColor(t.TypingColor)
	cv.composer.SetBorderColor(t.BorderColor)
	cv.composer.SetBackgroundColor(t.BgColor)
	cv.composer.SetFieldBackgroundColor(t.BgColor)
	cv.composer.SetFieldTextColor(t.FgColor)
	cv.composer.SetLabelColor(t.MenuKeyColor)
	cv.composer.SetTitleColor(t.TitleColor)
	cv.composer.SetPlaceholderStyle(tcell.StyleDefault.Foreground(t.CounterColor).Background(t.BgColor))
	cv.Flex.SetBackgroundColor(t.BgColor)
	cv.render()
}

// Name implements Component.
func (cv *ChatView) Name() string {
	if cv.contact.Name != "" {
		return cv.contact.Name
	}
	return "Chat"
}

// Start implements Component.
func (cv *ChatView) Start() {}

// Stop implements Component.
func (cv *ChatView) Stop() {
	cv.composer.SetText("")
	cv.selected = -1
}

// Hints implements Component.
func (cv *ChatView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "j/k", Description: "Select"},
		{Key: "Enter", Description: "Inspect"},
	}
}

// SetOnSend sets the callback when a message is sent.
func (cv *ChatView) SetOnSend(fn func(text string)) {
	cv.onSend = fn
}

// SetOnInspect sets the callback for Enter on a selected message.
func (cv *ChatView) SetOnInspect(fn func(m mock.Message)) {
	cv.onInspect = fn
}

// SetSenderName sets the function that names the sender of a message.
func (cv *ChatView) SetSenderName(fn func(m mock.Message) string) {
	cv.senders = fn
}

// SetContact switches the view to another chat.
func (cv *ChatView) SetContact(c mock.Contact) {
	if c.ID != cv.contact.ID {
		cv.selected = -1
	}
	cv.contact = c
	cv.render()
}

// Update refreshes the messages and typing state.
func (cv *ChatView) Update(msgs []mock.Message, typing bool) {
	follow := cv.selected < 0 || cv.selected >= len(cv.msgs)-1
	cv.msgs = msgs
	cv.isTyping = typing
	if cv.selected >= len(msgs) {
		cv.selected = len(msgs) - 1
	}
	cv.render()
	if follow {
		cv.messages.ScrollToEnd()
	}
}

// Selected returns the selected message.
func (cv *ChatView) Selected() (mock.Message, bool) {
	if cv.selected < 0 || cv.selected >= len(cv.msgs) {
		return mock.Message{}, false
	}
	return cv.msgs[cv.selected], true
}

// Select moves the selection by delta, starting from the newest message.
func (cv *ChatView) Select(delta int) {
	if len(cv.msgs) == 0 {
		return
	}
	if cv.selected < 0 {
		cv.selected = len(cv.msgs)
	}
	cv.selected = min(max(cv.selected+delta, 0), len(cv.msgs)-1)
	cv.highlight()
}

func (cv *ChatView) handleListKey(ev *tcell.EventKey) *tcell.EventKey {
	switch {
	case ev.Key() == tcell.KeyUp || ev.Key() == tcell.KeyRune && ev.Rune() == 'k':
		cv.Select(-1)
		return nil
	case ev.Key() == tcell.KeyDown || ev.Key() == tcell.KeyRune && ev.Rune() == 'j':
		cv.Select(1)
		return nil
	case ev.Key() == tcell.KeyEnter:
		if m, ok := cv.Selected(); ok && cv.onInspect != nil {
			cv.onInspect(m)
		}
		return nil
	}
	return ev
}

func (cv *ChatView) render() {
	t := cv.theme
	status := cv.contact.Status
	if cv.isTyping {
		status = "typing..."
	}
	header := fmt.Sprintf("[::b]%s[-:-:-]", clean(cv.contact.Name))
	if status != "" {
		header += fmt.Sprintf("  [::d]%s[-:-:-]", clean(status))
	}
	cv.header.SetText(header)
	cv.messages.SetTitle(fmt.Sprintf(" %s ", tview.Escape(cv.Name())))

	sender := cv.senders
	if sender == nil {
		sender = func(m mock.Message) string { return m.From }
	}
	cv.messages.SetText(RenderMessages(cv.msgs, sender, t))

	if cv.isTyping {
		cv.typing.SetText(fmt.Sprintf("[::i]%s is typing...[-:-:-]", clean(cv.contact.Name)))
	} else {
		cv.typing.SetText("")
	}
	cv.highlight()
}

func (cv *ChatView) highlight() {
	m, ok := cv.Selected()
	if !ok {
		cv.messages.Highlight()
		return
	}
	cv.messages.Highlight(m.ID)
	cv.messages.ScrollToHighlight()
}

// RenderMessages formats messages as tagged text. Every message is a region
// named after its id so it can be highlighted.
func RenderMessages(msgs []mock.Message, sender func(mock.Message) string, t *ui.Theme) string {
	var b strings.Builder
	for _, m := range msgs {
		color := t.IncomingColor
		name := sender(m)
		if m.From == mock.Me {
			color = t.OutgoingColor
			name = "You"
		}
		fmt.Fprintf(&b, `["%s"][%s::b]%s[-:-:-] [::d]%s[-:-:-]`, m.ID, ui.ColorName(color), clean(name), clean(m.Time))
		if m.From == mock.Me {
			b.WriteString(" " + Ticks(m.Status, t))
		}
		fmt.Fprintf(&b, "\n%s[\"\"]\n\n", clean(m.Text))
	}
	return b.String()
}

// Ticks renders the delivery status of an outgoing message.
func Ticks(status string, t *ui.Theme) string {
	switch status {
	case mock.StatusSent:
		return "✓"
	case mock.StatusDelivered:
		return "✓✓"
	case mock.StatusRead:
		return fmt.Sprintf("[%s]✓✓[-]", ui.ColorName(t.ReadTickColor))
	}
	return ""
}

// Messages returns the messages text view (for focus management).
func (cv *ChatView) Messages() *tview.TextView {
	return cv.messages
}

// Composer returns the composer input field (for focus management).
func (cv *ChatView) Composer() *tview.InputField {
	return cv.composer
}
