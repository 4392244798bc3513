package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode is what the prompt line is collecting.
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptFilter
)

const historySize = 32

// Prompt is the ':' command and '/' filter line. Commands are remembered
// for Up/Down recall and complete against a fixed word list; filters
// report every keystroke so the list narrows while typing.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	words    []string
	history  []string
	cursor   int
	onSubmit func(mode PromptMode, text string)
	onChange func(text string)
	onCancel func()
}

// NewPrompt creates a prompt that completes commands from words.
func NewPrompt(theme *Theme, words []string) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)

	p := &Prompt{InputField: input, theme: theme, words: words}
	p.ApplyTheme()

	input.SetAutocompleteFunc(p.complete)
	input.SetChangedFunc(func(text string) {
		if p.mode == PromptFilter && p.onChange != nil {
			p.onChange(text)
		}
	})
	input.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if p.mode != PromptCommand {
			return ev
		}
		switch ev.Key() {
		case tcell.KeyUp:
			p.recall(-1)
			return nil
		case tcell.KeyDown:
			p.recall(1)
			return nil
		}
		return ev
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := strings.TrimSpace(p.GetText())
			p.SetText("")
			if text == "" {
				if p.onCancel != nil {
					p.onCancel()
				}
				return
			}
			if p.mode == PromptCommand {
				p.remember(text)
			}
			if p.onSubmit != nil {
				p.onSubmit(p.mode, text)
			}
		case tcell.KeyEscape:
			p.SetText("")
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})
	return p
}

func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) { p.onSubmit = fn }

func (p *Prompt) SetOnChange(fn func(text string)) { p.onChange = fn }

func (p *Prompt) SetOnCancel(fn func()) { p.onCancel = fn }

// ApplyTheme re-reads the colors from the theme.
func (p *Prompt) ApplyTheme() {
	p.SetBorderColor(p.theme.PromptBorderColor)
	p.SetBackgroundColor(p.theme.BgColor)
	p.SetFieldBackgroundColor(p.theme.BgColor)
	p.SetFieldTextColor(p.theme.FgColor)
	p.SetLabelColor(p.theme.MenuKeyColor)
}

// Activate clears the line and switches it to mode.
func (p *Prompt) Activate(mode PromptMode) {
	p.mode = mode
	p.cursor = len(p.history)
	p.SetText("")
	if mode == PromptFilter {
		p.SetLabel("/")
		p.SetTitle(" Filter ")
		return
	}
	p.SetLabel(":")
	p.SetTitle(" Command ")
}

func (p *Prompt) Mode() PromptMode { return p.mode }

// History returns the remembered commands, oldest first.
func (p *Prompt) History() []string {
	return append([]string(nil), p.history...)
}

func (p *Prompt) remember(text string) {
	if n := len(p.history); n > 0 && p.history[n-1] == text {
		p.cursor = n
		return
	}
	p.history = append(p.history, text)
	if len(p.history) > historySize {
		p.history = p.history[len(p.history)-historySize:]
	}
	p.cursor = len(p.history)
}

func (p *Prompt) recall(delta int) {
	next := p.cursor + delta
	if next < 0 || next > len(p.history) {
		return
	}
	p.cursor = next
	if next == len(p.history) {
		p.SetText("")
		return
	}
	p.SetText(p.history[next])
}

// complete offers the words that start with the typed command name. Once a
// space was typed the arguments are free text.
func (p *Prompt) complete(text string) []string {
	if p.mode != PromptCommand || text == "" || strings.Contains(text, " ") {
		return nil
	}
	prefix := strings.ToLower(text)
	var out []string
	for _, w := range p.words {
		if strings.HasPrefix(w, prefix) && w != prefix {
			out = append(out, w)
		}
	}
	return out
}
