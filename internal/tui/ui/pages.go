package ui

import (
	"github.com/rivo/tview"
	"github.com/samber/lo"
)

type entry struct {
	name  string
	modal bool
}

// Pages is a navigation stack over tview.Pages. Modal entries are drawn on
// top of the page below them; plain entries replace everything visible.
type Pages struct {
	*tview.Pages
	stack    []entry
	onChange func(stack []string)
}

func NewPages() *Pages {
	return &Pages{Pages: tview.NewPages()}
}

// SetOnChange registers fn to receive the stack after every change.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push shows name alone.
func (p *Pages) Push(name string) {
	p.push(entry{name: name})
}

// PushModal shows name over the current page without hiding it.
func (p *Pages) PushModal(name string) {
	p.push(entry{name: name, modal: true})
}

func (p *Pages) push(e entry) {
	if !e.modal {
		for _, v := range p.visible() {
			p.HidePage(v.name)
		}
	}
	p.stack = append(p.stack, e)
	p.ShowPage(e.name)
	p.SendToFront(e.name)
	p.notify()
}

// Pop removes the top page and returns its name, or "" when the stack is
// empty.
func (p *Pages) Pop() string {
	if len(p.stack) == 0 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top.name)
	p.stack = p.stack[:len(p.stack)-1]
	for _, v := range p.visible() {
		p.ShowPage(v.name)
		p.SendToFront(v.name)
	}
	p.notify()
	return top.name
}

// visible returns the entries that are drawn: the top plain page and every
// modal above it, bottom first.
func (p *Pages) visible() []entry {
	i := len(p.stack) - 1
	for i > 0 && p.stack[i].modal {
		i--
	}
	if i < 0 {
		return nil
	}
	return p.stack[i:]
}

// Current returns the top page name.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1].name
}

// Stack returns the page names, bottom first.
func (p *Pages) Stack() []string {
	return lo.Map(p.stack, func(e entry, _ int) string { return e.name })
}

func (p *Pages) InStack(name string) bool {
	return lo.ContainsBy(p.stack, func(e entry) bool { return e.name == name })
}

// PopTo pops until name is on top. Nothing happens when name is not on the
// stack.
func (p *Pages) PopTo(name string) {
	if !p.InStack(name) {
		return
	}
	for p.Current() != name {
		p.Pop()
	}
}

func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack down to a single page.
func (p *Pages) Reset(name string) {
	for _, e := range p.stack {
		p.HidePage(e.name)
	}
	p.stack = []entry{{name: name}}
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
