package views

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactManager lists contacts and edits them through a form. Every
// change hands the whole new contact list to the save callback.
type ContactManager struct {
	*tview.Flex
	theme *ui.Theme
	table *tview.Table
	form  *tview.Form

	id     *tview.InputField
	name   *tview.InputField
	photo  *tview.InputField
	status *tview.InputField

	contacts []mock.Contact
	editing  string

	onSave func([]mock.Contact) error
	focus  func(tview.Primitive)
}

// NewContactManager creates the contact manager.
func NewContactManager(theme *ui.Theme) *ContactManager {
	cm := &ContactManager{
		theme: theme,
		table: tview.NewTable().SetSelectable(true, false).SetFixed(1, 0),
		form:  tview.NewForm(),
	}
	cm.table.SetBorder(true)
	cm.form.SetBorder(true)

	cm.id = tview.NewInputField().SetLabel("ID").SetFieldWidth(20)
	cm.name = tview.NewInputField().SetLabel("Name").SetFieldWidth(30)
	cm.photo = tview.NewInputField().SetLabel("Photo").SetFieldWidth(30)
	cm.status = tview.NewInputField().SetLabel("Status").SetFieldWidth(30)
	cm.form.
		AddFormItem(cm.id).
		AddFormItem(cm.name).
		AddFormItem(cm.photo).
		AddFormItem(cm.status).
		AddButton("Save", cm.save).
		AddButton("Cancel", cm.cancel)
	cm.form.SetCancelFunc(cm.cancel)

	cm.table.SetSelectedFunc(func(row, _ int) {
		if c, ok := cm.contactAt(row); ok {
			cm.edit(c)
		}
	})
	cm.table.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() != tcell.KeyRune && ev.Key() != tcell.KeyDelete {
			return ev
		}
		switch {
		case ev.Rune() == 'n':
			cm.New()
			return nil
		case ev.Rune() == 'd' || ev.Key() == tcell.KeyDelete:
			row, _ := cm.table.GetSelection()
			if c, ok := cm.contactAt(row); ok {
				cm.delete(c.ID)
			}
			return nil
		}
		return ev
	})

	cm.Flex = tview.NewFlex().
		AddItem(cm.table, 0, 3, true).
		AddItem(cm.form, 0, 2, false)
	cm.ApplyTheme()
	return cm
}

// ApplyTheme implements ui.Themed.
func (cm *ContactManager) ApplyTheme() {
	t := cm.theme
	cm.table.SetBorderColor(t.BorderColor)
	cm.table.SetBackgroundColor(t.BgColor)
	cm.table.SetTitleColor(t.TitleColor)
	cm.table.SetSelectedStyle(tcell.StyleDefault.Foreground(t.TableCursorFg).Background(t.TableCursorBg))
	cm.form.SetBorderColor(t.BorderColor)
	cm.form.SetBackgroundColor(t.BgColor)
	cm.form.SetTitleColor(t.TitleColor)
	cm.form.SetLabelColor(t.MenuKeyColor)
	cm.form.SetFieldBackgroundColor(t.TableHeaderBg)
	cm.form.SetFieldTextColor(t.FgColor)
	cm.form.SetButtonBackgroundColor(t.TableCursorBg)
	cm.form.SetButtonTextColor(t.TableCursorFg)
	cm.Flex.SetBackgroundColor(t.BgColor)
	cm.render()
}

// Name implements Component.
func (cm *ContactManager) Name() string { return "Contacts" }

// Start implements Component.
func (cm *ContactManager) Start() {}

// Stop implements Component.
func (cm *ContactManager) Stop() {
	cm.clearForm()
}

// Hints implements Component.
func (cm *ContactManager) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Edit"},
		{Key: "n", Description: "New"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnSave sets the callback receiving the complete new contact list.
func (cm *ContactManager) SetOnSave(fn func([]mock.Contact) error) {
	cm.onSave = fn
}

// SetFocusFunc sets how the manager moves focus between table and form.
func (cm *ContactManager) SetFocusFunc(fn func(tview.Primitive)) {
	cm.focus = fn
}

// Table returns the contact table (for focus management).
func (cm *ContactManager) Table() *tview.Table {
	return cm.table
}

// Update replaces the displayed contacts.
func (cm *ContactManager) Update(contacts []mock.Contact) {
	cm.contacts = slices.Clone(contacts)
	cm.render()
}

// New clears the form for a new contact with a free id.
func (cm *ContactManager) New() {
	cm.editing = ""
	cm.id.SetText(NextContactID(cm.contacts))
	cm.id.SetDisabled(false)
	cm.name.SetText("")
	cm.photo.SetText("")
	cm.status.SetText("")
	cm.form.SetTitle(" New contact ")
	cm.form.SetFocus(1)
	cm.setFocus(cm.form)
}

func (cm *ContactManager) edit(c mock.Contact) {
	cm.editing = c.ID
	cm.id.SetText(c.ID)
	cm.id.SetDisabled(true)
	cm.name.SetText(c.Name)
	cm.photo.SetText(c.Photo)
	cm.status.SetText(c.Status)
	cm.form.SetTitle(" Edit contact ")
	cm.form.SetFocus(1)
	cm.setFocus(cm.form)
}

func (cm *ContactManager) save() {
	c := mock.Contact{
		ID:     strings.TrimSpace(cm.id.GetText()),
		Name:   strings.TrimSpace(cm.name.GetText()),
		Photo:  strings.TrimSpace(cm.photo.GetText()),
		Status: strings.TrimSpace(cm.status.GetText()),
	}
	if cm.editing != "" {
		c.ID = cm.editing
	}
	next, err := UpsertContact(cm.contacts, c, cm.editing == "")
	if err != nil {
		cm.form.SetTitle(fmt.Sprintf(" %s ", err))
		return
	}
	if cm.commit(next) {
		cm.cancel()
	}
}

func (cm *ContactManager) delete(id string) {
	cm.commit(RemoveContact(cm.contacts, id))
}

func (cm *ContactManager) commit(next []mock.Contact) bool {
	if cm.onSave != nil {
		if err := cm.onSave(next); err != nil {
			cm.form.SetTitle(fmt.Sprintf(" %s ", err))
			return false
		}
	}
	cm.Update(next)
	return true
}

func (cm *ContactManager) cancel() {
	cm.clearForm()
	cm.setFocus(cm.table)
}

func (cm *ContactManager) clearForm() {
	cm.editing = ""
	for _, f := range []*tview.InputField{cm.id, cm.name, cm.photo, cm.status} {
		f.SetText("")
	}
	cm.id.SetDisabled(false)
	cm.form.SetTitle(" Contact ")
}

func (cm *ContactManager) setFocus(p tview.Primitive) {
	if cm.focus != nil {
		cm.focus(p)
	}
}

func (cm *ContactManager) contactAt(row int) (mock.Contact, bool) {
	if row < 1 || row > len(cm.contacts) {
		return mock.Contact{}, false
	}
	return cm.contacts[row-1], true
}

func (cm *ContactManager) render() {
	cm.table.Clear()
	for col, h := range []string{" ID", " NAME", " STATUS"} {
		cm.table.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(cm.theme.TableHeaderFg).
			SetBackgroundColor(cm.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(1))
	}
	for i, c := range cm.contacts {
		for col, v := range []string{c.ID, c.Name, c.Status} {
			cm.table.SetCell(i+1, col, tview.NewTableCell(" "+clean(v)).SetTextColor(cm.theme.FgColor).SetExpansion(1))
		}
	}
	cm.table.SetTitle(fmt.Sprintf(" Contacts (%d) ", len(cm.contacts)))
}

// UpsertContact returns contacts with c replacing the entry of the same id,
// or appended when create is set. Creating an existing id fails.
func UpsertContact(contacts []mock.Contact, c mock.Contact, create bool) ([]mock.Contact, error) {
	if c.ID == "" {
		return nil, errors.New("id is required")
	}
	if c.Name == "" {
		return nil, errors.New("name is required")
	}
	out := slices.Clone(contacts)
	i := slices.IndexFunc(out, func(x mock.Contact) bool { return x.ID == c.ID })
	switch {
	case i >= 0 && create:
		return nil, fmt.Errorf("contact %q already exists", c.ID)
	case i >= 0:
		out[i] = c
	case create:
		out = append(out, c)
	default:
		return nil, fmt.Errorf("contact %q not found", c.ID)
	}
	return out, nil
}

// RemoveContact returns contacts without the entry of the given id.
func RemoveContact(contacts []mock.Contact, id string) []mock.Contact {
	return slices.DeleteFunc(slices.Clone(contacts), func(c mock.Contact) bool { return c.ID == id })
}

// NextContactID returns the first free id of the form c<N>.
func NextContactID(contacts []mock.Contact) string {
	taken := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		taken[c.ID] = true
	}
	for n := len(contacts) + 1; ; n++ {
		id := "c" + strconv.Itoa(n)
		if !taken[id] {
			return id
		}
	}
}
