package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/gesture"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/tui/keys"
	"github.com/matheus3301/mockmsg/internal/tui/model"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/matheus3301/mockmsg/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageChats     = "chats"
	pageChat      = "chat"
	pageContacts  = "contacts"
	pageDebug     = "debug"
	pageInspector = "inspector"
	pageHelp      = "help"
)

// Options configure the application shell.
type Options struct {
	// Gesture detects the triple press that toggles the debug panel.
	Gesture *gesture.TapDetector
	// GestureKey is the key counted by Gesture.
	GestureKey rune
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	vm       *model.ViewModel
	logger   *zap.Logger
	registry *keys.Registry
	gesture  *gesture.TapDetector
	tapKey   rune

	root      *tview.Flex
	phoneBar  *ui.PhoneBar
	logo      *ui.Logo
	crumbs    *ui.Crumbs
	film      *views.FilmIndicator
	pages     *ui.Pages
	prompt    *ui.Prompt
	menu      *ui.Menu
	flash     *ui.FlashBar
	chatList  *views.ChatList
	chatView  *views.ChatView
	contacts  *views.ContactManager
	debug     *views.DebugPanel
	inspector *views.MessageInspector
	help      *views.HelpView

	components map[string]ui.Component
	focusOf    map[string]tview.Primitive
	themed     []ui.Themed

	promptOpen bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewApp creates the TUI application around a loaded view model.
func NewApp(vm *model.ViewModel, logger *zap.Logger, opts Options) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Gesture == nil {
		opts.Gesture = gesture.NewTapDetector(gesture.DefaultTaps, gesture.DefaultWindow)
	}
	if opts.GestureKey == 0 {
		opts.GestureKey = '`'
	}
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.ThemeFor(vm.DarkMode())

	a := &App{
		app:      tview.NewApplication(),
		theme:    theme,
		vm:       vm,
		logger:   logger,
		registry: keys.NewRegistry(),
		gesture:  opts.Gesture,
		tapKey:   opts.GestureKey,
		ctx:      ctx,
		cancel:   cancel,
	}

	a.phoneBar = ui.NewPhoneBar(theme)
	a.logo = ui.NewLogo(theme)
	a.crumbs = ui.NewCrumbs(theme)
	a.film = views.NewFilmIndicator(theme)
	a.pages = ui.NewPages()
	a.prompt = ui.NewPrompt(theme, CommandNames)
	a.menu = ui.NewMenu(theme)
	a.flash = ui.NewFlashBar(theme)
	a.chatList = views.NewChatList(theme)
	a.chatView = views.NewChatView(theme)
	a.contacts = views.NewContactManager(theme)
	a.inspector = views.NewMessageInspector(theme)
	a.help = views.NewHelpView(theme)
	a.debug = views.NewDebugPanel(theme, views.DebugActions{
		SetStatus:       vm.SetSystemStatus,
		ApplyJSON:       vm.UpdateJSON,
		ResetSession:    vm.ResetSession,
		TriggerAll:      func() { vm.TriggerAll() },
		RestoreDefaults: vm.RestoreDefaults,
		Close:           a.back,
		Data:            vm.Data,
		OnError:         vm.Flash.Err,
	})

	a.components = map[string]ui.Component{
		pageChats:     a.chatList,
		pageChat:      a.chatView,
		pageContacts:  a.contacts,
		pageDebug:     a.debug,
		pageInspector: a.inspector,
		pageHelp:      a.help,
	}
	a.focusOf = map[string]tview.Primitive{
		pageChats:     a.chatList,
		pageChat:      a.chatView.Messages(),
		pageContacts:  a.contacts,
		pageDebug:     a.debug,
		pageInspector: a.inspector,
		pageHelp:      a.help,
	}
	a.themed = []ui.Themed{
		a.phoneBar, a.logo, a.crumbs, a.film, a.prompt, a.menu, a.flash,
		a.chatList, a.chatView, a.contacts, a.debug, a.inspector, a.help,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("command", &keys.Action{
		Key: tcell.KeyRune, Rune: ':',
		Description: "Command", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal("debug", &keys.Action{
		Key: tcell.KeyRune, Rune: 'D',
		Description: "Debug", Visible: true,
		Handler: a.toggleDebug,
	})
	a.registry.AddGlobal("film", &keys.Action{
		Key: tcell.KeyRune, Rune: 'f',
		Description: "Film", Visible: true,
		Handler: a.toggleFilm,
	})
	a.registry.AddGlobal("help", &keys.Action{
		Key: tcell.KeyRune, Rune: '?',
		Description: "Help", Visible: true,
		Handler: func() { a.push(pageHelp) },
	})

	a.registry.AddView(pageChats, "filter", &keys.Action{
		Key: tcell.KeyRune, Rune: '/',
		Description: "Filter", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageChats, "contacts", &keys.Action{
		Key: tcell.KeyRune, Rune: 'c',
		Description: "Contacts", Visible: true,
		Handler: a.openContacts,
	})
	a.registry.AddView(pageChats, "quit", &keys.Action{
		Key: tcell.KeyRune, Rune: 'q',
		Description: "Quit", Visible: true,
		Handler: a.Stop,
	})

	a.registry.AddView(pageChat, "compose", &keys.Action{
		Key: tcell.KeyRune, Rune: 'i',
		Description: "Compose", Visible: true,
		Handler: func() { a.app.SetFocus(a.chatView.Composer()) },
	})
	a.registry.AddView(pageChat, "tap", &keys.Action{
		Key: tcell.KeyRune, Rune: 't',
		Description: "Tap", Visible: true,
		Handler: a.tap,
	})

	a.registry.AddView(pageDebug, "edit", &keys.Action{
		Key:         tcell.KeyCtrlE,
		Description: "Edit JSON",
		Visible:     true,
		Handler:     a.debug.FocusEditor,
	})
}

func (a *App) setupCallbacks() {
	a.chatList.SetSelectedFunc(func(row, _ int) {
		if id := a.chatList.ChatByIndex(row); id != "" {
			a.openChat(id)
		}
	})

	a.chatView.SetSenderName(a.vm.SenderName)
	a.chatView.SetOnSend(func(text string) {
		if _, err := a.vm.Send(text); err != nil {
			a.vm.Flash.Err(err)
		}
	})
	a.chatView.SetOnInspect(a.openInspector)

	a.contacts.SetOnSave(func(c []mock.Contact) error {
		if err := a.vm.SaveContacts(c); err != nil {
			a.vm.Flash.Err(err)
			return err
		}
		a.vm.Flash.Info("contacts saved")
		return nil
	})
	a.contacts.SetFocusFunc(func(p tview.Primitive) { a.app.SetFocus(p) })
	a.debug.SetFocusFunc(func(p tview.Primitive) { a.app.SetFocus(p) })

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptFilter:
			a.chatList.SetFilter(text)
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		}
	})
	a.prompt.SetOnChange(a.chatList.SetFilter)
	a.prompt.SetOnCancel(func() {
		if a.prompt.Mode() == ui.PromptFilter {
			a.chatList.ClearFilter()
		}
		a.hidePrompt()
	})

	a.pages.SetOnChange(func(stack []string) {
		names := make([]string, 0, len(stack))
		for _, n := range stack {
			names = append(names, a.components[n].Name())
		}
		a.crumbs.Update(names)
		a.updateMenu()
	})
}

func (a *App) setupLayout() {
	a.pages.AddPage(pageChats, a.chatList, true, false)
	a.pages.AddPage(pageChat, a.chatView, true, false)
	a.pages.AddPage(pageContacts, a.contacts, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.AddPage(pageInspector, modal(a.inspector, 60, 11), true, false)
	a.pages.AddPage(pageDebug, modal(a.debug, 120, 30), true, false)

	header := tview.NewFlex().
		AddItem(a.logo, 10, 0, false).
		AddItem(a.crumbs, 0, 1, false).
		AddItem(a.film, 22, 0, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.phoneBar, 1, 0, false).
		AddItem(header, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.flash, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.pages.Reset(pageChats)
	a.app.SetInputCapture(a.handleKey)
}

// modal centers p in a box of the given size.
func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// countsGesture reports whether a gesture key press is a tap. Text inputs
// keep the key as typed text.
func (a *App) countsGesture(focused tview.Primitive) bool {
	if a.promptOpen {
		return false
	}
	switch focused.(type) {
	case *tview.InputField, *tview.TextArea:
		return false
	}
	return true
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	current := a.pages.Current()
	focused := a.app.GetFocus()

	if event.Key() == tcell.KeyRune && event.Rune() == a.tapKey && a.countsGesture(focused) {
		if a.gesture.Tap(time.Now()) {
			a.toggleDebug()
			return nil
		}
	}

	// Let text input widgets handle all keys normally.
	switch focused.(type) {
	case *tview.InputField, *tview.TextArea:
		if event.Key() == tcell.KeyEscape && focused == a.chatView.Composer() {
			a.app.SetFocus(a.chatView.Messages())
			return nil
		}
		if current == pageDebug && a.registry.HandleView(pageDebug, event) {
			return nil
		}
		return event
	}
	if current == pageDebug {
		if a.registry.HandleView(pageDebug, event) {
			return nil
		}
		return event
	}
	if current == pageContacts && focused != a.contacts.Table() {
		return event
	}

	if event.Key() == tcell.KeyEscape {
		if current == pageChats && a.chatList.Filter() != "" {
			a.chatList.ClearFilter()
			return nil
		}
		a.back()
		return nil
	}

	if current == pageChats && event.Key() == tcell.KeyRune && event.Rune() >= '1' && event.Rune() <= '9' {
		if id := a.chatList.ChatByIndex(int(event.Rune() - '0')); id != "" {
			a.openChat(id)
		}
		return nil
	}

	if a.registry.HandleEvent(current, event) {
		return nil
	}
	return event
}

func (a *App) push(name string) {
	if a.pages.Current() == name {
		return
	}
	if name == pageInspector || name == pageDebug {
		a.pages.PushModal(name)
	} else {
		a.pages.Push(name)
	}
	a.components[name].Start()
	a.app.SetFocus(a.focusOf[name])
}

// back pops the top page. Leaving the chat view cancels its pending
// triggers.
func (a *App) back() {
	if a.pages.Depth() <= 1 {
		return
	}
	top := a.pages.Pop()
	a.components[top].Stop()
	if top == pageChat {
		a.vm.CloseChat()
	}
	a.app.SetFocus(a.focusOf[a.pages.Current()])
	a.refresh()
}

func (a *App) openChat(id string) {
	if err := a.vm.OpenChat(id); err != nil {
		a.vm.Flash.Err(err)
		return
	}
	a.pages.PopTo(pageChats)
	a.renderChat()
	a.push(pageChat)
}

func (a *App) openContacts() {
	a.contacts.Update(a.vm.Contacts())
	a.push(pageContacts)
}

func (a *App) openInspector(m mock.Message) {
	a.inspector.Update(m, a.vm.SenderName(m))
	a.push(pageInspector)
}

func (a *App) toggleDebug() {
	if a.pages.Current() == pageDebug {
		a.back()
		return
	}
	a.debug.Load(a.vm.Data())
	a.push(pageDebug)
}

func (a *App) toggleFilm() {
	on := a.vm.ToggleFilm()
	if on {
		a.root.ResizeItem(a.menu, 0, 0)
		a.root.ResizeItem(a.flash, 0, 0)
	} else {
		a.root.ResizeItem(a.menu, 1, 0)
		a.root.ResizeItem(a.flash, 1, 0)
		a.film.SetText("")
	}
	a.logger.Info("film mode", zap.Bool("on", on))
	a.refresh()
}

func (a *App) tap() {
	fired, err := a.vm.TapTrigger()
	switch {
	case err != nil:
		a.vm.Flash.Err(err)
	case !fired:
		a.vm.Flash.Warn("no tap trigger left")
	}
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.promptOpen = true
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.promptOpen = false
	a.root.ResizeItem(a.prompt, 0, 0)
	a.app.SetFocus(a.focusOf[a.pages.Current()])
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "chat":
		id := a.findChat(cmd.Args)
		if id == "" {
			a.vm.Flash.Warn("no chat matches " + cmd.Args)
			return
		}
		a.openChat(id)
	case "contacts":
		a.openContacts()
	case "debug":
		a.toggleDebug()
	case "tap":
		a.tap()
	case "all":
		a.vm.Flash.Info("delivered " + strconv.Itoa(a.vm.TriggerAll()) + " messages")
	case "reset":
		a.vm.ResetSession()
		a.vm.Flash.Info("session reset")
	case "defaults":
		if err := a.vm.RestoreDefaults(); err != nil {
			a.vm.Flash.Err(err)
		}
	case "dark", "light":
		s := a.vm.SystemStatus()
		s.DarkMode = cmd.Name == "dark"
		if err := a.vm.SetSystemStatus(s); err != nil {
			a.vm.Flash.Err(err)
		}
	case "film":
		a.toggleFilm()
	case "help":
		a.push(pageHelp)
	case "quit":
		a.Stop()
	default:
		a.vm.Flash.Warn("unknown command: " + cmd.Name)
	}
}

// findChat matches a contact by id or by a case-insensitive name prefix.
func (a *App) findChat(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	for _, c := range a.vm.Contacts() {
		if strings.ToLower(c.ID) == q {
			return c.ID
		}
	}
	for _, c := range a.vm.Contacts() {
		if strings.HasPrefix(strings.ToLower(c.Name), q) {
			return c.ID
		}
	}
	return ""
}

func (a *App) updateMenu() {
	current := a.pages.Current()
	var hints []ui.MenuHint
	if c, ok := a.components[current]; ok {
		hints = append(hints, c.Hints()...)
	}
	hints = append(hints, a.registry.Hints(current)...)
	a.menu.Update(hints)
}

// refresh re-renders every view from the view model. It runs on the UI
// goroutine.
func (a *App) refresh() {
	if dark := a.vm.DarkMode(); dark != a.theme.Dark {
		*a.theme = *ui.ThemeFor(dark)
		for _, t := range a.themed {
			t.ApplyTheme()
		}
		a.updateMenu()
	}

	a.phoneBar.Update(a.vm.SystemStatus())
	a.chatList.Update(a.chatRows())
	if a.pages.InStack(pageChat) {
		if a.vm.ActiveChat() == "" {
			a.pages.PopTo(pageChats)
			a.app.SetFocus(a.chatList)
		} else {
			a.renderChat()
		}
	}
	if a.pages.Current() != pageContacts {
		a.contacts.Update(a.vm.Contacts())
	}
	a.tick()
}

// tick updates the time-driven parts: flash expiry and the REC counter.
func (a *App) tick() {
	if elapsed, on := a.vm.Filming(); on {
		a.film.Update(elapsed)
		a.flash.Update(ui.FlashMessage{}, false)
		return
	}
	a.flash.Update(a.vm.Flash.Current())
}

func (a *App) renderChat() {
	c, ok := a.vm.ActiveContact()
	if !ok {
		return
	}
	a.chatView.SetContact(c)
	a.chatView.Update(a.vm.ChatMessages(c.ID), a.vm.IsTyping(c.ID))
}

func (a *App) chatRows() []views.ChatRow {
	contacts := a.vm.Contacts()
	rows := make([]views.ChatRow, 0, len(contacts))
	for _, c := range contacts {
		row := views.ChatRow{
			ContactID: c.ID,
			Name:      c.Name,
			Status:    c.Status,
			Typing:    a.vm.IsTyping(c.ID),
		}
		if m, ok := a.vm.LastMessage(c.ID); ok {
			row.Preview = m.Text
			row.Time = m.Time
			row.FromMe = m.From == mock.Me
		}
		rows = append(rows, row)
	}
	return rows
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.vm.Start(a.ctx)
	a.refresh()
	a.startRefreshLoop()
	return a.app.Run()
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-a.vm.RefreshCh():
				a.app.QueueUpdateDraw(a.refresh)
			case <-a.vm.Flash.Watch():
				a.app.QueueUpdateDraw(a.tick)
			case <-ticker.C:
				a.app.QueueUpdateDraw(a.tick)
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Reload is called when the data changed outside the UI.
func (a *App) Reload(d mock.AppData) {
	a.vm.Reload(d)
	a.app.QueueUpdateDraw(a.reloadDebug)
	a.vm.Flash.Info("scenario reloaded")
}

// reloadDebug refreshes an open debug panel unless its editor holds edits.
func (a *App) reloadDebug() {
	if a.pages.InStack(pageDebug) && !a.debug.Dirty() {
		a.debug.Load(a.vm.Data())
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.vm.Stop()
	a.app.Stop()
}
