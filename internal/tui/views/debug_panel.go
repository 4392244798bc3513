package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// DebugActions are the operations the debug panel triggers.
type DebugActions struct {
	SetStatus       func(mock.SystemStatus) error
	ApplyJSON       func(text string) error
	ResetSession    func()
	TriggerAll      func()
	RestoreDefaults func() error
	Close           func()
	// Data returns the current app data. The panel reloads from it after
	// every successful action so the editor never holds a stale document.
	Data func() mock.AppData
	// OnError receives every failed action in addition to the result line.
	OnError func(error)
}

// StatusFields is the raw text of the system status form.
type StatusFields struct {
	Time     string
	Battery  string
	Charging bool
	Wifi     int
	Network  string
	Provider string
	DarkMode bool
}

// DebugPanel edits the system status and the raw app data.
type DebugPanel struct {
	*tview.Flex
	theme   *ui.Theme
	form    *tview.Form
	editor  *tview.TextArea
	buttons *tview.Form
	result  *tview.TextView
	actions DebugActions
	focusFn func(tview.Primitive)
	loaded  mock.AppData

	clock    *tview.InputField
	battery  *tview.InputField
	charging *tview.Checkbox
	wifi     *tview.DropDown
	network  *tview.InputField
	provider *tview.InputField
	dark     *tview.Checkbox
}

var wifiOptions = []string{"0", "1", "2", "3", "4"}

// NewDebugPanel creates the debug panel.
func NewDebugPanel(theme *ui.Theme, actions DebugActions) *DebugPanel {
	dp := &DebugPanel{
		theme:   theme,
		form:    tview.NewForm(),
		editor:  tview.NewTextArea(),
		buttons: tview.NewForm(),
		result:  tview.NewTextView().SetDynamicColors(true),
		actions: actions,
	}

	dp.clock = tview.NewInputField().SetLabel("Time").SetFieldWidth(6)
	dp.battery = tview.NewInputField().SetLabel("Battery %").SetFieldWidth(4).
		SetAcceptanceFunc(tview.InputFieldInteger)
	dp.charging = tview.NewCheckbox().SetLabel("Charging")
	dp.wifi = tview.NewDropDown().SetLabel("Wifi").SetOptions(wifiOptions, nil)
	dp.network = tview.NewInputField().SetLabel("Network").SetFieldWidth(8)
	dp.provider = tview.NewInputField().SetLabel("Provider").SetFieldWidth(16)
	dp.dark = tview.NewCheckbox().SetLabel("Dark mode")

	dp.form.
		AddFormItem(dp.clock).
		AddFormItem(dp.battery).
		AddFormItem(dp.charging).
		AddFormItem(dp.wifi).
		AddFormItem(dp.network).
		AddFormItem(dp.provider).
		AddFormItem(dp.dark).
		AddButton("Apply Status", dp.applyStatus).
		AddButton("Reset Session", dp.run(actions.ResetSession, "session reset")).
		AddButton("Trigger All", dp.run(actions.TriggerAll, "all triggers delivered")).
		AddButton("Restore Defaults", dp.restoreDefaults).
		AddButton("Close", dp.close)
	dp.form.SetBorder(true)
	dp.form.SetTitle(" System status ")
	dp.form.SetCancelFunc(dp.close)

	dp.editor.SetBorder(true)
	dp.editor.SetTitle(" App data (JSON) ")

	dp.buttons.
		AddButton("Apply JSON", dp.applyJSON).
		AddButton("Revert", dp.revertEditor)
	dp.buttons.SetCancelFunc(dp.close)

	dp.result.SetBorderPadding(0, 0, 1, 1)

	editorCol := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(dp.editor, 0, 1, false).
		AddItem(dp.buttons, 3, 0, false).
		AddItem(dp.result, 1, 0, false)

	dp.Flex = tview.NewFlex().
		AddItem(dp.form, 44, 0, true).
		AddItem(editorCol, 0, 1, false)

	// Tab hops between the status form and the editor.
	dp.editor.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyTab:
			dp.focus(dp.buttons)
			return nil
		case tcell.KeyEscape:
			dp.close()
			return nil
		}
		return ev
	})
	dp.ApplyTheme()
	return dp
}

// SetFocusFunc sets how focus moves inside the panel.
func (dp *DebugPanel) SetFocusFunc(fn func(tview.Primitive)) {
	dp.focusFn = fn
}

func (dp *DebugPanel) focus(p tview.Primitive) {
	if dp.focusFn != nil {
		dp.focusFn(p)
	}
}

// FocusEditor moves focus to the JSON editor.
func (dp *DebugPanel) FocusEditor() {
	dp.focus(dp.editor)
}

// ApplyTheme implements ui.Themed.
func (dp *DebugPanel) ApplyTheme() {
	t := dp.theme
	for _, f := range []*tview.Form{dp.form, dp.buttons} {
		f.SetBorderColor(t.BorderFocusColor)
		f.SetBackgroundColor(t.BgColor)
		f.SetTitleColor(t.TitleColor)
		f.SetLabelColor(t.MenuKeyColor)
		f.SetFieldBackgroundColor(t.TableHeaderBg)
		f.SetFieldTextColor(t.FgColor)
		f.SetButtonBackgroundColor(t.TableCursorBg)
		f.SetButtonTextColor(t.TableCursorFg)
	}
	dp.editor.SetBorderColor(t.BorderColor)
	dp.editor.SetTitleColor(t.TitleColor)
	dp.editor.SetBackgroundColor(t.BgColor)
	dp.editor.SetTextStyle(tcell.StyleDefault.Foreground(t.FgColor).Background(t.BgColor))
	dp.result.SetBackgroundColor(t.BgColor)
	dp.result.SetTextColor(t.FgColor)
	dp.Flex.SetBackgroundColor(t.BgColor)
}

// Name implements Component.
func (dp *DebugPanel) Name() string { return "Debug" }

// Start implements Component.
func (dp *DebugPanel) Start() {}

// Stop implements Component.
func (dp *DebugPanel) Stop() {
	dp.result.SetText("")
}

// Hints implements Component.
func (dp *DebugPanel) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Close"},
	}
}

// Dirty reports whether the editor holds edits not yet applied.
func (dp *DebugPanel) Dirty() bool {
	text, err := mock.EncodeIndent(dp.loaded)
	return err != nil || dp.editor.GetText() != string(text)
}

// Load fills the form and the editor from d.
func (dp *DebugPanel) Load(d mock.AppData) {
	dp.loaded = d
	dp.loadStatus(d.SystemStatus)
	dp.loadEditor(d)
}

func (dp *DebugPanel) loadEditor(d mock.AppData) {
	text, err := mock.EncodeIndent(d)
	if err != nil {
		dp.report(err)
		return
	}
	dp.editor.SetText(string(text), false)
}

func (dp *DebugPanel) loadStatus(s mock.SystemStatus) {
	dp.clock.SetText(s.Time)
	dp.battery.SetText(strconv.Itoa(s.Battery.Percent))
	dp.charging.SetChecked(s.Battery.Charging)
	dp.wifi.SetCurrentOption(min(max(s.Wifi, 0), len(wifiOptions)-1))
	dp.network.SetText(s.Network.Type)
	dp.provider.SetText(s.Network.Provider)
	dp.dark.SetChecked(s.DarkMode)
}

// Fields returns the current form values.
func (dp *DebugPanel) Fields() StatusFields {
	wifi, _ := dp.wifi.GetCurrentOption()
	return StatusFields{
		Time:     dp.clock.GetText(),
		Battery:  dp.battery.GetText(),
		Charging: dp.charging.IsChecked(),
		Wifi:     wifi,
		Network:  dp.network.GetText(),
		Provider: dp.provider.GetText(),
		DarkMode: dp.dark.IsChecked(),
	}
}

// ParseStatus converts form values into a system status. Validation of
// ranges is left to the data layer.
func ParseStatus(f StatusFields) (mock.SystemStatus, error) {
	pct := 0
	if s := strings.TrimSpace(f.Battery); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return mock.SystemStatus{}, fmt.Errorf("battery: %w", err)
		}
		pct = n
	}
	return mock.SystemStatus{
		Time:     strings.TrimSpace(f.Time),
		Battery:  mock.Battery{Percent: pct, Charging: f.Charging},
		Wifi:     f.Wifi,
		Network:  mock.Network{Type: strings.TrimSpace(f.Network), Provider: strings.TrimSpace(f.Provider)},
		DarkMode: f.DarkMode,
	}, nil
}

func (dp *DebugPanel) applyStatus() {
	s, err := ParseStatus(dp.Fields())
	if err == nil && dp.actions.SetStatus != nil {
		err = dp.actions.SetStatus(s)
	}
	dp.done(err, "status applied")
}

func (dp *DebugPanel) applyJSON() {
	var err error
	if dp.actions.ApplyJSON != nil {
		err = dp.actions.ApplyJSON(dp.editor.GetText())
	}
	dp.done(err, "data saved")
}

func (dp *DebugPanel) restoreDefaults() {
	var err error
	if dp.actions.RestoreDefaults != nil {
		err = dp.actions.RestoreDefaults()
	}
	dp.done(err, "defaults restored")
}

// revertEditor drops unsaved edits in the editor.
func (dp *DebugPanel) revertEditor() {
	dp.loadEditor(dp.loaded)
	dp.result.SetText("")
	dp.focus(dp.editor)
}

func (dp *DebugPanel) run(fn func(), msg string) func() {
	return func() {
		if fn != nil {
			fn()
		}
		dp.done(nil, msg)
	}
}

func (dp *DebugPanel) close() {
	if dp.actions.Close != nil {
		dp.actions.Close()
	}
}

func (dp *DebugPanel) done(err error, msg string) {
	if err != nil {
		dp.report(err)
		if dp.actions.OnError != nil {
			dp.actions.OnError(err)
		}
		return
	}
	if dp.actions.Data != nil {
		dp.Load(dp.actions.Data())
	}
	dp.result.SetText(fmt.Sprintf("[%s]%s[-]", ui.ColorName(dp.theme.FlashInfoColor), msg))
}

func (dp *DebugPanel) report(err error) {
	dp.result.SetText(fmt.Sprintf("[%s]%s[-]", ui.ColorName(dp.theme.FlashErrColor), tview.Escape(err.Error())))
}
