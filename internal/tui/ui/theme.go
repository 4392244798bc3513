package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	Dark              bool
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
	PhoneBarFg        tcell.Color
	PhoneBarBg        tcell.Color
	OutgoingColor     tcell.Color
	IncomingColor     tcell.Color
	ReadTickColor     tcell.Color
	TypingColor       tcell.Color
	RecColor          tcell.Color
}

// DarkTheme is the night-mode palette.
func DarkTheme() *Theme {
	return &Theme{
		Dark:              true,
		BgColor:           tcell.NewHexColor(0x121212),
		FgColor:           tcell.ColorLightGray,
		BorderColor:       tcell.NewHexColor(0x2a3942),
		BorderFocusColor:  tcell.NewHexColor(0x00a884),
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.NewHexColor(0x121212),
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.NewHexColor(0x00a884),
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.NewHexColor(0x00a884),
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorGray,
		MenuKeyColor:      tcell.NewHexColor(0x00a884),
		TitleColor:        tcell.NewHexColor(0x25d366),
		CounterColor:      tcell.ColorPapayaWhip,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.NewHexColor(0x00a884),
		PhoneBarFg:        tcell.ColorWhite,
		PhoneBarBg:        tcell.NewHexColor(0x1f2c34),
		OutgoingColor:     tcell.NewHexColor(0x25d366),
		IncomingColor:     tcell.ColorWhite,
		ReadTickColor:     tcell.NewHexColor(0x53bdeb),
		TypingColor:       tcell.NewHexColor(0x00a884),
		RecColor:          tcell.ColorRed,
	}
}

// LightTheme is the day-mode palette.
func LightTheme() *Theme {
	return &Theme{
		BgColor:           tcell.NewHexColor(0xece5dd),
		FgColor:           tcell.NewHexColor(0x303030),
		BorderColor:       tcell.NewHexColor(0x075e54),
		BorderFocusColor:  tcell.NewHexColor(0x128c7e),
		TableHeaderFg:     tcell.NewHexColor(0x075e54),
		TableHeaderBg:     tcell.NewHexColor(0xece5dd),
		TableCursorFg:     tcell.ColorWhite,
		TableCursorBg:     tcell.NewHexColor(0x128c7e),
		CrumbActiveFg:     tcell.ColorWhite,
		CrumbActiveBg:     tcell.NewHexColor(0x075e54),
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.NewHexColor(0xdcf8c6),
		MenuKeyColor:      tcell.NewHexColor(0x075e54),
		TitleColor:        tcell.NewHexColor(0x075e54),
		CounterColor:      tcell.NewHexColor(0x128c7e),
		FlashInfoColor:    tcell.NewHexColor(0x075e54),
		FlashWarnColor:    tcell.ColorDarkOrange,
		FlashErrColor:     tcell.ColorRed,
		PromptBorderColor: tcell.NewHexColor(0x075e54),
		PhoneBarFg:        tcell.ColorWhite,
		PhoneBarBg:        tcell.NewHexColor(0x075e54),
		OutgoingColor:     tcell.NewHexColor(0x075e54),
		IncomingColor:     tcell.NewHexColor(0x303030),
		ReadTickColor:     tcell.NewHexColor(0x34b7f1),
		TypingColor:       tcell.NewHexColor(0x128c7e),
		RecColor:          tcell.ColorRed,
	}
}

// ThemeFor picks the palette matching the system status dark mode flag.
func ThemeFor(dark bool) *Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}
