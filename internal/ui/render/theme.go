package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background      tcell.Color
	Foreground      tcell.Color
	SidebarBg       tcell.Color
	SidebarFg       tcell.Color
	SidebarActiveBg tcell.Color
	SidebarActiveFg tcell.Color
	HiddenFg        tcell.Color
	SelectionBg     tcell.Color
	SelectionFg     tcell.Color
	MarkedFg        tcell.Color
	FooterBg        tcell.Color
	FooterFg        tcell.Color
	PreviewBg       tcell.Color
	PreviewFg       tcell.Color
	ErrorFg         tcell.Color
}

// LightTheme is used while dark mode is off. It leaves the terminal's own colors alone.
func LightTheme() ColorTheme {
	return ColorTheme{
		Background:      tcell.ColorDefault,
		Foreground:      tcell.ColorDefault,
		SidebarBg:       tcell.ColorDefault,
		SidebarFg:       tcell.ColorDefault,
		SidebarActiveBg: tcell.Color33,
		SidebarActiveFg: tcell.ColorWhite,
		HiddenFg:        tcell.ColorLightSlateGray,
		SelectionBg:     tcell.Color33,
		SelectionFg:     tcell.ColorWhite,
		MarkedFg:        tcell.Color166,
		FooterBg:        tcell.ColorDefault,
		FooterFg:        tcell.ColorDefault,
		PreviewBg:       tcell.ColorDefault,
		PreviewFg:       tcell.ColorDefault,
		ErrorFg:         tcell.ColorRed,
	}
}

// DarkTheme paints explicit dark backgrounds.
func DarkTheme() ColorTheme {
	return ColorTheme{
		Background:      tcell.Color234,
		Foreground:      tcell.Color252,
		SidebarBg:       tcell.Color235,
		SidebarFg:       tcell.Color250,
		SidebarActiveBg: tcell.Color25,
		SidebarActiveFg: tcell.ColorWhite,
		HiddenFg:        tcell.Color243,
		SelectionBg:     tcell.Color25,
		SelectionFg:     tcell.ColorWhite,
		MarkedFg:        tcell.Color214,
		FooterBg:        tcell.Color236,
		FooterFg:        tcell.Color250,
		PreviewBg:       tcell.Color234,
		PreviewFg:       tcell.Color252,
		ErrorFg:         tcell.Color203,
	}
}

// ThemeFor picks the theme matching the dark mode preference.
func ThemeFor(dark bool) ColorTheme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}
