package input

import (
	"github.com/gdamore/tcell/v2"
)

// Command is a user intent decoded from a key press.
type Command int

const (
	None Command = iota
	Quit
	CursorUp
	CursorDown
	PageUp
	PageDown
	CursorTop
	CursorBottom
	Enter
	Parent
	ToggleSelect
	DeleteFile
	DeleteSelected
	ToggleDotFiles
	ToggleDarkMode
	ToggleSettings
	ToggleInfo
	CopyPath
	OpenExternal
	Refresh
	Home
	Place
	ToggleHelp
	Dismiss
	Suspend
)

// Key is a decoded key press. Place carries the sidebar index for the Place command.
type Key struct {
	Command Command
	Place   int
}

// Mode is the UI context a key is interpreted in.
type Mode struct {
	HelpVisible bool
}

// Decode maps a key event to a command.
func Decode(ev *tcell.EventKey, mode Mode) Key {
	if mode.HelpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return Key{Command: Quit}
		case tcell.KeyEscape:
			return Key{Command: ToggleHelp}
		case tcell.KeyRune:
			switch ev.Rune() {
			case '?', 'q', 'Q':
				return Key{Command: ToggleHelp}
			}
		}
		return Key{}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return Key{Command: Quit}
	case tcell.KeyCtrlZ:
		return Key{Command: Suspend}
	case tcell.KeyEscape:
		return Key{Command: Dismiss}
	case tcell.KeyUp:
		return Key{Command: CursorUp}
	case tcell.KeyDown:
		return Key{Command: CursorDown}
	case tcell.KeyPgUp:
		return Key{Command: PageUp}
	case tcell.KeyPgDn:
		return Key{Command: PageDown}
	case tcell.KeyHome:
		return Key{Command: CursorTop}
	case tcell.KeyEnd:
		return Key{Command: CursorBottom}
	case tcell.KeyEnter, tcell.KeyRight:
		return Key{Command: Enter}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Command: Parent}
	case tcell.KeyRune:
		return decodeRune(ev.Rune())
	}
	return Key{}
}

func decodeRune(r rune) Key {
	switch r {
	case 'q', 'Q':
		return Key{Command: Quit}
	case 'k':
		return Key{Command: CursorUp}
	case 'j':
		return Key{Command: CursorDown}
	case 'g':
		return Key{Command: CursorTop}
	case 'G':
		return Key{Command: CursorBottom}
	case 'l':
		return Key{Command: Enter}
	case 'h':
		return Key{Command: Parent}
	case ' ':
		return Key{Command: ToggleSelect}
	case 'd':
		return Key{Command: DeleteFile}
	case 'D':
		return Key{Command: DeleteSelected}
	case '.':
		return Key{Command: ToggleDotFiles}
	case 't':
		return Key{Command: ToggleDarkMode}
	case 's':
		return Key{Command: ToggleSettings}
	case 'i':
		return Key{Command: ToggleInfo}
	case 'y':
		return Key{Command: CopyPath}
	case 'o':
		return Key{Command: OpenExternal}
	case 'r':
		return Key{Command: Refresh}
	case '~':
		return Key{Command: Home}
	case '?':
		return Key{Command: ToggleHelp}
	}
	if r >= '1' && r <= '6' {
		return Key{Command: Place, Place: int(r - '1')}
	}
	return Key{}
}
