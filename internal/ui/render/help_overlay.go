package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/filer/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(view View) []string {
	dotDesc := "Show dot files"
	if view.State.ShowDotFiles {
		dotDesc = "Hide dot files"
	}
	darkDesc := "Dark mode on"
	if view.State.DarkMode {
		darkDesc = "Dark mode off"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ j/k", desc: "Move cursor"},
				{keys: "↵ → l", desc: "Open folder or file"},
				{keys: "← h ⌫", desc: "Parent folder"},
				{keys: "~", desc: "Home"},
				{keys: "1-6", desc: "Home, Downloads, Music, Videos, Pictures, Documents"},
			},
		},
		{
			title: "Selection",
			entries: []helpOverlayEntry{
				{keys: "Space", desc: "Select / deselect"},
				{keys: "d", desc: "Delete file under cursor"},
				{keys: "D", desc: "Delete selected files"},
			},
		},
		{
			title: "Actions",
			entries: []helpOverlayEntry{
				{keys: "i", desc: "File information"},
				{keys: "y", desc: "Copy path to clipboard"},
				{keys: "o", desc: "Open with default application"},
				{keys: "r", desc: "Refresh directory"},
			},
		},
		{
			title: "Settings",
			entries: []helpOverlayEntry{
				{keys: "s", desc: "Settings panel"},
				{keys: ".", desc: dotDesc},
				{keys: "t", desc: darkDesc},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(view View, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	r.fillRow(0, w, 0, headerStyle)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines(view) {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		r.fillRow(0, w, h-1, headerStyle)
		footerText := r.truncateTextToWidth("? toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footerText, headerStyle)
	}
}
