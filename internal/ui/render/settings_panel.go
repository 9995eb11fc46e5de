package render

import "github.com/gdamore/tcell/v2"

const settingsPanelWidth = 28

func settingsPanelLines(view View) []string {
	return []string{
		"Settings",
		"",
		checkbox(view.State.DarkMode) + " Dark mode      t",
		checkbox(view.State.ShowDotFiles) + " Show dot files .",
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// drawSettingsPanel draws the expanded settings dropdown under the header's right edge.
func (r *Renderer) drawSettingsPanel(view View, w, h int) {
	lines := settingsPanelLines(view)
	width := settingsPanelWidth
	if width > w {
		width = w
	}
	height := len(lines) + 2
	if height > h-2 {
		height = h - 2
	}
	if width <= 2 || height <= 2 {
		return
	}

	x0 := w - width
	y0 := 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRect(x0, y0, w, y0+height, style)
	for i, line := range lines {
		if i+1 >= height-1 {
			break
		}
		lineStyle := style
		if i == 0 {
			lineStyle = style.Bold(true)
		}
		r.drawTextLine(x0+1, y0+1+i, width-2, r.truncateTextToWidth(line, width-2), lineStyle)
	}
}
