package render

import "github.com/gdamore/tcell/v2"

// PlaceLabels are the shortcut folders listed in the sidebar, in display order.
var PlaceLabels = []string{"Home", "Downloads", "Music", "Videos", "Pictures", "Documents"}

// PlaceAt maps a screen row to a PlaceLabels index.
func PlaceAt(layout Layout, x, y int) (int, bool) {
	if layout.SidebarWidth == 0 || x >= layout.SidebarWidth {
		return 0, false
	}
	idx := y - layout.ListStartY
	if idx < 0 || idx >= len(PlaceLabels) || idx >= layout.ListRows {
		return 0, false
	}
	return idx, true
}

func (r *Renderer) drawSidebar(view View, layout Layout) {
	style := tcell.StyleDefault.Background(r.theme.SidebarBg).Foreground(r.theme.SidebarFg)
	activeStyle := tcell.StyleDefault.Background(r.theme.SidebarActiveBg).Foreground(r.theme.SidebarActiveFg)

	for row := 0; row < layout.ListRows; row++ {
		y := layout.ListStartY + row
		r.fillRow(0, layout.SidebarWidth, y, style)
		if row >= len(PlaceLabels) {
			continue
		}
		rowStyle := style
		if row == view.ActivePlace {
			rowStyle = activeStyle
			r.fillRow(0, layout.SidebarWidth, y, rowStyle)
		}
		label := r.truncateTextToWidth(PlaceLabels[row], layout.SidebarWidth-2)
		r.drawTextLine(1, y, layout.SidebarWidth-1, label, rowStyle)
	}
}
