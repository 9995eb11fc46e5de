package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
	statepkg "github.com/kk-code-lab/filer/internal/state"
	textutil "github.com/kk-code-lab/filer/internal/textutil"
)

const (
	appTitle            = "filer"
	breadcrumbSeparator = " › "
)

// View is one frame: the latest snapshot plus state the terminal keeps locally.
type View struct {
	State statepkg.UiState

	Cursor int
	Scroll int
	// ActivePlace indexes PlaceLabels, or -1 when the directory is not a place.
	ActivePlace int

	Info     *fsutil.Metadata
	ShowHelp bool
	Message  string
}

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	lastLayout Layout
	hasLayout  bool
	crumbs     []crumbHit
}

type crumbHit struct {
	start, end int
	path       string
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  LightTheme(),
	}
}

// LastLayout returns the geometry of the most recent frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	return r.lastLayout, r.hasLayout
}

// BreadcrumbAt maps a header column to the directory of the segment drawn there.
func (r *Renderer) BreadcrumbAt(x int) (string, bool) {
	for _, c := range r.crumbs {
		if x >= c.start && x < c.end {
			return c.path, true
		}
	}
	return "", false
}

// Render draws the entire UI for view
func (r *Renderer) Render(view View) {
	r.theme = ThemeFor(view.State.DarkMode)
	r.screen.Clear()

	w, h := r.screen.Size()
	layout := ComputeLayout(w, h)
	r.lastLayout = layout
	r.hasLayout = true

	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	r.fillRect(0, 0, w, h, base)

	if view.ShowHelp {
		r.crumbs = nil
		r.drawHelpOverlay(view, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(view, w)
	if layout.SidebarWidth > 0 {
		r.drawSidebar(view, layout)
	}
	r.drawMainPanel(view, layout)
	if layout.ShowPreview {
		r.drawPreviewPanel(view, layout)
	}
	if view.State.IsSettingsExpanded {
		r.drawSettingsPanel(view, w, h)
	}
	r.drawStatusLine(view, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(view View, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, w, 0, headerStyle)
	r.crumbs = r.crumbs[:0]

	endX := r.drawTextLine(0, 0, w, appTitle, headerStyle.Bold(true))
	if endX < w {
		endX++
	}
	available := w - endX
	if available <= 0 {
		return
	}

	segments := view.State.PathSegments
	if len(segments) == 0 {
		return
	}
	labels := make([]string, len(segments))
	total := 0
	for i, seg := range segments {
		labels[i] = textutil.SanitizeTerminalText(statepkg.SegmentLabel(seg))
		if i > 0 {
			total += r.measureTextWidth(breadcrumbSeparator)
		}
		total += r.measureTextWidth(labels[i])
	}

	// Too long: draw the tail only and disable clicks, which would map to the wrong segment.
	if total > available {
		joined := ""
		for i, l := range labels {
			if i > 0 {
				joined += breadcrumbSeparator
			}
			joined += l
		}
		r.drawTextLine(endX, 0, available, r.fitBreadcrumb(joined, available), headerStyle)
		return
	}

	x := endX
	last := len(labels) - 1
	for i, l := range labels {
		if i > 0 {
			x = r.drawTextLine(x, 0, w-x, breadcrumbSeparator, headerStyle)
		}
		style := headerStyle
		if i == last {
			style = style.Bold(true)
		}
		start := x
		x = r.drawTextLine(x, 0, w-x, l, style)
		r.crumbs = append(r.crumbs, crumbHit{start: start, end: x, path: segments[i]})
	}
}

func (r *Renderer) drawMainPanel(view View, layout Layout) {
	files := view.State.Files
	startX := layout.MainPanelStart
	width := layout.MainPanelWidth
	if width <= 0 || layout.ListRows <= 0 {
		return
	}

	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	if len(files) == 0 {
		r.drawTextLine(startX+1, layout.ListStartY, width-1, "(empty)", base.Foreground(r.theme.HiddenFg))
		return
	}

	for row := 0; row < layout.ListRows; row++ {
		idx := view.Scroll + row
		if idx < 0 || idx >= len(files) {
			break
		}
		path := files[idx]
		y := layout.ListStartY + row

		style := base
		marker := "  "
		switch {
		case view.State.IsSelected(path):
			style = style.Foreground(r.theme.MarkedFg)
			marker = "● "
		case fsutil.IsHiddenPath(path):
			style = style.Foreground(r.theme.HiddenFg)
		}
		if idx == view.Cursor {
			style = style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
			r.fillRow(startX, startX+width, y, style)
		}

		text := r.truncateTextToWidth(marker+textutil.DisplayName(path), width-1)
		r.drawTextLine(startX+1, y, width-1, text, style)
	}
}

// drawStatusLine renders item counts or the last error on the left and key hints on the right.
func (r *Renderer) drawStatusLine(view View, w, h int) {
	if h < 2 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, w, y, style)

	left := statusText(view)
	leftStyle := style
	if view.Message == "" && view.State.LastError != nil {
		leftStyle = style.Foreground(r.theme.ErrorFg)
	}
	left = r.truncateTextToWidth(" "+textutil.SanitizeTerminalText(left), w)
	endX := r.drawTextLine(0, y, w, left, leftStyle)

	help := buildFooterHelpText(view)
	helpWidth := r.measureTextWidth(help)
	if help != "" && endX+helpWidth+1 <= w {
		r.drawTextLine(w-helpWidth, y, helpWidth, help, style)
	}
}

func statusText(view View) string {
	if view.Message != "" {
		return view.Message
	}
	if err := view.State.LastError; err != nil {
		return err.Error()
	}
	text := fmt.Sprintf("%d items", len(view.State.Files))
	if n := len(view.State.SelectedFiles); n > 0 {
		text += fmt.Sprintf(" · %d selected", n)
	}
	return text
}
