package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// truncateTextToWidth keeps the start of text and marks the cut with an ellipsis.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	ellipsisWidth := r.cachedRuneWidth('…')
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	currentWidth := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

// fitBreadcrumb trims from the left, keeping the end of the path visible.
func (r *Renderer) fitBreadcrumb(path string, width int) string {
	if width <= 0 {
		return ""
	}
	if r.measureTextWidth(path) <= width {
		return path
	}

	ellipsisWidth := r.cachedRuneWidth('…')
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if width <= ellipsisWidth {
		return ellipsis
	}

	available := width - ellipsisWidth
	runes := []rune(path)
	start := len(runes)
	currentWidth := 0
	for i := len(runes) - 1; i >= 0; i-- {
		ruWidth := r.cachedRuneWidth(runes[i])
		if currentWidth+ruWidth > available {
			break
		}
		currentWidth += ruWidth
		start = i
	}

	return ellipsis + string(runes[start:])
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 && runes[i] >= 128 {
			combc = append(combc, runes[i])
			i++
		}

		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (r *Renderer) fillRect(x0, y0, x1, y1 int, style tcell.Style) {
	for y := y0; y < y1; y++ {
		r.fillRow(x0, x1, y, style)
	}
}
