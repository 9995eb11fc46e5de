package render

import (
	"image"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/filer/internal/textutil"
	"golang.org/x/image/draw"
)

const upperHalfBlock = '▀'

func (r *Renderer) drawPreviewPanel(view View, layout Layout) {
	style := tcell.StyleDefault.Background(r.theme.PreviewBg).Foreground(r.theme.PreviewFg)
	sepStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.HiddenFg)
	for y := layout.ListStartY; y < layout.ListStartY+layout.ListRows; y++ {
		r.screen.SetContent(layout.PreviewStart-1, y, '│', nil, sepStyle)
	}
	r.fillRect(layout.PreviewStart, layout.ListStartY, layout.PreviewStart+layout.PreviewWidth, layout.ListStartY+layout.ListRows, style)

	x := layout.PreviewStart + previewInnerPadding
	width := layout.PreviewWidth - 2*previewInnerPadding
	if width <= 0 || layout.ListRows <= 0 {
		return
	}

	switch {
	case view.Info != nil:
		r.drawLines(x, layout.ListStartY, width, layout.ListRows, InfoLines(*view.Info), style)
	case view.State.ImageForPreview != nil:
		title := r.truncateTextToWidth(textutil.DisplayName(view.State.PreviewPath), width)
		r.drawTextLine(x, layout.ListStartY, width, title, style.Bold(true))
		r.drawImage(view.State.ImageForPreview, x, layout.ListStartY+1, width, layout.ListRows-1)
	default:
		hint := r.truncateTextToWidth("No preview", width)
		r.drawTextLine(x, layout.ListStartY, width, hint, style.Foreground(r.theme.HiddenFg))
	}
}

func (r *Renderer) drawLines(x, y, width, rows int, lines []string, style tcell.Style) {
	for i, line := range lines {
		if i >= rows {
			return
		}
		text := r.truncateTextToWidth(textutil.SanitizeTerminalText(line), width)
		r.drawTextLine(x, y+i, width, text, style)
	}
}

// drawImage paints img into a cols x rows cell box, two pixels per cell using
// the upper half block: foreground is the top pixel, background the bottom one.
func (r *Renderer) drawImage(img image.Image, x, y, cols, rows int) {
	pixels := fitPixels(img, cols, rows*2)
	if pixels == nil {
		return
	}
	b := pixels.Bounds()
	for cy := 0; cy*2 < b.Dy(); cy++ {
		for cx := 0; cx < b.Dx(); cx++ {
			top := pixels.RGBAAt(cx, cy*2)
			style := tcell.StyleDefault.Foreground(rgbColor(top.R, top.G, top.B))
			if cy*2+1 < b.Dy() {
				bottom := pixels.RGBAAt(cx, cy*2+1)
				style = style.Background(rgbColor(bottom.R, bottom.G, bottom.B))
			} else {
				style = style.Background(r.theme.PreviewBg)
			}
			r.screen.SetContent(x+cx, y+cy, upperHalfBlock, nil, style)
		}
	}
}

// fitPixels scales img into at most maxW x maxH pixels, keeping the aspect ratio.
func fitPixels(img image.Image, maxW, maxH int) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return nil
	}

	dw, dh := w, h
	if dw > maxW {
		dh = dh * maxW / dw
		dw = maxW
	}
	if dh > maxH {
		dw = dw * maxH / dh
		dh = maxH
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	if dw == w && dh == h {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

func rgbColor(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
