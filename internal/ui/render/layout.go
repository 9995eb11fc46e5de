package render

// Layout describes where the panels of the last frame were drawn.
type Layout struct {
	SidebarWidth   int
	MainPanelStart int
	MainPanelWidth int
	PreviewStart   int
	PreviewWidth   int
	ShowPreview    bool
	ListStartY     int
	ListRows       int
}

const (
	minMainPanelWidth       = 32
	minPreviewPanelWidth    = 28
	minPreviewTerminalWidth = 100
	previewWidthRatio       = 0.45
	previewWidthCap         = 80
	previewInnerPadding     = 1
)

// ComputeLayout splits a w x h screen into sidebar, file list and preview.
// The header takes the first row and the status line the last.
func ComputeLayout(w, h int) Layout {
	if w < 0 {
		w = 0
	}

	layout := Layout{ListStartY: 1}
	layout.ListRows = h - 2
	if layout.ListRows < 0 {
		layout.ListRows = 0
	}

	layout.SidebarWidth = sidebarWidthForWidth(w)
	sideSeparator := 0
	if layout.SidebarWidth > 0 && layout.SidebarWidth < w {
		sideSeparator = 1
	}
	layout.MainPanelStart = layout.SidebarWidth + sideSeparator
	contentWidth := w - layout.MainPanelStart
	if contentWidth < 0 {
		contentWidth = 0
	}
	layout.MainPanelWidth = contentWidth
	layout.PreviewStart = w

	canShowPreview := w >= minPreviewTerminalWidth &&
		contentWidth >= minMainPanelWidth+minPreviewPanelWidth+1
	if !canShowPreview {
		return layout
	}

	previewWidth := clampPreviewRatioWidth(contentWidth)
	if maxPreview := contentWidth - 1 - minMainPanelWidth; previewWidth > maxPreview {
		previewWidth = maxPreview
	}
	if previewWidth < minPreviewPanelWidth {
		return layout
	}

	layout.ShowPreview = true
	layout.PreviewWidth = previewWidth
	layout.MainPanelWidth = contentWidth - 1 - previewWidth
	layout.PreviewStart = layout.MainPanelStart + layout.MainPanelWidth + 1
	return layout
}

func clampPreviewRatioWidth(contentWidth int) int {
	width := int(float64(contentWidth)*previewWidthRatio + 0.5)
	if width < minPreviewPanelWidth {
		width = minPreviewPanelWidth
	}
	if width > previewWidthCap {
		width = previewWidthCap
	}
	return width
}

func sidebarWidthForWidth(w int) int {
	switch {
	case w >= 150:
		return 20
	case w >= 100:
		return 16
	case w >= 65:
		return 13
	default:
		return 0
	}
}
