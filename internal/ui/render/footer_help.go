package render

import "strings"

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(view View) string {
	parts := buildFooterHelpSegments(view)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(view View) []string {
	switch {
	case view.State.IsSettingsExpanded:
		return []string{"t: dark mode", ".: dot files", "s/Esc: close"}
	case view.Info != nil:
		return []string{"i/Esc: close info", "y: copy path"}
	case len(view.State.SelectedFiles) > 0:
		return []string{"space: select", "D: delete selected", "?: help"}
	default:
		return []string{"↵: open", "←: up", "space: select", "i: info", "s: settings", "?: help"}
	}
}
