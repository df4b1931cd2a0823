package ui

import (
	"github.com/charmbracelet/glamour"
)

// maxReadableWidth caps markdown word wrap; wider lines cause
// eye-tracking fatigue.
const maxReadableWidth = 100

// RenderMarkdown renders markdown with glamour at a readable width.
// Returns the input unchanged when colors are disabled or rendering
// fails.
func RenderMarkdown(markdown string) string {
	if !ShouldUseColor() {
		return markdown
	}

	wrapWidth := TerminalWidth(80)
	if wrapWidth > maxReadableWidth {
		wrapWidth = maxReadableWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
