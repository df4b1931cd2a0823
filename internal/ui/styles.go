// Package ui provides terminal styling for todoscan CLI output.
// Uses the Ayu color theme with adaptive light/dark mode support.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/steveyegge/todoscan/internal/types"
)

// Ayu theme color palette
// Dark: https://terminalcolors.com/themes/ayu/dark/
// Light: https://terminalcolors.com/themes/ayu/light/
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300", // ayu light bright green
		Dark:  "#c2d94c", // ayu dark bright green
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49", // ayu light bright yellow
		Dark:  "#ffb454", // ayu dark bright yellow
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171", // ayu light bright red
		Dark:  "#f07178", // ayu dark bright red
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99", // ayu light muted
		Dark:  "#6c7680", // ayu dark muted
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6", // ayu light bright blue
		Dark:  "#59c2ff", // ayu dark bright blue
	}
	ColorPurple = lipgloss.AdaptiveColor{
		Light: "#a37acc", // ayu light purple
		Dark:  "#d2a6ff", // ayu dark purple
	}
)

// Status styles - consistent across all commands
var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// HeaderStyle for section headers - bold with accent color
var HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

// tagStyles maps each tag to its severity coloring. BUG and FIXME read
// as failures, HACK and XXX as warnings, NOTE stays muted.
var tagStyles = map[types.Tag]lipgloss.Style{
	types.TagTodo:  AccentStyle,
	types.TagFixme: FailStyle,
	types.TagHack:  WarnStyle,
	types.TagXxx:   WarnStyle,
	types.TagBug:   FailStyle,
	types.TagNote:  MutedStyle,
}

// RenderTag renders a bracketed tag label with its severity color.
func RenderTag(tag types.Tag) string {
	style, ok := tagStyles[tag]
	if !ok {
		style = MutedStyle
	}
	return style.Render("[" + tag.String() + "]")
}

// RenderPriority marks high/urgent priority; normal renders empty.
func RenderPriority(p types.Priority) string {
	switch p {
	case types.PriorityHigh:
		return WarnStyle.Render("!")
	case types.PriorityUrgent:
		return FailStyle.Render("!!")
	}
	return ""
}

// RenderPass renders text with pass (green) styling
func RenderPass(s string) string {
	return PassStyle.Render(s)
}

// RenderFail renders text with fail (red) styling
func RenderFail(s string) string {
	return FailStyle.Render(s)
}

// RenderMuted renders text with muted (gray) styling
func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}

// RenderAccent renders text with accent (blue) styling
func RenderAccent(s string) string {
	return AccentStyle.Render(s)
}

// RenderHeader renders a bold section header
func RenderHeader(s string) string {
	return HeaderStyle.Render(s)
}

// Separator for section breaks
const Separator = "──────────────────────────────────────────"

// RenderSeparator renders the separator line in muted color
func RenderSeparator() string {
	return MutedStyle.Render(Separator)
}
