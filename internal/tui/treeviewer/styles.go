// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     treeviewer
// Description: Styles for the syntax tree viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package treeviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cminus/foundation/cminus/ast"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel    = lipgloss.Color("#1E293B") // Slate 800
	ColorBgSelected = lipgloss.Color("#3B0764") // Purple 950

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Logo/Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
)

// Tree styles
var (
	RootNodeStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StatementNodeStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	ExpressionNodeStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	PositionStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	MarkerStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	CursorStyle = lipgloss.NewStyle().
			Background(ColorBgSelected)

	TreePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)
)

// Error panel styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Tree markers
const (
	MarkerCollapsed = "▸ "
	MarkerExpanded  = "▾ "
	MarkerLeaf      = "· "
)

// Logo
const Logo = "cminus tree viewer"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// NodeStyle returns the style for a node by its category
func NodeStyle(n ast.Node) lipgloss.Style {
	switch n.NodeKind() {
	case ast.Root:
		return RootNodeStyle
	case ast.Statement:
		return StatementNodeStyle
	default:
		return ExpressionNodeStyle
	}
}
