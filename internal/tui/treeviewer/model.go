// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     treeviewer
// Description: Main Bubbletea model for the syntax tree viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package treeviewer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cminus/foundation/cminus"
	"github.com/msto63/cminus/foundation/cminus/ast"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
	"github.com/msto63/cminus/internal/watch"
	"github.com/msto63/cminus/pkg/core/cache"
	"github.com/msto63/cminus/pkg/core/version"
)

// maxShownErrors limits the error panel
const maxShownErrors = 5

// Loader compiles the source shown in the viewer
type Loader func() (*cminus.Result, error)

// Config holds tree viewer configuration
type Config struct {
	// Source is the name shown in the header and the path watched
	Source string

	// Load compiles the source; called on start and on every reload
	Load Loader

	// Watch reloads the tree when the source file changes
	Watch bool

	// Debounce for the file watcher
	Debounce time.Duration

	// Logger for watcher diagnostics
	Logger *mdwlog.Logger
}

// FileLoader returns a Loader that compiles the file at path. With a cache,
// unchanged source text is not parsed again.
func FileLoader(path string, opts cminus.Options, results *cache.Cache[*cminus.Result]) Loader {
	return func() (*cminus.Result, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to read source").
				WithCode(mdwerror.CodeSourceNotFound).
				WithDetail("path", path)
		}

		compile := func() (*cminus.Result, error) {
			return cminus.Compile(path, bytes.NewReader(src), opts)
		}
		if results == nil {
			return compile()
		}

		res, _, err := results.GetOrSet(path+"\x00"+cache.SourceKey(src), compile)
		return res, err
	}
}

// Model is the main Bubbletea model for the tree viewer
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool
	err     error

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Tree state
	result    *cminus.Result
	rows      []row
	cursor    int
	collapsed map[ast.Node]bool
	showYAML  bool
	yamlText  string
	reloads   int

	// Configuration
	source   string
	load     Loader
	watching bool
}

// New creates a new tree viewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return Model{
		spinner:   sp,
		loading:   true,
		collapsed: make(map[ast.Node]bool),
		source:    cfg.Source,
		load:      cfg.Load,
		watching:  cfg.Watch,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadResult,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Title panel above, errors plus status and help bars below
		headerHeight := 4
		footerHeight := 4 + m.errorLines()
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case resultLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setResult(msg.result)
		}

	case sourceChangedMsg:
		m.loading = true
		cmds = append(cmds, m.loadResult, m.spinner.Tick)
	}

	// Update viewport
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// setResult installs a freshly compiled result
func (m *Model) setResult(res *cminus.Result) {
	if m.result != nil {
		m.reloads++
	}
	m.result = res
	m.collapsed = make(map[ast.Node]bool)
	m.yamlText = ""
	m.refreshRows()
}

func (m *Model) refreshRows() {
	if m.result == nil {
		m.rows = nil
	} else {
		m.rows = flatten(m.result.Program, m.collapsed)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.updateViewportContent()
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyUp:
		m.moveCursor(-1)
	case tea.KeyDown:
		m.moveCursor(1)
	case tea.KeyPgUp:
		m.moveCursor(-m.viewport.Height)
	case tea.KeyPgDown:
		m.moveCursor(m.viewport.Height)
	case tea.KeyEnter, tea.KeySpace:
		m.toggle()

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "k":
			m.moveCursor(-1)
		case "j":
			m.moveCursor(1)
		case "g":
			m.moveCursor(-len(m.rows))
		case "G":
			m.moveCursor(len(m.rows))
		case "e":
			m.collapsed = make(map[ast.Node]bool)
			m.refreshRows()
		case "c":
			if m.result != nil {
				m.collapsed = collapseAll(m.result.Program)
				m.cursor = 0
				m.refreshRows()
			}
		case "y":
			m.showYAML = !m.showYAML
			m.updateViewportContent()
		case "r":
			m.loading = true
			return m, tea.Batch(m.loadResult, m.spinner.Tick)
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.updateViewportContent()
}

// toggle collapses or expands the node under the cursor
func (m *Model) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if r.children == 0 {
		return
	}
	m.collapsed[r.node] = !m.collapsed[r.node]
	m.refreshRows()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading tree viewer..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TreePanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.renderErrors())
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and status
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	name := HeaderStyle.Render(m.source)

	var status string
	switch {
	case m.err != nil:
		status = ErrorStyle.Render("load failed")
	case m.result == nil:
		status = ""
	case m.result.OK():
		status = OKStyle.Render("no syntax errors")
	default:
		status = WarnStyle.Render(fmt.Sprintf("%d syntax errors", len(m.result.Errors)))
	}

	watchStatus := ""
	if m.watching {
		watchStatus = "  " + HelpDescStyle.Render("[watching]")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		name,
		strings.Repeat(" ", 3),
		status,
		watchStatus,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) errorLines() int {
	if m.result == nil || len(m.result.Errors) == 0 {
		return 1
	}
	n := len(m.result.Errors)
	if n > maxShownErrors {
		return maxShownErrors + 1
	}
	return n
}

// renderErrors renders the syntax error panel
func (m Model) renderErrors() string {
	if m.err != nil {
		return ErrorStyle.Render(m.err.Error())
	}
	if m.result == nil || m.result.OK() {
		return OKStyle.Render("✓ parse clean")
	}

	var lines []string
	for i, e := range m.result.Errors {
		if i == maxShownErrors {
			lines = append(lines, HelpDescStyle.Render(fmt.Sprintf("... and %d more", len(m.result.Errors)-maxShownErrors)))
			break
		}
		lines = append(lines, ErrorStyle.Render(">>> "+e.Error()))
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	var leftPart string
	if m.result != nil {
		leftPart = HelpDescStyle.Render(fmt.Sprintf("Tokens: %d  Nodes: %d  Time: %s",
			m.result.Tokens, m.result.Nodes, m.result.Duration.Round(time.Microsecond)))
	}

	centerPart := HelpDescStyle.Render("v" + version.Tool)

	var rightPart string
	if m.loading {
		rightPart = m.spinner.View() + " Compiling..."
	} else {
		rightPart = HelpDescStyle.Render(fmt.Sprintf("Reloads: %d", m.reloads))
	}

	// Calculate padding
	leftLen := lipgloss.Width(leftPart)
	centerLen := lipgloss.Width(centerPart)
	rightLen := lipgloss.Width(rightPart)
	availableSpace := m.width - leftLen - centerLen - rightLen - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("↑/↓", "Move"),
		RenderKeyHint("Enter", "Fold"),
		RenderKeyHint("e/c", "Expand/Collapse all"),
		RenderKeyHint("y", "YAML"),
		RenderKeyHint("r", "Reload"),
		RenderKeyHint("q", "Quit"),
	}

	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent updates the viewport with the visible rows
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	if m.showYAML {
		if m.yamlText == "" && m.result != nil {
			text, err := cminus.RenderTree(m.result.Program, cminus.FormatYAML)
			if err != nil {
				text = err.Error()
			}
			m.yamlText = text
		}
		m.viewport.SetContent(m.yamlText)
		return
	}

	var content strings.Builder
	for i, r := range m.rows {
		content.WriteString(r.render(i == m.cursor))
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())

	// Keep the cursor visible
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// loadResult compiles the source
func (m Model) loadResult() tea.Msg {
	if m.load == nil {
		return resultLoadedMsg{err: mdwerror.New("no source loader configured").
			WithCode(mdwerror.CodeInvalidInput)}
	}
	res, err := m.load()
	return resultLoadedMsg{result: res, err: err}
}

// Run starts the tree viewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())

	if cfg.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w, err := watch.New(cfg.Source, func(string) { p.Send(sourceChangedMsg{}) }, watch.Options{
			Debounce: cfg.Debounce,
			Logger:   cfg.Logger,
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	_, err := p.Run()
	return err
}
