// Package results provides the Bubble Tea screen shown after a drill.
package results

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/stats"
)

const (
	tabSummary = iota
	tabPitches
)

const (
	plotHeight  = 6
	curveWindow = 3
)

// RestartMsg asks the parent model to start a new drill.
type RestartMsg struct{}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next tab")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev tab")),
		Restart: key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "new drill")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model implements the Bubble Tea results UI.
type Model struct {
	report stats.Report

	tabs       []string
	activeTab  int
	viewport   viewport.Model
	pitchTable table.Model
	keys       keyMap
	help       help.Model
	width      int
	height     int
}

// New builds a results screen for report, sized for a width x height terminal.
func New(report stats.Report, width, height int) *Model {
	m := &Model{
		report:   report,
		tabs:     []string{"Summary", "Pitches"},
		viewport: viewport.New(0, 0),
		keys:     newKeyMap(),
		help:     help.New(),
	}
	m.pitchTable = buildPitchTable(report.PitchAggs)
	m.resize(width, height)
	return m
}

// Report returns the data shown on the screen.
func (m *Model) Report() stats.Report {
	return m.report
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			return m, func() tea.Msg { return RestartMsg{} }
		case key.Matches(msg, m.keys.Next):
			m.moveTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveTab(-1)
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabPitches {
			m.pitchTable, cmd = m.pitchTable.Update(msg)
			return m, cmd
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	footer := headerStyle.Render(m.help.View(m.keys))
	bodyHeight := m.bodyHeight()
	var body string
	if m.activeTab == tabPitches {
		if len(m.report.PitchAggs) == 0 {
			body = "No pitch stats yet."
		} else {
			body = tableMutedStyle.Render(m.pitchTable.View())
		}
	} else {
		body = m.viewport.View()
	}
	if m.width <= 0 || m.height <= 0 {
		return strings.Join([]string{header, body, footer}, "\n")
	}
	return strings.Join([]string{
		fitLines(header, m.width, lipgloss.Height(header)),
		fitLines(body, m.width, bodyHeight),
		fitLines(footer, m.width, 1),
	}, "\n")
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabPitches {
		m.pitchTable.Focus()
	} else {
		m.pitchTable.Blur()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	contentWidth := width
	if contentWidth <= 0 {
		contentWidth = 80
	}
	bodyHeight := m.bodyHeight()
	m.viewport.Width = contentWidth
	m.viewport.Height = bodyHeight
	m.viewport.SetContent(renderOverview(m.report, contentWidth))
	m.pitchTable.SetWidth(contentWidth)
	m.pitchTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	return maxInt(1, m.height-lipgloss.Height(m.renderHeader())-1)
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return tabs + "\n" + headerStyle.Render(truncateLine(headline(m.report.Last), m.width))
}

func headline(last model.DrillAggregate) string {
	if last.Answered == 0 {
		return "No drill finished yet."
	}
	acc, lat := stats.DrillMetrics(last.Score, last.Answered, last.LatencyMs)
	return fmt.Sprintf("Drill finished: %d/%d  accuracy %.1f%%  mean %.0f ms  mode %s",
		last.Score, last.Rounds, acc*100, lat, last.Mode)
}

func renderOverview(report stats.Report, width int) string {
	if len(report.Drills) == 0 {
		return "No drills finished yet."
	}
	cards := renderSummaryCards(report.Drills, width)
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, report.LastAttempt, curveWindow, stats.PlotWidthFor(width), plotHeight, true); err != nil {
		return cards + "\n\n" + fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(drills []model.DrillAggregate, width int) string {
	var totalAcc, totalLat float64
	best := 0
	for _, d := range drills {
		acc, lat := stats.DrillMetrics(d.Score, d.Answered, d.LatencyMs)
		totalAcc += acc
		totalLat += lat
		if d.Score > best {
			best = d.Score
		}
	}
	count := float64(len(drills))
	cards := []string{
		metricCard("Drills", fmt.Sprintf("%d", len(drills))),
		metricCard("Best score", fmt.Sprintf("%d", best)),
		metricCard("Avg accuracy", fmt.Sprintf("%.1f%%", totalAcc/count*100)),
		metricCard("Avg response", fmt.Sprintf("%.0f ms", totalLat/count)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildPitchTable(aggs []model.PitchAggregate) table.Model {
	headers, data := stats.PitchTableRows(aggs)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := len(h)
		for _, row := range data {
			if w := lipgloss.Width(row[i]); w > width {
				width = w
			}
		}
		columns[i] = table.Column{Title: h, Width: width + 1}
	}
	rows := make([]table.Row, len(data))
	for i, row := range data {
		rows[i] = table.Row(row)
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(pitchTableStyles())
	return t
}

func pitchTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
