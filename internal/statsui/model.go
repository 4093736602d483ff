// Package statsui provides the Bubble Tea progress interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxpad/voxpad/internal/stats"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/symbol"
)

// topUsedCount is how many most-used symbols the overview lists.
const topUsedCount = 5

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea progress UI.
type Model struct {
	records *storage.Service
	catalog *symbol.Catalog

	report   stats.Report
	viewport viewport.Model

	width  int
	height int
}

// NewModel constructs a progress UI model.
func NewModel(records *storage.Service, catalog *symbol.Catalog) *Model {
	m := &Model{
		records:  records,
		catalog:  catalog,
		viewport: viewport.New(0, 0),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = maxInt(1, m.height-2)
		m.viewport.SetContent(m.renderReport())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.refresh()
			m.viewport.SetContent(m.renderReport())
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	footer := headerStyle.Render("Scroll: up/down/pgup/pgdn  Refresh: r  Quit: q")
	return m.viewport.View() + "\n" + footer
}

func (m *Model) refresh() {
	m.report = stats.BuildReport(context.Background(), m.records, m.catalog, topUsedCount)
}

func (m *Model) renderReport() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	progress := m.report.Progress

	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", progress.TotalSessions)),
		metricCard("Avg Score", fmt.Sprintf("%.1f%%", progress.AverageScore)),
		metricCard("Symbols Spoken", fmt.Sprintf("%d", m.report.TotalSpoken)),
	}
	var summary string
	if width < 60 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	sections := []string{summary, ""}

	sections = append(sections, sectionStyle.Render("Weekly usage"))
	var plot bytes.Buffer
	if err := stats.WeeklyUsagePlot(&plot, progress.WeeklyUsage, minInt(width, 60)); err != nil {
		sections = append(sections, fmt.Sprintf("Failed to render plot: %v", err))
	} else {
		sections = append(sections, strings.TrimRight(plot.String(), "\n"))
	}
	sections = append(sections, "")

	sections = append(sections, sectionStyle.Render("Improvement trend"))
	if len(progress.ImprovementTrend) == 0 {
		sections = append(sections, headerStyle.Render("No sessions yet."))
	} else {
		latest := progress.ImprovementTrend[len(progress.ImprovementTrend)-1]
		spark := stats.Sparkline(progress.ImprovementTrend, minInt(width-10, 52))
		sections = append(sections, fmt.Sprintf("%s  %s", spark, headerStyle.Render(fmt.Sprintf("latest %.0f%%", latest))))
	}
	sections = append(sections, "")

	sections = append(sections, sectionStyle.Render("Most used symbols"))
	if len(m.report.MostUsed) == 0 {
		sections = append(sections, headerStyle.Render("Nothing spoken yet."))
	} else {
		for i, usage := range m.report.MostUsed {
			sections = append(sections, fmt.Sprintf("%d. %-14s %d", i+1, usage.Symbol.Text, usage.Count))
		}
	}

	return strings.Join(sections, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
