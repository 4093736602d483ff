// Package libraryui provides the Bubble Tea phrase library interface.
package libraryui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/storage"
)

const (
	tabPersonal = iota
	tabSuggested
)

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
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type suggestedPhrase struct {
	text     string
	category string
}

// suggestedPhrases are starter phrases a user can promote into their own
// library.
var suggestedPhrases = []suggestedPhrase{
	{"I need help", "assistance"},
	{"Thank you very much", "social"},
	{"I am tired", "feelings"},
	{"I want to go home", "activities"},
	{"Please call my family", "assistance"},
	{"I feel better now", "feelings"},
	{"Can you repeat that", "communication"},
	{"I don't understand", "communication"},
	{"I love you", "social"},
	{"Good morning", "social"},
	{"I am hungry", "needs"},
	{"I am in pain", "health"},
}

type speechDoneMsg struct {
	err error
}

// Model implements the Bubble Tea phrase library UI.
type Model struct {
	records *storage.Service
	engine  speech.Engine

	tabs      []string
	activeTab int

	table   table.Model
	phrases []model.Phrase

	suggestIndex int

	addMode bool
	input   textinput.Model

	speaking     bool
	pendingTouch string
	status       string
	errMsg       string

	width  int
	height int
}

// NewModel constructs a phrase library model.
func NewModel(records *storage.Service, engine speech.Engine) *Model {
	m := &Model{
		records: records,
		engine:  engine,
		tabs:    []string{"My Phrases", "Suggested"},
	}
	m.input = textinput.New()
	m.input.Prompt = "Phrase: "
	m.input.CharLimit = 0
	m.input.Cursor.SetMode(cursor.CursorBlink)
	m.table = table.New(
		table.WithColumns(phraseColumns()),
		table.WithHeight(10),
	)
	m.table.SetStyles(phraseTableStyles())
	m.table.Focus()
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
		m.updateLayout()
		return m, nil
	case speechDoneMsg:
		m.speaking = false
		if msg.err != nil {
			m.errMsg = "Speech: " + msg.err.Error()
			m.pendingTouch = ""
			return m, nil
		}
		if m.pendingTouch != "" {
			if err := m.records.TouchPhrase(context.Background(), m.pendingTouch); err != nil {
				m.errMsg = "Usage not recorded: " + err.Error()
			}
			m.pendingTouch = ""
			m.refresh()
		}
		return m, nil
	case tea.KeyMsg:
		if m.addMode {
			return m.updateAdd(msg)
		}
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		m.status = ""
		m.errMsg = ""
		switch msg.String() {
		case "left", "h", "right", "l":
			m.moveTab()
			return m, nil
		}
		if m.activeTab == tabSuggested {
			return m.updateSuggested(msg)
		}
		return m.updatePersonal(msg)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.addMode {
		return m.renderAddForm()
	}
	sections := []string{m.renderTabs()}
	if m.activeTab == tabSuggested {
		sections = append(sections, m.renderSuggested())
	} else {
		sections = append(sections, m.renderPersonal())
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) updatePersonal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.speakSelected()
	case "a":
		m.addMode = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case "d":
		m.deleteSelected()
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateSuggested(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.suggestIndex > 0 {
			m.suggestIndex--
		}
	case "down", "j":
		if m.suggestIndex < len(suggestedPhrases)-1 {
			m.suggestIndex++
		}
	case "enter":
		m.promoteSuggested()
	}
	return m, nil
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.addMode = false
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.errMsg = "Phrase text must not be empty."
			m.addMode = false
			return m, nil
		}
		m.savePhrase(text, "custom")
		m.addMode = false
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) moveTab() {
	if m.activeTab == tabPersonal {
		m.activeTab = tabSuggested
		return
	}
	m.activeTab = tabPersonal
}

// refresh reloads phrases from storage and rebuilds the table, most-used
// first.
func (m *Model) refresh() {
	m.phrases = m.records.Phrases(context.Background())
	storage.SortPhrases(m.phrases)
	rows := make([]table.Row, 0, len(m.phrases))
	for _, p := range m.phrases {
		lastUsed := "never"
		if !p.LastUsed.IsZero() {
			lastUsed = p.LastUsed.Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			p.Text,
			p.Category,
			strconv.Itoa(p.Frequency),
			lastUsed,
		})
	}
	m.table.SetRows(rows)
	if cur := m.table.Cursor(); cur >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) selectedPhrase() (model.Phrase, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.phrases) {
		return model.Phrase{}, false
	}
	return m.phrases[idx], true
}

// speakSelected speaks the highlighted phrase. Its usage bookkeeping updates
// only after playback succeeds.
func (m *Model) speakSelected() tea.Cmd {
	phrase, ok := m.selectedPhrase()
	if !ok {
		return nil
	}
	if m.speaking {
		m.status = "Already speaking."
		return nil
	}
	m.speaking = true
	m.pendingTouch = phrase.ID
	engine := m.engine
	return func() tea.Msg {
		return speechDoneMsg{err: engine.Speak(context.Background(), phrase.Text, speech.DefaultOptions())}
	}
}

func (m *Model) deleteSelected() {
	phrase, ok := m.selectedPhrase()
	if !ok {
		return
	}
	if err := m.records.DeletePhrase(context.Background(), phrase.ID); err != nil {
		m.errMsg = "Delete failed: " + err.Error()
		return
	}
	m.status = "Deleted."
	m.refresh()
}

func (m *Model) promoteSuggested() {
	if m.suggestIndex >= len(suggestedPhrases) {
		return
	}
	s := suggestedPhrases[m.suggestIndex]
	for _, p := range m.phrases {
		if p.Text == s.text {
			m.status = "Already in your phrases."
			return
		}
	}
	m.savePhrase(s.text, s.category)
}

func (m *Model) savePhrase(text, category string) {
	// New phrases start unused: frequency stays zero until spoken.
	phrase := model.Phrase{
		ID:       uuid.NewString(),
		Text:     text,
		Category: category,
	}
	if err := m.records.SavePhrase(context.Background(), phrase); err != nil {
		m.errMsg = "Save failed: " + err.Error()
		return
	}
	m.status = "Added to your phrases."
	m.refresh()
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	tableHeight := m.height - 5
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(tableHeight)
	promptWidth := lipgloss.Width(m.input.Prompt)
	inputWidth := m.width - promptWidth - 2
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderPersonal() string {
	if len(m.phrases) == 0 {
		return headerStyle.Render("No phrases yet. Press a to add one, or pick from Suggested.")
	}
	return m.table.View()
}

func (m *Model) renderSuggested() string {
	lines := make([]string, 0, len(suggestedPhrases))
	for i, s := range suggestedPhrases {
		line := fmt.Sprintf("%s  %s", s.text, headerStyle.Render("("+s.category+")"))
		if i == m.suggestIndex {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAddForm() string {
	lines := []string{
		"Add phrase (enter to save, esc to cancel)",
		m.input.View(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	help := "Speak: enter  Add: a  Delete: d  Tab: left/right  Quit: q"
	if m.activeTab == tabSuggested {
		help = "Add to my phrases: enter  Move: up/down  Tab: left/right  Quit: q"
	}
	footer := headerStyle.Render(help)
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg) + "\n" + footer
	}
	if m.status != "" {
		return headerStyle.Render(m.status) + "\n" + footer
	}
	return footer
}

func phraseColumns() []table.Column {
	return []table.Column{
		{Title: "Phrase", Width: 32},
		{Title: "Category", Width: 13},
		{Title: "Used", Width: 5},
		{Title: "Last used", Width: 16},
	}
}

func phraseTableStyles() table.Styles {
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
