// Package tui provides the Bubble Tea communication board interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/sentence"
	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/symbol"
	"github.com/voxpad/voxpad/internal/textwrap"
)

type boardMode int

const (
	modeFree boardMode = iota
	modeBuilder
)

const cellWidth = 14

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
	cellStyle   = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cursorCellStyle = cellStyle.Copy().
			BorderForeground(lipgloss.Color("#C89A3A"))
	selectedTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	sentenceStyle     = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	emptyHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type speechDoneMsg struct {
	err error
}

// Model implements the Bubble Tea communication board UI.
type Model struct {
	catalog *symbol.Catalog
	records *storage.Service
	engine  speech.Engine

	prefs     model.Preferences
	selection *sentence.Selection
	builder   *sentence.SlotBuilder
	mode      boardMode

	categories []model.Category
	activeCat  int
	cursor     int

	width  int
	height int

	speaking bool
	pending  string
	status   string
}

// NewModel constructs a board model over the user's enabled categories.
func NewModel(catalog *symbol.Catalog, records *storage.Service, engine speech.Engine, prefs model.Preferences) *Model {
	m := &Model{
		catalog:   catalog,
		records:   records,
		engine:    engine,
		prefs:     prefs,
		selection: sentence.NewSelection(),
		builder:   sentence.NewSlotBuilder(prefs.ComplexityLevel),
	}
	m.rebuildCategories()
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
		return m, nil
	case speechDoneMsg:
		m.speaking = false
		if msg.err != nil {
			m.status = "Speech: " + msg.err.Error()
		}
		if m.pending != "" {
			text := m.pending
			m.pending = ""
			return m, m.speakCmd(text)
		}
		return m, nil
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.moveCategory(1)
			return m, nil
		case "shift+tab":
			m.moveCategory(-1)
			return m, nil
		case "left", "h":
			m.moveCursor(-1)
			return m, nil
		case "right", "l":
			m.moveCursor(1)
			return m, nil
		case "up", "k":
			m.moveCursor(-m.columns())
			return m, nil
		case "down", "j":
			m.moveCursor(m.columns())
			return m, nil
		case "enter", " ":
			return m, m.choose()
		case "backspace":
			m.removeLast()
			return m, nil
		case "s":
			return m, m.speakSentence()
		case "c":
			m.clearSentence()
			return m, nil
		case "e":
			return m, m.requestSpeak(speech.EmergencyText)
		case "p":
			m.savePhrase()
			return m, nil
		case "m":
			m.toggleMode()
			return m, nil
		case "1":
			m.setLevel(model.ComplexityBasic)
			return m, nil
		case "2":
			m.setLevel(model.ComplexityIntermediate)
			return m, nil
		case "3":
			m.setLevel(model.ComplexityAdvanced)
			return m, nil
		default:
			return m, nil
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
	sections := []string{
		m.renderTabs(),
		m.renderModeLine(),
		m.renderSentence(),
		m.renderGrid(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

// rebuildCategories keeps the catalog's category order but only the ones the
// user has enabled. An empty preference list shows everything.
func (m *Model) rebuildCategories() {
	all := m.catalog.Categories()
	if len(m.prefs.Categories) == 0 {
		m.categories = all
		return
	}
	enabled := make(map[string]struct{}, len(m.prefs.Categories))
	for _, id := range m.prefs.Categories {
		enabled[id] = struct{}{}
	}
	m.categories = m.categories[:0]
	for _, cat := range all {
		if _, ok := enabled[cat.ID]; ok {
			m.categories = append(m.categories, cat)
		}
	}
	if m.activeCat >= len(m.categories) {
		m.activeCat = 0
	}
}

func (m *Model) visibleSymbols() []model.Symbol {
	if len(m.categories) == 0 {
		return nil
	}
	allowed := make(map[string]struct{})
	for _, s := range m.catalog.SymbolsForLevel(m.prefs.ComplexityLevel) {
		allowed[s.ID] = struct{}{}
	}
	var out []model.Symbol
	for _, s := range m.categories[m.activeCat].Symbols {
		if _, ok := allowed[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) moveCategory(delta int) {
	count := len(m.categories)
	if count == 0 {
		return
	}
	next := m.activeCat + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeCat = next
	m.cursor = 0
}

func (m *Model) moveCursor(delta int) {
	count := len(m.visibleSymbols())
	if count == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= count {
		return
	}
	m.cursor = next
}

func (m *Model) clampCursor() {
	count := len(m.visibleSymbols())
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
}

func (m *Model) columns() int {
	if m.width <= 0 {
		return 3
	}
	cols := m.width / (cellWidth + 2)
	if cols < 1 {
		cols = 1
	}
	if cols > 3 {
		cols = 3
	}
	return cols
}

// choose acts on the symbol under the cursor: free mode toggles it in the
// sentence, builder mode places it into the first empty slot. Choosing a
// symbol speaks it and bumps its usage counter.
func (m *Model) choose() tea.Cmd {
	symbols := m.visibleSymbols()
	if m.cursor >= len(symbols) {
		return nil
	}
	sym := symbols[m.cursor]
	switch m.mode {
	case modeBuilder:
		if !m.builder.Place(sym) {
			m.status = "All slots are filled."
			return nil
		}
	default:
		m.selection.Toggle(sym)
		if !m.selection.Contains(sym.ID) {
			// Removed from the sentence, nothing to speak.
			return nil
		}
	}
	if err := m.records.IncrementUsage(context.Background(), sym.ID); err != nil {
		// Usage tracking is best-effort.
		_ = err
	}
	return m.requestSpeak(sym.Text)
}

func (m *Model) removeLast() {
	switch m.mode {
	case modeBuilder:
		slots := m.builder.Slots()
		for i := len(slots) - 1; i >= 0; i-- {
			if slots[i].Symbol != nil {
				m.builder.RemoveAt(i)
				return
			}
		}
	default:
		m.selection.RemoveAt(m.selection.Len() - 1)
	}
}

func (m *Model) clearSentence() {
	switch m.mode {
	case modeBuilder:
		m.builder.Clear()
	default:
		m.selection.Clear()
	}
}

func (m *Model) sentenceText() string {
	if m.mode == modeBuilder {
		return m.builder.Text()
	}
	return m.selection.Text()
}

func (m *Model) speakSentence() tea.Cmd {
	text := m.sentenceText()
	if text == "" {
		m.status = "Nothing to speak."
		return nil
	}
	return m.requestSpeak(text)
}

func (m *Model) savePhrase() {
	text := m.sentenceText()
	if text == "" {
		m.status = "Nothing to save."
		return
	}
	// New phrases start unused: frequency stays zero until spoken.
	phrase := model.Phrase{
		ID:       uuid.NewString(),
		Text:     text,
		Category: "custom",
	}
	if err := m.records.SavePhrase(context.Background(), phrase); err != nil {
		m.status = "Save failed: " + err.Error()
		return
	}
	m.status = "Saved to your phrases."
}

func (m *Model) toggleMode() {
	if m.mode == modeFree {
		m.mode = modeBuilder
		return
	}
	m.mode = modeFree
}

func (m *Model) setLevel(level model.Complexity) {
	if m.prefs.ComplexityLevel == level {
		return
	}
	m.prefs.ComplexityLevel = level
	m.builder.SetLevel(level)
	m.clampCursor()
	if err := m.records.SavePreferences(context.Background(), m.prefs); err != nil {
		m.status = "Preferences not saved: " + err.Error()
	}
}

// requestSpeak starts an utterance, or queues it while one is in flight. The
// engine does not queue, so at most one Speak runs at a time and the latest
// request wins.
func (m *Model) requestSpeak(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	if m.speaking {
		m.pending = text
		return nil
	}
	return m.speakCmd(text)
}

func (m *Model) speakCmd(text string) tea.Cmd {
	m.speaking = true
	opts := m.speechOptions()
	engine := m.engine
	return func() tea.Msg {
		return speechDoneMsg{err: engine.Speak(context.Background(), text, opts)}
	}
}

func (m *Model) speechOptions() speech.Options {
	vs := m.prefs.VoiceSettings
	return speech.Options{
		Rate:   vs.Rate,
		Pitch:  vs.Pitch,
		Volume: vs.Volume,
		Voice:  vs.Voice,
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.categories))
	for i, cat := range m.categories {
		label := cat.Icon + " " + cat.Name
		if i == m.activeCat {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderModeLine() string {
	mode := "free"
	if m.mode == modeBuilder {
		mode = "build"
	}
	line := fmt.Sprintf("Mode: %s  Level: %s", mode, m.prefs.ComplexityLevel)
	if m.speaking {
		line += "  [speaking]"
	}
	return headerStyle.Render(line)
}

func (m *Model) renderSentence() string {
	innerWidth := m.width - 4
	if innerWidth < cellWidth {
		innerWidth = cellWidth
	}
	var content string
	if m.mode == modeBuilder {
		parts := make([]string, 0, len(m.builder.Slots()))
		for _, slot := range m.builder.Slots() {
			word := "___"
			if slot.Symbol != nil {
				word = slot.Symbol.Text
			}
			parts = append(parts, sentence.SlotLabel(slot.Type)+": "+word)
		}
		content = textwrap.Wrap(strings.Join(parts, " | "), innerWidth)
	} else {
		text := m.selection.Text()
		if text == "" {
			content = emptyHintStyle.Render("Select symbols to build a sentence.")
		} else {
			content = textwrap.Wrap(text, innerWidth)
		}
	}
	return sentenceStyle.Render(content)
}

func (m *Model) renderGrid() string {
	symbols := m.visibleSymbols()
	if len(symbols) == 0 {
		return emptyHintStyle.Render("No symbols at this level.")
	}
	cols := m.columns()
	var rows []string
	var cells []string
	for i, sym := range symbols {
		label := sym.Text
		if m.isChosen(sym.ID) {
			label = selectedTextStyle.Render(label)
		}
		style := cellStyle
		if i == m.cursor {
			style = cursorCellStyle
		}
		cells = append(cells, style.Render(label))
		if len(cells) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) isChosen(id string) bool {
	if m.mode == modeBuilder {
		for _, slot := range m.builder.Slots() {
			if slot.Symbol != nil && slot.Symbol.ID == id {
				return true
			}
		}
		return false
	}
	return m.selection.Contains(id)
}

func (m *Model) renderFooter() string {
	help := "Move: arrows  Choose: enter  Speak: s  Save: p  Undo: backspace  Clear: c  Emergency: e  Mode: m  Level: 1/2/3  Category: tab  Quit: q"
	footer := headerStyle.Render(textwrap.Wrap(help, m.width))
	if m.status != "" {
		footer = headerStyle.Render(m.status) + "\n" + footer
	}
	return footer
}
