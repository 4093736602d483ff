// Package settingsui provides the Bubble Tea settings editor.
package settingsui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/symbol"
)

// Fixed editor rows, in display order. Category toggles follow after
// fixedRows, one row per catalog category.
const (
	rowVoice = iota
	rowRate
	rowPitch
	rowVolume
	rowLevel
	rowFontSize
	rowContrast
	fixedRows
)

// testUtterance is spoken by the test-voice key so the user can hear the
// current settings.
const testUtterance = "This is how my voice sounds."

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

var levels = []model.Complexity{
	model.ComplexityBasic,
	model.ComplexityIntermediate,
	model.ComplexityAdvanced,
}

var fontSizes = []string{"small", "medium", "large"}

type voicesMsg struct {
	voices []speech.Voice
	err    error
}

type speechDoneMsg struct {
	err error
}

// Model implements the Bubble Tea settings UI. Every change is saved to
// storage immediately.
type Model struct {
	catalog *symbol.Catalog
	records *storage.Service
	engine  speech.Engine

	prefs model.Preferences

	voices    []speech.Voice
	voiceNote string

	row      int
	speaking bool
	status   string
	errMsg   string

	width  int
	height int
}

// NewModel constructs a settings model over the stored preferences.
func NewModel(catalog *symbol.Catalog, records *storage.Service, engine speech.Engine) *Model {
	return &Model{
		catalog: catalog,
		records: records,
		engine:  engine,
		prefs:   records.Preferences(context.Background()),
	}
}

// Init implements tea.Model. It queries the engine for its voice list off
// the update loop.
func (m *Model) Init() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		voices, err := engine.Voices(context.Background())
		return voicesMsg{voices: voices, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case voicesMsg:
		m.voices = msg.voices
		if msg.err != nil {
			m.voiceNote = "Voices unavailable: " + msg.err.Error()
		}
		return m, nil
	case speechDoneMsg:
		m.speaking = false
		if msg.err != nil {
			m.errMsg = "Speech: " + msg.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		m.status = ""
		m.errMsg = ""
		switch msg.String() {
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
		case "down", "j":
			if m.row < m.rowCount()-1 {
				m.row++
			}
		case "left", "h":
			m.adjust(-1)
		case "right", "l":
			m.adjust(1)
		case "enter", " ":
			if m.row == rowContrast || m.row >= fixedRows {
				m.adjust(1)
			}
		case "t":
			return m, m.testVoice()
		case "d":
			m.resetDefaults()
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lines := []string{titleStyle.Render("Settings"), ""}
	for i := 0; i < fixedRows; i++ {
		lines = append(lines, m.renderRow(i, fmt.Sprintf("%-14s %s", fixedLabel(i), m.fixedValue(i))))
	}
	lines = append(lines, "", headerStyle.Render("Board categories"))
	for i, cat := range m.catalog.Categories() {
		box := "[ ]"
		if m.categoryEnabled(cat.ID) {
			box = "[x]"
		}
		lines = append(lines, m.renderRow(fixedRows+i, box+" "+cat.Name))
	}
	if m.voiceNote != "" {
		lines = append(lines, "", headerStyle.Render(m.voiceNote))
	}
	lines = append(lines, "", m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(idx int, body string) string {
	if idx == m.row {
		return cursorStyle.Render("> ") + cursorStyle.Render(body)
	}
	return "  " + body
}

func (m *Model) renderFooter() string {
	footer := headerStyle.Render("Adjust: left/right  Move: up/down  Toggle: enter  Test voice: t  Reset: d  Quit: q")
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg) + "\n" + footer
	}
	if m.status != "" {
		return headerStyle.Render(m.status) + "\n" + footer
	}
	return footer
}

func fixedLabel(row int) string {
	switch row {
	case rowVoice:
		return "Voice"
	case rowRate:
		return "Rate"
	case rowPitch:
		return "Pitch"
	case rowVolume:
		return "Volume"
	case rowLevel:
		return "Vocabulary"
	case rowFontSize:
		return "Font size"
	default:
		return "High contrast"
	}
}

func (m *Model) fixedValue(row int) string {
	vs := m.prefs.VoiceSettings
	switch row {
	case rowVoice:
		if vs.Voice == "" {
			return "System default"
		}
		return vs.Voice
	case rowRate:
		return fmt.Sprintf("%.1f", vs.Rate)
	case rowPitch:
		return fmt.Sprintf("%.1f", vs.Pitch)
	case rowVolume:
		return fmt.Sprintf("%.1f", vs.Volume)
	case rowLevel:
		return string(m.prefs.ComplexityLevel)
	case rowFontSize:
		return m.prefs.FontSize
	default:
		if m.prefs.HighContrast {
			return "on"
		}
		return "off"
	}
}

func (m *Model) rowCount() int {
	return fixedRows + len(m.catalog.Categories())
}

// adjust applies one left/right step to the current row and saves.
func (m *Model) adjust(delta int) {
	switch {
	case m.row == rowVoice:
		m.cycleVoice(delta)
	case m.row == rowRate, m.row == rowPitch, m.row == rowVolume:
		m.stepVoiceParam(delta)
	case m.row == rowLevel:
		idx := 0
		for i, level := range levels {
			if level == m.prefs.ComplexityLevel {
				idx = i
			}
		}
		m.prefs.ComplexityLevel = levels[cycleIndex(idx, delta, len(levels))]
	case m.row == rowFontSize:
		idx := 0
		for i, size := range fontSizes {
			if size == m.prefs.FontSize {
				idx = i
			}
		}
		m.prefs.FontSize = fontSizes[cycleIndex(idx, delta, len(fontSizes))]
	case m.row == rowContrast:
		m.prefs.HighContrast = !m.prefs.HighContrast
	case m.row >= fixedRows:
		cats := m.catalog.Categories()
		idx := m.row - fixedRows
		if idx >= len(cats) {
			return
		}
		if !m.toggleCategory(cats[idx].ID) {
			return
		}
	default:
		return
	}
	m.save()
}

// stepVoiceParam moves the highlighted synthesis parameter by 0.1, bounded
// the same way the speech engine bounds per-utterance options.
func (m *Model) stepVoiceParam(delta int) {
	vs := &m.prefs.VoiceSettings
	step := 0.1 * float64(delta)
	switch m.row {
	case rowRate:
		vs.Rate = round1(vs.Rate + step)
	case rowPitch:
		vs.Pitch = round1(vs.Pitch + step)
	case rowVolume:
		vs.Volume = round1(vs.Volume + step)
	}
	clamped := speech.Options{Rate: vs.Rate, Pitch: vs.Pitch, Volume: vs.Volume}.Clamp()
	vs.Rate, vs.Pitch, vs.Volume = clamped.Rate, clamped.Pitch, clamped.Volume
}

// cycleVoice moves through the engine's voice list. Index zero is the
// system default, stored as an empty name.
func (m *Model) cycleVoice(delta int) {
	entries := len(m.voices) + 1
	idx := 0
	for i, v := range m.voices {
		if v.Name == m.prefs.VoiceSettings.Voice {
			idx = i + 1
		}
	}
	idx = cycleIndex(idx, delta, entries)
	if idx == 0 {
		m.prefs.VoiceSettings.Voice = ""
		return
	}
	m.prefs.VoiceSettings.Voice = m.voices[idx-1].Name
}

func (m *Model) categoryEnabled(id string) bool {
	for _, c := range m.prefs.Categories {
		if c == id {
			return true
		}
	}
	return false
}

// toggleCategory flips a board category and rebuilds the enabled list in
// catalog order. The last enabled category cannot be turned off.
func (m *Model) toggleCategory(id string) bool {
	enabled := make(map[string]bool, len(m.prefs.Categories))
	for _, c := range m.prefs.Categories {
		enabled[c] = true
	}
	if enabled[id] && len(m.prefs.Categories) == 1 {
		m.status = "At least one category must stay enabled."
		return false
	}
	enabled[id] = !enabled[id]
	out := make([]string, 0, len(enabled))
	for _, cat := range m.catalog.Categories() {
		if enabled[cat.ID] {
			out = append(out, cat.ID)
		}
	}
	m.prefs.Categories = out
	return true
}

// testVoice speaks a sample utterance with the current settings.
func (m *Model) testVoice() tea.Cmd {
	if m.speaking {
		m.status = "Already speaking."
		return nil
	}
	m.speaking = true
	m.status = "Playing a test utterance."
	engine := m.engine
	vs := m.prefs.VoiceSettings
	opts := speech.Options{Rate: vs.Rate, Pitch: vs.Pitch, Volume: vs.Volume, Voice: vs.Voice}.Clamp()
	return func() tea.Msg {
		return speechDoneMsg{err: engine.Speak(context.Background(), testUtterance, opts)}
	}
}

func (m *Model) resetDefaults() {
	m.prefs = storage.DefaultPreferences()
	m.save()
	m.status = "Settings reset to defaults."
}

func (m *Model) save() {
	if err := m.records.SavePreferences(context.Background(), m.prefs); err != nil {
		m.errMsg = "Save failed: " + err.Error()
	}
}

func cycleIndex(cur, delta, n int) int {
	return ((cur+delta)%n + n) % n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
