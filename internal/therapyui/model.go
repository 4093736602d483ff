// Package therapyui provides the Bubble Tea practice session interface.
package therapyui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/symbol"
	"github.com/voxpad/voxpad/internal/textwrap"
	"github.com/voxpad/voxpad/internal/therapy"
)

const (
	statePicker = iota
	stateExercise
	stateFeedback
	stateResults
)

// feedbackDelay is how long the answer feedback stays on screen before the
// next exercise appears.
const feedbackDelay = 2 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

type answeredMsg struct {
	exercise model.Exercise
	err      error
}

type advanceMsg struct{}

// Model implements the Bubble Tea practice UI.
type Model struct {
	records *storage.Service
	engine  speech.Engine
	gen     *therapy.Generator

	session *therapy.Session
	state   int

	// kind is the requested exercise kind; individual exercises may fall
	// back to another kind on degenerate input.
	kind      model.ExerciseType
	kinds     []model.ExerciseType
	kindIndex int

	exercise    model.Exercise
	optionIndex int
	answering   bool

	feedback     string
	feedbackGood bool
	speechNote   string

	progress model.Progress

	width  int
	height int
}

// NewModel constructs a practice UI model. A non-empty kind skips the picker
// and starts a session immediately.
func NewModel(catalog *symbol.Catalog, records *storage.Service, engine speech.Engine, kind model.ExerciseType) *Model {
	m := &Model{
		records: records,
		engine:  engine,
		gen:     therapy.NewGenerator(catalog),
		state:   statePicker,
		kinds: []model.ExerciseType{
			model.ExerciseSymbolRecognition,
			model.ExerciseSentenceBuilding,
			model.ExerciseCategoryMatching,
		},
	}
	m.progress = records.Progress(context.Background())
	if kind != "" {
		m.startSession(kind)
	}
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
	case answeredMsg:
		m.answering = false
		m.exercise = msg.exercise
		m.feedbackGood = msg.exercise.Correct
		if msg.exercise.Correct {
			m.feedback = "Correct! Well done."
		} else {
			m.feedback = fmt.Sprintf("Not quite. The correct answer is %q.", msg.exercise.CorrectAnswer.Text)
		}
		m.speechNote = ""
		if msg.err != nil {
			m.speechNote = "Speech: " + msg.err.Error()
		}
		m.state = stateFeedback
		return m, tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
			return advanceMsg{}
		})
	case advanceMsg:
		if m.state != stateFeedback {
			return m, nil
		}
		if m.session.Done() {
			m.progress = m.records.Progress(context.Background())
			m.state = stateResults
			return m, nil
		}
		m.exercise, _ = m.session.Next()
		m.optionIndex = 0
		m.state = stateExercise
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch m.state {
		case statePicker:
			return m.updatePicker(msg)
		case stateExercise:
			return m.updateExercise(msg)
		case stateResults:
			return m.updateResults(msg)
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
	switch m.state {
	case statePicker:
		return m.renderPicker()
	case stateExercise, stateFeedback:
		return m.renderExercise()
	default:
		return m.renderResults()
	}
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.kindIndex > 0 {
			m.kindIndex--
		}
	case "down", "j":
		if m.kindIndex < len(m.kinds)-1 {
			m.kindIndex++
		}
	case "enter":
		m.startSession(m.kinds[m.kindIndex])
	}
	return m, nil
}

func (m *Model) updateExercise(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.answering {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.optionIndex > 0 {
			m.optionIndex--
		}
		return m, nil
	case "down", "j":
		if m.optionIndex < len(m.exercise.Options)-1 {
			m.optionIndex++
		}
		return m, nil
	case "enter":
		return m, m.answerCmd(m.optionIndex)
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.exercise.Options) {
			m.optionIndex = idx
			return m, m.answerCmd(idx)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.startSession(m.kind)
	case "p":
		m.state = statePicker
	}
	return m, nil
}

func (m *Model) startSession(kind model.ExerciseType) {
	m.kind = kind
	m.session = therapy.NewSession(m.gen, m.records, m.engine, kind)
	m.exercise = m.session.Start()
	m.optionIndex = 0
	m.feedback = ""
	m.speechNote = ""
	m.state = stateExercise
}

// answerCmd evaluates the chosen option off the update loop because the
// session speaks its feedback, which blocks until playback finishes.
func (m *Model) answerCmd(idx int) tea.Cmd {
	if idx >= len(m.exercise.Options) {
		return nil
	}
	m.answering = true
	session := m.session
	chosen := m.exercise.Options[idx]
	return func() tea.Msg {
		ex, err := session.Answer(context.Background(), chosen)
		return answeredMsg{exercise: ex, err: err}
	}
}

func (m *Model) renderPicker() string {
	lines := []string{
		titleStyle.Render("Practice"),
		"",
		headerStyle.Render(fmt.Sprintf("Sessions: %d  Average score: %.1f%%",
			m.progress.TotalSessions, m.progress.AverageScore)),
		"",
	}
	for i, kind := range m.kinds {
		prefix := "  "
		label := kindLabel(kind)
		if i == m.kindIndex {
			prefix = cursorStyle.Render("> ")
			label = cursorStyle.Render(label)
		}
		lines = append(lines, prefix+label)
		lines = append(lines, "    "+headerStyle.Render(kindDescription(kind)))
	}
	lines = append(lines, "", headerStyle.Render("Choose: enter  Move: up/down  Quit: q"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderExercise() string {
	position := m.session.Answered() + 1
	if m.state == stateFeedback {
		position = m.session.Answered()
	}
	header := headerStyle.Render(fmt.Sprintf("Exercise %d of %d  Score: %d",
		position, therapy.SessionLength, m.session.Score()))

	question := textwrap.Wrap(m.exercise.Question, contentWidth(m.width))
	lines := []string{header, "", titleStyle.Render(question), ""}

	for i, opt := range m.exercise.Options {
		label := fmt.Sprintf("%d) %s", i+1, opt.Text)
		switch {
		case m.state == stateFeedback && opt.ID == m.exercise.CorrectAnswer.ID:
			label = goodStyle.Render(label)
		case m.state == stateExercise && i == m.optionIndex:
			label = cursorStyle.Render("> " + label)
		default:
			label = "  " + label
		}
		lines = append(lines, label)
	}

	if m.state == stateFeedback {
		style := badStyle
		if m.feedbackGood {
			style = goodStyle
		}
		lines = append(lines, "", style.Render(m.feedback))
		if m.speechNote != "" {
			lines = append(lines, headerStyle.Render(m.speechNote))
		}
	} else {
		lines = append(lines, "", headerStyle.Render("Answer: enter or 1-4  Move: up/down  Quit: q"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResults() string {
	score := m.session.Score()
	pct := float64(score) / float64(therapy.SessionLength) * 100
	style := badStyle
	if pct >= 70 {
		style = goodStyle
	} else if pct >= 50 {
		style = cursorStyle
	}
	card := cardStyle.Render(fmt.Sprintf("%s\n%s",
		headerStyle.Render("Session complete"),
		style.Render(fmt.Sprintf("%d / %d  (%.0f%%)", score, therapy.SessionLength, pct))))
	lines := []string{
		card,
		"",
		motivation(pct),
		"",
		headerStyle.Render(fmt.Sprintf("Sessions: %d  Average score: %.1f%%",
			m.progress.TotalSessions, m.progress.AverageScore)),
		"",
		headerStyle.Render("Again: r  Pick exercise: p  Quit: q"),
	}
	return strings.Join(lines, "\n")
}

func kindLabel(kind model.ExerciseType) string {
	switch kind {
	case model.ExerciseSentenceBuilding:
		return "Sentence Building"
	case model.ExerciseCategoryMatching:
		return "Category Matching"
	default:
		return "Symbol Recognition"
	}
}

func kindDescription(kind model.ExerciseType) string {
	switch kind {
	case model.ExerciseSentenceBuilding:
		return "Choose the action that completes a sentence"
	case model.ExerciseCategoryMatching:
		return "Find the symbol that belongs to a category"
	default:
		return "Match a word to its symbol"
	}
}

func motivation(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent work! You have mastered these symbols."
	case pct >= 70:
		return "Great job! Keep practicing."
	case pct >= 50:
		return "Good effort. You are improving."
	default:
		return "Keep practicing. Every session helps."
	}
}

func contentWidth(width int) int {
	w := width - 4
	if w < 20 {
		return 20
	}
	if w > 76 {
		return 76
	}
	return w
}
