package therapy

import (
	"context"
	"time"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/storage"
)

// SessionLength is the fixed number of exercises per practice session.
const SessionLength = 10

const correctFeedback = "Correct! Well done."

// trendCap bounds the stored improvement trend to roughly a year of weekly
// practice.
const trendCap = 52

// Session runs a fixed-length sequence of exercises, speaking feedback after
// each answer and folding the result into long-run progress at the end.
type Session struct {
	gen     *Generator
	records *storage.Service
	engine  speech.Engine
	kind    model.ExerciseType

	current   model.Exercise
	startedAt time.Time
	score     int
	answered  int
	done      bool
	now       func() time.Time
}

// NewSession prepares a session of the given exercise kind. Call Start to
// get the first exercise.
func NewSession(gen *Generator, records *storage.Service, engine speech.Engine, kind model.ExerciseType) *Session {
	return &Session{
		gen:     gen,
		records: records,
		engine:  engine,
		kind:    kind,
		now:     time.Now,
	}
}

// Start generates the first exercise.
func (s *Session) Start() model.Exercise {
	s.score = 0
	s.answered = 0
	s.done = false
	s.current = s.gen.Generate(s.kind)
	s.startedAt = s.now()
	return s.current
}

// Current returns the exercise in progress.
func (s *Session) Current() model.Exercise { return s.current }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Answered returns how many exercises have been answered.
func (s *Session) Answered() int { return s.answered }

// Done reports whether all exercises have been answered.
func (s *Session) Done() bool { return s.done }

// Answer evaluates the chosen option. Correct answers score a point and
// trigger positive spoken feedback; incorrect ones speak the correct
// answer's text. The correct symbol's usage counter increments either way.
// After the final exercise the session folds its result into progress.
//
// A speech failure is returned for the caller to surface but never blocks
// the bookkeeping.
func (s *Session) Answer(ctx context.Context, chosen model.Symbol) (model.Exercise, error) {
	if s.done || s.current.Completed {
		return s.current, nil
	}
	correct, updated := Evaluate(s.current, chosen, s.now().Sub(s.startedAt))
	s.current = updated

	var speechErr error
	if correct {
		s.score++
		speechErr = s.engine.Speak(ctx, correctFeedback, speech.DefaultOptions())
	} else {
		speechErr = s.engine.Speak(ctx, "The correct answer is "+updated.CorrectAnswer.Text, speech.DefaultOptions())
	}
	s.answered++

	if err := s.records.IncrementUsage(ctx, updated.CorrectAnswer.ID); err != nil {
		// Usage tracking is best-effort.
		_ = err
	}

	if s.answered >= SessionLength {
		s.done = true
		s.finish(ctx)
	}
	return updated, speechErr
}

// Next generates the following exercise. It returns false once the session
// is complete.
func (s *Session) Next() (model.Exercise, bool) {
	if s.done {
		return model.Exercise{}, false
	}
	s.current = s.gen.Generate(s.kind)
	s.startedAt = s.now()
	return s.current, true
}

func (s *Session) finish(ctx context.Context) {
	progress := s.records.Progress(ctx)
	progress = FoldProgress(progress, s.score, s.answered, s.now())
	if err := s.records.SaveProgress(ctx, progress); err != nil {
		// Progress persistence is best-effort.
		_ = err
	}
}

// FoldProgress merges one finished session into the running statistics:
// totalSessions increments and averageScore becomes the running mean of all
// session percentages. The session's percentage is appended to the trend and
// the weekday's usage slot increments.
func FoldProgress(progress model.Progress, score, total int, when time.Time) model.Progress {
	if total <= 0 {
		return progress
	}
	pct := float64(score) / float64(total) * 100
	progress.AverageScore = (progress.AverageScore*float64(progress.TotalSessions) + pct) /
		float64(progress.TotalSessions+1)
	progress.TotalSessions++

	progress.ImprovementTrend = append(progress.ImprovementTrend, pct)
	if len(progress.ImprovementTrend) > trendCap {
		progress.ImprovementTrend = progress.ImprovementTrend[len(progress.ImprovementTrend)-trendCap:]
	}
	if len(progress.WeeklyUsage) != 7 {
		progress.WeeklyUsage = make([]int, 7)
	}
	progress.WeeklyUsage[int(when.Weekday())]++
	return progress
}
