// Package model defines shared data structures.
package model

import "time"

// Complexity is the three-tier vocabulary filter.
type Complexity string

// Complexity levels, from smallest vocabulary to largest.
const (
	ComplexityBasic        Complexity = "basic"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// Symbol is an atomic communicable concept (word/icon pair) shown on the board.
type Symbol struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Category   string     `json:"category"`
	ImageURL   string     `json:"imageUrl"`
	Complexity Complexity `json:"complexity"`
}

// Category is a named, iconized grouping of symbols.
type Category struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Icon    string   `json:"icon"`
	Color   string   `json:"color"`
	Symbols []Symbol `json:"symbols"`
}

// VoiceSettings holds speech synthesis parameters.
type VoiceSettings struct {
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
	Voice  string  `json:"voice,omitempty"`
}

// Preferences is the persisted per-device user configuration.
type Preferences struct {
	VoiceSettings   VoiceSettings `json:"voiceSettings"`
	ComplexityLevel Complexity    `json:"complexityLevel"`
	FontSize        string        `json:"fontSize"`
	HighContrast    bool          `json:"highContrast"`
	Categories      []string      `json:"categories"`
}

// Phrase is a user-saved utterance with usage bookkeeping.
type Phrase struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Frequency int       `json:"frequency"`
	LastUsed  time.Time `json:"lastUsed"`
}

// Progress accumulates long-run therapy statistics.
type Progress struct {
	TotalSessions    int       `json:"totalSessions"`
	AverageScore     float64   `json:"averageScore"`
	MostUsedSymbols  []Symbol  `json:"mostUsedSymbols"`
	ImprovementTrend []float64 `json:"improvementTrend"`
	WeeklyUsage      []int     `json:"weeklyUsage"`
}

// ExerciseType selects a therapy exercise kind.
type ExerciseType string

// Supported exercise kinds.
const (
	ExerciseSymbolRecognition ExerciseType = "symbol_recognition"
	ExerciseSentenceBuilding  ExerciseType = "sentence_building"
	ExerciseCategoryMatching  ExerciseType = "category_matching"
)

// Exercise is a single multiple-choice therapy item. It is ephemeral and
// never persisted.
type Exercise struct {
	ID            string
	Type          ExerciseType
	Question      string
	Options       []Symbol
	CorrectAnswer Symbol
	Completed     bool
	Correct       bool
	TimeSpent     time.Duration
}

// SlotType classifies a position in a structured sentence template.
type SlotType string

// Slot types in template order semantics.
const (
	SlotSubject  SlotType = "subject"
	SlotVerb     SlotType = "verb"
	SlotObject   SlotType = "object"
	SlotModifier SlotType = "modifier"
)

// Slot is a typed position in a sentence template awaiting a symbol.
// Symbol is nil while the slot is empty.
type Slot struct {
	ID       string
	Position int
	Type     SlotType
	Symbol   *Symbol
}
