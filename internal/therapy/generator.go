// Package therapy generates quiz exercises and runs scored practice
// sessions.
package therapy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/symbol"
)

const distractorCount = 3

// Generator produces randomized multiple-choice exercises from a catalog.
type Generator struct {
	catalog *symbol.Catalog
	rnd     *rand.Rand
}

// NewGenerator returns a Generator seeded with the current time.
func NewGenerator(catalog *symbol.Catalog) *Generator {
	return NewGeneratorWithRand(catalog, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithRand returns a Generator using the given random source,
// for deterministic tests.
func NewGeneratorWithRand(catalog *symbol.Catalog, rnd *rand.Rand) *Generator {
	return &Generator{catalog: catalog, rnd: rnd}
}

// Generate builds one exercise of the requested kind. Kinds whose candidate
// pools are empty fall back to symbol recognition, which is always
// satisfiable as long as the catalog has symbols.
func (g *Generator) Generate(kind model.ExerciseType) model.Exercise {
	switch kind {
	case model.ExerciseCategoryMatching:
		return g.categoryMatching()
	case model.ExerciseSentenceBuilding:
		return g.sentenceBuilding()
	default:
		return g.symbolRecognition()
	}
}

// symbolRecognition picks a uniform random target and three uniform random
// distractors without replacement, then shuffles the options.
func (g *Generator) symbolRecognition() model.Exercise {
	all := g.catalog.AllSymbols()
	if len(all) == 0 {
		return model.Exercise{ID: uuid.NewString(), Type: model.ExerciseSymbolRecognition}
	}
	target := all[g.rnd.Intn(len(all))]
	pool := excludeByID(all, target.ID)
	options := append([]model.Symbol{target}, g.sample(pool, distractorCount)...)
	g.shuffle(options)

	return model.Exercise{
		ID:            uuid.NewString(),
		Type:          model.ExerciseSymbolRecognition,
		Question:      fmt.Sprintf("Which symbol represents %q?", target.Text),
		Options:       options,
		CorrectAnswer: target,
	}
}

// categoryMatching picks a uniform random category and a uniform random
// symbol within it. Distractors are the first out-of-category symbols in
// catalog order, not randomized. An empty category falls back to symbol
// recognition so an exercise never lacks a valid correct option.
func (g *Generator) categoryMatching() model.Exercise {
	cats := g.catalog.Categories()
	if len(cats) == 0 {
		return g.symbolRecognition()
	}
	cat := cats[g.rnd.Intn(len(cats))]
	if len(cat.Symbols) == 0 {
		return g.symbolRecognition()
	}
	correct := cat.Symbols[g.rnd.Intn(len(cat.Symbols))]

	var distractors []model.Symbol
	for _, s := range g.catalog.AllSymbols() {
		if s.Category == cat.ID {
			continue
		}
		distractors = append(distractors, s)
		if len(distractors) == distractorCount {
			break
		}
	}
	options := append([]model.Symbol{correct}, distractors...)
	g.shuffle(options)

	return model.Exercise{
		ID:            uuid.NewString(),
		Type:          model.ExerciseCategoryMatching,
		Question:      fmt.Sprintf("Which symbol belongs to the %q category?", cat.Name),
		Options:       options,
		CorrectAnswer: correct,
	}
}

// sentenceBuilding asks for the action that completes "<subject> ___" using
// basic-complexity symbols only. Subjects are basic symbols from the people
// category or the literal word "I"; actions come from the actions category.
// Empty pools fall back to symbol recognition.
func (g *Generator) sentenceBuilding() model.Exercise {
	basics := g.catalog.SymbolsByComplexity(model.ComplexityBasic)
	var subjects, actions []model.Symbol
	for _, s := range basics {
		if s.Category == "people" || s.Text == "I" {
			subjects = append(subjects, s)
		}
		if s.Category == "actions" {
			actions = append(actions, s)
		}
	}
	if len(subjects) == 0 || len(actions) == 0 {
		return g.symbolRecognition()
	}
	subject := subjects[g.rnd.Intn(len(subjects))]
	action := actions[g.rnd.Intn(len(actions))]

	distractors := excludeByID(basics, action.ID)
	if len(distractors) > distractorCount {
		distractors = distractors[:distractorCount]
	}
	options := append([]model.Symbol{action}, distractors...)
	g.shuffle(options)

	return model.Exercise{
		ID:            uuid.NewString(),
		Type:          model.ExerciseSentenceBuilding,
		Question:      fmt.Sprintf("Select the symbol that would complete: %q", subject.Text+" ___"),
		Options:       options,
		CorrectAnswer: action,
	}
}

// shuffle is a uniform Fisher-Yates shuffle.
func (g *Generator) shuffle(symbols []model.Symbol) {
	g.rnd.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})
}

// sample picks up to k elements uniformly without replacement.
func (g *Generator) sample(pool []model.Symbol, k int) []model.Symbol {
	cp := make([]model.Symbol, len(pool))
	copy(cp, pool)
	if k > len(cp) {
		k = len(cp)
	}
	for i := 0; i < k; i++ {
		j := i + g.rnd.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:k]
}

func excludeByID(symbols []model.Symbol, id string) []model.Symbol {
	var out []model.Symbol
	for _, s := range symbols {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// Evaluate checks a chosen option against the exercise's correct answer and
// returns the completed exercise.
func Evaluate(ex model.Exercise, chosen model.Symbol, timeSpent time.Duration) (bool, model.Exercise) {
	correct := chosen.ID == ex.CorrectAnswer.ID
	ex.Completed = true
	ex.Correct = correct
	ex.TimeSpent = timeSpent
	return correct, ex
}
