package therapy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/symbol"
)

func newTestGenerator(catalog *symbol.Catalog) *Generator {
	return NewGeneratorWithRand(catalog, rand.New(rand.NewSource(1)))
}

func assertOptionInvariants(t *testing.T, ex model.Exercise) {
	t.Helper()
	if len(ex.Options) != 4 {
		t.Fatalf("%s: got %d options, want 4", ex.Type, len(ex.Options))
	}
	seen := map[string]int{}
	for _, opt := range ex.Options {
		seen[opt.ID]++
	}
	if len(seen) != 4 {
		t.Errorf("%s: options are not distinct: %v", ex.Type, seen)
	}
	if seen[ex.CorrectAnswer.ID] != 1 {
		t.Errorf("%s: correct answer appears %d times", ex.Type, seen[ex.CorrectAnswer.ID])
	}
}

func TestGenerateOptionInvariants(t *testing.T) {
	gen := newTestGenerator(symbol.Default())
	kinds := []model.ExerciseType{
		model.ExerciseSymbolRecognition,
		model.ExerciseCategoryMatching,
		model.ExerciseSentenceBuilding,
	}
	for _, kind := range kinds {
		for i := 0; i < 50; i++ {
			ex := gen.Generate(kind)
			assertOptionInvariants(t, ex)
			if ex.Question == "" {
				t.Errorf("%s: empty question", kind)
			}
			if ex.Completed || ex.Correct {
				t.Errorf("%s: fresh exercise already completed", kind)
			}
		}
	}
}

func TestCategoryMatchingDistractorsOutsideCategory(t *testing.T) {
	gen := newTestGenerator(symbol.Default())
	for i := 0; i < 50; i++ {
		ex := gen.Generate(model.ExerciseCategoryMatching)
		for _, opt := range ex.Options {
			if opt.ID == ex.CorrectAnswer.ID {
				continue
			}
			if opt.Category == ex.CorrectAnswer.Category {
				t.Errorf("distractor %q shares category %q with the answer", opt.ID, opt.Category)
			}
		}
	}
}

func TestCategoryMatchingEmptyCategoryFallsBack(t *testing.T) {
	catalog := symbol.New([]model.Category{
		{ID: "empty-cat", Name: "Empty"},
		{ID: "full", Name: "Full", Symbols: []model.Symbol{
			{ID: "a", Text: "A", Category: "full", Complexity: model.ComplexityBasic},
			{ID: "b", Text: "B", Category: "full", Complexity: model.ComplexityBasic},
			{ID: "c", Text: "C", Category: "full", Complexity: model.ComplexityBasic},
			{ID: "d", Text: "D", Category: "full", Complexity: model.ComplexityBasic},
		}},
	})
	gen := newTestGenerator(catalog)

	fallbacks := 0
	for i := 0; i < 100; i++ {
		ex := gen.Generate(model.ExerciseCategoryMatching)
		if ex.Type == model.ExerciseSymbolRecognition {
			fallbacks++
		}
		if ex.Type == model.ExerciseCategoryMatching && ex.CorrectAnswer.Category == "empty-cat" {
			t.Fatal("exercise based on an empty category")
		}
		if ex.CorrectAnswer.ID == "" {
			t.Fatal("exercise has no correct answer")
		}
	}
	if fallbacks == 0 {
		t.Error("expected at least one fallback to symbol recognition")
	}
}

func TestSentenceBuildingUsesBasicSubjectsAndActions(t *testing.T) {
	gen := newTestGenerator(symbol.Default())
	for i := 0; i < 50; i++ {
		ex := gen.Generate(model.ExerciseSentenceBuilding)
		if ex.Type != model.ExerciseSentenceBuilding {
			t.Fatalf("unexpected fallback with the default catalog: %s", ex.Type)
		}
		if ex.CorrectAnswer.Category != "actions" {
			t.Errorf("correct answer category = %q, want actions", ex.CorrectAnswer.Category)
		}
		if ex.CorrectAnswer.Complexity != model.ComplexityBasic {
			t.Errorf("correct answer complexity = %q", ex.CorrectAnswer.Complexity)
		}
		for _, opt := range ex.Options {
			if opt.Complexity != model.ComplexityBasic {
				t.Errorf("option %q is not basic", opt.ID)
			}
		}
	}
}

func TestSentenceBuildingFallsBackWithoutPools(t *testing.T) {
	catalog := symbol.New([]model.Category{
		{ID: "places", Name: "Places", Symbols: []model.Symbol{
			{ID: "home", Text: "Home", Category: "places", Complexity: model.ComplexityBasic},
			{ID: "park", Text: "Park", Category: "places", Complexity: model.ComplexityBasic},
			{ID: "store", Text: "Store", Category: "places", Complexity: model.ComplexityBasic},
			{ID: "hospital", Text: "Hospital", Category: "places", Complexity: model.ComplexityBasic},
		}},
	})
	gen := newTestGenerator(catalog)
	ex := gen.Generate(model.ExerciseSentenceBuilding)
	if ex.Type != model.ExerciseSymbolRecognition {
		t.Errorf("expected fallback to symbol recognition, got %s", ex.Type)
	}
	assertOptionInvariants(t, ex)
}

func TestSmallCatalogYieldsFewerOptions(t *testing.T) {
	catalog := symbol.New([]model.Category{
		{ID: "tiny", Name: "Tiny", Symbols: []model.Symbol{
			{ID: "x", Text: "X", Category: "tiny", Complexity: model.ComplexityBasic},
			{ID: "y", Text: "Y", Category: "tiny", Complexity: model.ComplexityBasic},
		}},
	})
	gen := newTestGenerator(catalog)
	ex := gen.Generate(model.ExerciseSymbolRecognition)
	if len(ex.Options) != 2 {
		t.Errorf("got %d options, want 2", len(ex.Options))
	}
	found := false
	for _, opt := range ex.Options {
		if opt.ID == ex.CorrectAnswer.ID {
			found = true
		}
	}
	if !found {
		t.Error("options must contain the correct answer")
	}
}

func TestEvaluate(t *testing.T) {
	ex := model.Exercise{
		CorrectAnswer: model.Symbol{ID: "water", Text: "Water"},
	}
	correct, updated := Evaluate(ex, model.Symbol{ID: "water"}, 3*time.Second)
	if !correct || !updated.Correct || !updated.Completed {
		t.Errorf("correct answer: correct=%v updated=%+v", correct, updated)
	}
	if updated.TimeSpent != 3*time.Second {
		t.Errorf("timeSpent = %v", updated.TimeSpent)
	}

	correct, updated = Evaluate(ex, model.Symbol{ID: "food"}, time.Second)
	if correct || updated.Correct {
		t.Error("wrong answer reported as correct")
	}
	if !updated.Completed {
		t.Error("answered exercise should be completed")
	}
}
