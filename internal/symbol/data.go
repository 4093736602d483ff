package symbol

import "github.com/voxpad/voxpad/internal/model"

func sym(id, text, category string, complexity model.Complexity) model.Symbol {
	return model.Symbol{
		ID:         id,
		Text:       text,
		Category:   category,
		ImageURL:   "assets/symbols/" + id + ".png",
		Complexity: complexity,
	}
}

var defaultCategories = []model.Category{
	{
		ID:    "basic-needs",
		Name:  "Basic Needs",
		Icon:  "🏠",
		Color: "#4A90D9",
		Symbols: []model.Symbol{
			sym("water", "Water", "basic-needs", model.ComplexityBasic),
			sym("food", "Food", "basic-needs", model.ComplexityBasic),
			sym("bathroom", "Bathroom", "basic-needs", model.ComplexityBasic),
			sym("sleep", "Sleep", "basic-needs", model.ComplexityBasic),
			sym("medicine", "Medicine", "basic-needs", model.ComplexityIntermediate),
			sym("help", "Help", "basic-needs", model.ComplexityBasic),
		},
	},
	{
		ID:    "emotions",
		Name:  "Emotions",
		Icon:  "😊",
		Color: "#4DAF6E",
		Symbols: []model.Symbol{
			sym("happy", "Happy", "emotions", model.ComplexityBasic),
			sym("sad", "Sad", "emotions", model.ComplexityBasic),
			sym("angry", "Angry", "emotions", model.ComplexityBasic),
			sym("scared", "Scared", "emotions", model.ComplexityBasic),
			sym("excited", "Excited", "emotions", model.ComplexityIntermediate),
			sym("confused", "Confused", "emotions", model.ComplexityIntermediate),
		},
	},
	{
		ID:    "actions",
		Name:  "Actions",
		Icon:  "🏃",
		Color: "#E08A3C",
		Symbols: []model.Symbol{
			sym("eat", "Eat", "actions", model.ComplexityBasic),
			sym("drink", "Drink", "actions", model.ComplexityBasic),
			sym("walk", "Walk", "actions", model.ComplexityBasic),
			sym("sit", "Sit", "actions", model.ComplexityBasic),
			sym("read", "Read", "actions", model.ComplexityIntermediate),
			sym("write", "Write", "actions", model.ComplexityIntermediate),
		},
	},
	{
		ID:    "people",
		Name:  "People",
		Icon:  "👥",
		Color: "#9B6BC3",
		Symbols: []model.Symbol{
			sym("family", "Family", "people", model.ComplexityBasic),
			sym("doctor", "Doctor", "people", model.ComplexityBasic),
			sym("friend", "Friend", "people", model.ComplexityBasic),
			sym("nurse", "Nurse", "people", model.ComplexityIntermediate),
			sym("therapist", "Therapist", "people", model.ComplexityIntermediate),
			sym("caregiver", "Caregiver", "people", model.ComplexityAdvanced),
		},
	},
	{
		ID:    "places",
		Name:  "Places",
		Icon:  "🏥",
		Color: "#3CA8A0",
		Symbols: []model.Symbol{
			sym("home", "Home", "places", model.ComplexityBasic),
			sym("hospital", "Hospital", "places", model.ComplexityBasic),
			sym("park", "Park", "places", model.ComplexityBasic),
			sym("store", "Store", "places", model.ComplexityIntermediate),
			sym("therapy-center", "Therapy Center", "places", model.ComplexityAdvanced),
			sym("restaurant", "Restaurant", "places", model.ComplexityIntermediate),
		},
	},
}
