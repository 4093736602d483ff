// Package symbol provides the immutable symbol catalog and query functions.
package symbol

import "github.com/voxpad/voxpad/internal/model"

// Catalog is read-only reference data: categories and their symbols.
// Components that need symbols take a *Catalog as a dependency instead of
// reaching for package-level state, so tests can substitute a small one.
type Catalog struct {
	categories []model.Category
	byID       map[string]model.Symbol
}

// New builds a catalog from the given categories. Symbol order is category
// declaration order, then symbol declaration order within each category.
func New(categories []model.Category) *Catalog {
	c := &Catalog{
		categories: categories,
		byID:       make(map[string]model.Symbol),
	}
	for _, cat := range categories {
		for _, sym := range cat.Symbols {
			c.byID[sym.ID] = sym
		}
	}
	return c
}

// Default returns the built-in vocabulary.
func Default() *Catalog {
	return New(defaultCategories)
}

// Categories returns all categories in declaration order.
func (c *Catalog) Categories() []model.Category {
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (model.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

// Symbol returns the symbol with the given id.
func (c *Catalog) Symbol(id string) (model.Symbol, bool) {
	sym, ok := c.byID[id]
	return sym, ok
}

// AllSymbols returns every symbol across all categories.
func (c *Catalog) AllSymbols() []model.Symbol {
	var out []model.Symbol
	for _, cat := range c.categories {
		out = append(out, cat.Symbols...)
	}
	return out
}

// SymbolsByCategory returns the symbols of one category, or an empty slice
// for an unknown id.
func (c *Catalog) SymbolsByCategory(id string) []model.Symbol {
	cat, ok := c.Category(id)
	if !ok {
		return nil
	}
	out := make([]model.Symbol, len(cat.Symbols))
	copy(out, cat.Symbols)
	return out
}

// SymbolsByComplexity returns symbols whose complexity exactly equals level.
func (c *Catalog) SymbolsByComplexity(level model.Complexity) []model.Symbol {
	var out []model.Symbol
	for _, cat := range c.categories {
		for _, sym := range cat.Symbols {
			if sym.Complexity == level {
				out = append(out, sym)
			}
		}
	}
	return out
}

// SymbolsForLevel returns the cumulative vocabulary for a complexity level:
// basic shows basic only, intermediate adds intermediate, advanced shows all.
// This is the filter the board and builder palettes use.
func (c *Catalog) SymbolsForLevel(level model.Complexity) []model.Symbol {
	var out []model.Symbol
	for _, cat := range c.categories {
		for _, sym := range cat.Symbols {
			if levelIncludes(level, sym.Complexity) {
				out = append(out, sym)
			}
		}
	}
	return out
}

func levelIncludes(level, complexity model.Complexity) bool {
	switch level {
	case model.ComplexityAdvanced:
		return true
	case model.ComplexityIntermediate:
		return complexity == model.ComplexityBasic || complexity == model.ComplexityIntermediate
	default:
		return complexity == model.ComplexityBasic
	}
}
