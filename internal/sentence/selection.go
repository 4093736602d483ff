// Package sentence accumulates chosen symbols into an ordered sequence and
// renders it as speakable text.
package sentence

import (
	"strings"

	"github.com/voxpad/voxpad/internal/model"
)

// Selection is the free-selection interaction mode: a growable sequence of
// chosen symbols where choosing an already-present symbol removes it.
type Selection struct {
	symbols []model.Symbol
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Toggle removes the symbol if it is already selected, otherwise appends it.
func (s *Selection) Toggle(sym model.Symbol) {
	for i, existing := range s.symbols {
		if existing.ID == sym.ID {
			s.symbols = append(s.symbols[:i], s.symbols[i+1:]...)
			return
		}
	}
	s.symbols = append(s.symbols, sym)
}

// RemoveAt removes the symbol at the given index. Out-of-range indices are a
// no-op.
func (s *Selection) RemoveAt(i int) {
	if i < 0 || i >= len(s.symbols) {
		return
	}
	s.symbols = append(s.symbols[:i], s.symbols[i+1:]...)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.symbols = nil
}

// Contains reports whether a symbol id is currently selected.
func (s *Selection) Contains(id string) bool {
	for _, existing := range s.symbols {
		if existing.ID == id {
			return true
		}
	}
	return false
}

// Symbols returns the selected symbols in selection order.
func (s *Selection) Symbols() []model.Symbol {
	out := make([]model.Symbol, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Len returns the number of selected symbols.
func (s *Selection) Len() int {
	return len(s.symbols)
}

// Text renders the selection as space-joined display texts.
func (s *Selection) Text() string {
	parts := make([]string, 0, len(s.symbols))
	for _, sym := range s.symbols {
		parts = append(parts, sym.Text)
	}
	return strings.Join(parts, " ")
}
