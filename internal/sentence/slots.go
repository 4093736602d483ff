package sentence

import (
	"fmt"
	"strings"

	"github.com/voxpad/voxpad/internal/model"
)

// SlotBuilder is the structured interaction mode: a fixed-size sequence of
// typed slots whose count and type pattern follow the complexity level.
type SlotBuilder struct {
	level model.Complexity
	slots []model.Slot
}

// templateFor returns the slot type pattern for a complexity level. Unknown
// levels use the basic template.
func templateFor(level model.Complexity) []model.SlotType {
	switch level {
	case model.ComplexityIntermediate:
		return []model.SlotType{model.SlotSubject, model.SlotVerb, model.SlotObject, model.SlotModifier}
	case model.ComplexityAdvanced:
		return []model.SlotType{
			model.SlotModifier, model.SlotSubject, model.SlotVerb,
			model.SlotObject, model.SlotModifier, model.SlotModifier,
		}
	default:
		return []model.SlotType{model.SlotSubject, model.SlotVerb}
	}
}

// NewSlotBuilder returns a builder templated for the given level.
func NewSlotBuilder(level model.Complexity) *SlotBuilder {
	b := &SlotBuilder{}
	b.SetLevel(level)
	return b
}

// SetLevel re-initializes the slot template for the level, discarding any
// current placements.
func (b *SlotBuilder) SetLevel(level model.Complexity) {
	b.level = level
	types := templateFor(level)
	b.slots = make([]model.Slot, len(types))
	for i, slotType := range types {
		b.slots[i] = model.Slot{
			ID:       fmt.Sprintf("slot%d", i+1),
			Position: i + 1,
			Type:     slotType,
		}
	}
}

// Level returns the current complexity level.
func (b *SlotBuilder) Level() model.Complexity {
	return b.level
}

// Slots returns the slots in template order.
func (b *SlotBuilder) Slots() []model.Slot {
	out := make([]model.Slot, len(b.slots))
	copy(out, b.slots)
	return out
}

// Place fills the first empty slot with the symbol, as when choosing from
// the palette. It reports whether a slot was free.
func (b *SlotBuilder) Place(sym model.Symbol) bool {
	for i := range b.slots {
		if b.slots[i].Symbol == nil {
			s := sym
			b.slots[i].Symbol = &s
			return true
		}
	}
	return false
}

// PlaceAt fills a specific slot, as when a symbol is dropped onto it,
// replacing any previous placement. Out-of-range indices are a no-op.
func (b *SlotBuilder) PlaceAt(i int, sym model.Symbol) bool {
	if i < 0 || i >= len(b.slots) {
		return false
	}
	s := sym
	b.slots[i].Symbol = &s
	return true
}

// RemoveAt empties the slot at the given index.
func (b *SlotBuilder) RemoveAt(i int) {
	if i < 0 || i >= len(b.slots) {
		return
	}
	b.slots[i].Symbol = nil
}

// Clear empties every slot, keeping the template.
func (b *SlotBuilder) Clear() {
	for i := range b.slots {
		b.slots[i].Symbol = nil
	}
}

// Text renders the filled slots as space-joined display texts in slot
// order, skipping empty slots.
func (b *SlotBuilder) Text() string {
	var parts []string
	for _, slot := range b.slots {
		if slot.Symbol != nil {
			parts = append(parts, slot.Symbol.Text)
		}
	}
	return strings.Join(parts, " ")
}

// SlotLabel is the user-facing prompt for a slot type.
func SlotLabel(slotType model.SlotType) string {
	switch slotType {
	case model.SlotSubject:
		return "Who/What"
	case model.SlotVerb:
		return "Action"
	case model.SlotObject:
		return "What/Where"
	case model.SlotModifier:
		return "How/When"
	default:
		return "Word"
	}
}
