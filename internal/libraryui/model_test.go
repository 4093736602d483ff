package libraryui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/store"
)

type stubEngine struct {
	err    error
	spoken []string
}

func (e *stubEngine) Speak(_ context.Context, text string, _ speech.Options) error {
	e.spoken = append(e.spoken, text)
	return e.err
}

func (e *stubEngine) Voices(context.Context) ([]speech.Voice, error) {
	return nil, nil
}

func newTestModel(t *testing.T) (*Model, *stubEngine, *storage.Service) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "voxpad.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	records := storage.NewService(st)
	engine := &stubEngine{}
	return NewModel(records, engine), engine, records
}

func TestPromoteSuggested(t *testing.T) {
	m, _, records := newTestModel(t)

	m.suggestIndex = 0
	m.promoteSuggested()
	phrases := records.Phrases(context.Background())
	if len(phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(phrases))
	}
	if phrases[0].Text != suggestedPhrases[0].text || phrases[0].Category != suggestedPhrases[0].category {
		t.Errorf("promoted phrase = %+v", phrases[0])
	}
	if phrases[0].Frequency != 0 || !phrases[0].LastUsed.IsZero() {
		t.Errorf("promoted phrase should start unused, got %+v", phrases[0])
	}

	// Promoting the same suggestion twice is a no-op.
	m.promoteSuggested()
	if got := len(records.Phrases(context.Background())); got != 1 {
		t.Errorf("got %d phrases after duplicate promote, want 1", got)
	}
}

func TestSpeakTouchesPhraseOnSuccess(t *testing.T) {
	m, engine, records := newTestModel(t)
	m.savePhrase("I am tired", "feelings")

	cmd := m.speakSelected()
	if cmd == nil {
		t.Fatal("speakSelected returned nil")
	}
	updated, _ := m.Update(cmd())
	m = updated.(*Model)

	if len(engine.spoken) != 1 || engine.spoken[0] != "I am tired" {
		t.Errorf("spoken = %v", engine.spoken)
	}
	phrases := records.Phrases(context.Background())
	if phrases[0].Frequency != 1 {
		t.Errorf("frequency = %d, want 1 after one spoken use", phrases[0].Frequency)
	}
	if phrases[0].LastUsed.IsZero() {
		t.Error("lastUsed should be set after one spoken use")
	}
}

func TestSpeakFailureSkipsTouch(t *testing.T) {
	m, engine, records := newTestModel(t)
	engine.err = errors.New("no audio device")
	m.savePhrase("Good morning", "social")

	cmd := m.speakSelected()
	updated, _ := m.Update(cmd())
	m = updated.(*Model)

	if m.errMsg == "" {
		t.Error("a speech failure should surface in the UI")
	}
	if got := records.Phrases(context.Background())[0].Frequency; got != 0 {
		t.Errorf("frequency = %d, want 0 (no touch on failure)", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	m, _, records := newTestModel(t)
	m.savePhrase("I need help", "assistance")
	m.savePhrase("I love you", "social")

	m.table.SetCursor(0)
	m.deleteSelected()
	if got := len(records.Phrases(context.Background())); got != 1 {
		t.Errorf("got %d phrases after delete, want 1", got)
	}
	if len(m.phrases) != 1 {
		t.Errorf("model holds %d phrases after delete, want 1", len(m.phrases))
	}
}
