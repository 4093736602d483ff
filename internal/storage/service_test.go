package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/voxpad/voxpad/internal/model"
)

type memKV struct {
	data map[string]string
	err  error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func (m *memKV) DeleteByPrefix(_ context.Context, prefix string) error {
	if m.err != nil {
		return m.err
	}
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *memKV) ListByPrefix(_ context.Context, prefix string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[string]string{}
	for key, value := range m.data {
		if strings.HasPrefix(key, prefix) {
			out[key] = value
		}
	}
	return out, nil
}

func newTestService(kv KV) *Service {
	svc := NewService(kv)
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestPreferencesFreshStorageReturnsDefaults(t *testing.T) {
	svc := newTestService(newMemKV())
	got := svc.Preferences(context.Background())

	want := model.Preferences{
		VoiceSettings:   model.VoiceSettings{Rate: 1, Pitch: 1, Volume: 1},
		ComplexityLevel: model.ComplexityBasic,
		FontSize:        "medium",
		HighContrast:    false,
		Categories:      []string{"basic-needs", "emotions", "actions", "people", "places"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("defaults = %+v, want %+v", got, want)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	svc := newTestService(newMemKV())
	ctx := context.Background()

	prefs := svc.Preferences(ctx)
	prefs.ComplexityLevel = model.ComplexityAdvanced
	prefs.VoiceSettings.Rate = 1.5
	prefs.HighContrast = true
	if err := svc.SavePreferences(ctx, prefs); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := svc.Preferences(ctx)
	if !reflect.DeepEqual(got, prefs) {
		t.Errorf("round trip = %+v, want %+v", got, prefs)
	}
}

func TestPreferencesPartialRecordKeepsDefaults(t *testing.T) {
	kv := newMemKV()
	kv.data[keyPreferences] = `{"complexityLevel":"advanced"}`
	svc := newTestService(kv)

	got := svc.Preferences(context.Background())
	if got.ComplexityLevel != model.ComplexityAdvanced {
		t.Errorf("complexityLevel = %q", got.ComplexityLevel)
	}
	if got.VoiceSettings.Rate != 1 || got.VoiceSettings.Pitch != 1 {
		t.Errorf("untouched voiceSettings should keep defaults, got %+v", got.VoiceSettings)
	}
	if got.FontSize != "medium" {
		t.Errorf("fontSize = %q", got.FontSize)
	}
}

func TestPreferencesNestedObjectReplacedWholesale(t *testing.T) {
	// The merge is shallow: a stored voiceSettings object wins entirely,
	// dropping defaults for nested fields it omits.
	kv := newMemKV()
	kv.data[keyPreferences] = `{"voiceSettings":{"rate":1.5}}`
	svc := newTestService(kv)

	got := svc.Preferences(context.Background())
	if got.VoiceSettings.Rate != 1.5 {
		t.Errorf("rate = %v", got.VoiceSettings.Rate)
	}
	if got.VoiceSettings.Pitch != 0 || got.VoiceSettings.Volume != 0 {
		t.Errorf("nested defaults should be dropped, got %+v", got.VoiceSettings)
	}
}

func TestPreferencesCorruptDataFallsBack(t *testing.T) {
	kv := newMemKV()
	kv.data[keyPreferences] = `{not json`
	svc := newTestService(kv)

	got := svc.Preferences(context.Background())
	if !reflect.DeepEqual(got, DefaultPreferences()) {
		t.Errorf("corrupt data should fall back to defaults, got %+v", got)
	}
}

func TestPreferencesStorageUnavailableFallsBack(t *testing.T) {
	kv := newMemKV()
	kv.err = errors.New("storage unavailable")
	svc := newTestService(kv)

	got := svc.Preferences(context.Background())
	if !reflect.DeepEqual(got, DefaultPreferences()) {
		t.Errorf("unavailable storage should fall back to defaults, got %+v", got)
	}
	if phrases := svc.Phrases(context.Background()); len(phrases) != 0 {
		t.Errorf("phrases should be empty, got %v", phrases)
	}
	if progress := svc.Progress(context.Background()); progress.TotalSessions != 0 {
		t.Errorf("progress should default, got %+v", progress)
	}
}

func TestPhraseSpeakOnce(t *testing.T) {
	svc := newTestService(newMemKV())
	ctx := context.Background()

	phrase := model.Phrase{ID: "1", Text: "I need help", Category: "assistance", Frequency: 0}
	if err := svc.SavePhrase(ctx, phrase); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.TouchPhrase(ctx, "1"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	phrases := svc.Phrases(ctx)
	if len(phrases) != 1 {
		t.Fatalf("got %d phrases", len(phrases))
	}
	if phrases[0].Frequency != 1 {
		t.Errorf("frequency = %d, want 1", phrases[0].Frequency)
	}
	if phrases[0].LastUsed.IsZero() {
		t.Error("lastUsed should be set")
	}
}

func TestPhraseUpsertAndDelete(t *testing.T) {
	svc := newTestService(newMemKV())
	ctx := context.Background()

	_ = svc.SavePhrase(ctx, model.Phrase{ID: "1", Text: "Good morning", Category: "social"})
	_ = svc.SavePhrase(ctx, model.Phrase{ID: "2", Text: "I am tired", Category: "feelings"})
	_ = svc.SavePhrase(ctx, model.Phrase{ID: "1", Text: "Good evening", Category: "social"})

	phrases := svc.Phrases(ctx)
	if len(phrases) != 2 {
		t.Fatalf("got %d phrases, want 2", len(phrases))
	}
	if phrases[0].Text != "Good evening" {
		t.Errorf("upsert should replace in place, got %q", phrases[0].Text)
	}

	if err := svc.DeletePhrase(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeletePhrase(ctx, "no-such-id"); err != nil {
		t.Errorf("deleting an absent id should not fail: %v", err)
	}
	phrases = svc.Phrases(ctx)
	if len(phrases) != 1 || phrases[0].ID != "2" {
		t.Errorf("after delete: %v", phrases)
	}
}

func TestSortPhrases(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	phrases := []model.Phrase{
		{ID: "a", Frequency: 1, LastUsed: older},
		{ID: "b", Frequency: 3, LastUsed: older},
		{ID: "c", Frequency: 1, LastUsed: newer},
	}
	SortPhrases(phrases)
	wantOrder := []string{"b", "c", "a"}
	for i, id := range wantOrder {
		if phrases[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, phrases[i].ID, id)
		}
	}
}

func TestUsageCounters(t *testing.T) {
	svc := newTestService(newMemKV())
	ctx := context.Background()

	if got := svc.Usage(ctx, "water"); got != 0 {
		t.Errorf("fresh counter = %d", got)
	}
	for i := 0; i < 3; i++ {
		if err := svc.IncrementUsage(ctx, "water"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	_ = svc.IncrementUsage(ctx, "help")
	if got := svc.Usage(ctx, "water"); got != 3 {
		t.Errorf("water counter = %d, want 3", got)
	}
	counts := svc.UsageCounts(ctx)
	if counts["water"] != 3 || counts["help"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestProgressWeeklyUsageNormalized(t *testing.T) {
	kv := newMemKV()
	kv.data[keyProgress] = `{"totalSessions":2,"averageScore":70,"weeklyUsage":[1,2]}`
	svc := newTestService(kv)

	progress := svc.Progress(context.Background())
	if len(progress.WeeklyUsage) != 7 {
		t.Fatalf("weeklyUsage has %d entries", len(progress.WeeklyUsage))
	}
	if progress.WeeklyUsage[0] != 1 || progress.WeeklyUsage[1] != 2 {
		t.Errorf("existing entries should be kept: %v", progress.WeeklyUsage)
	}
}

func TestClearAllIsIdempotent(t *testing.T) {
	kv := newMemKV()
	svc := newTestService(kv)
	ctx := context.Background()

	_ = svc.SavePreferences(ctx, DefaultPreferences())
	_ = svc.SavePhrase(ctx, model.Phrase{ID: "1", Text: "hello"})
	_ = svc.IncrementUsage(ctx, "water")

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if len(kv.data) != 0 {
		t.Errorf("storage not empty after clear: %v", kv.data)
	}
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("second clear should not fail: %v", err)
	}
	if len(kv.data) != 0 {
		t.Errorf("storage not empty after second clear: %v", kv.data)
	}
}
