// Package storage persists user records over a key-value store.
//
// Reads merge stored values over fresh defaults and recover silently from
// missing, unreadable, or corrupt data: a read never fails, it falls back.
// Writes overwrite whole records and do report errors; callers treat them
// as best-effort.
package storage

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/voxpad/voxpad/internal/model"
)

// Storage keys. Per-symbol usage counters live under usagePrefix so they can
// be enumerated and cleared as a group.
const (
	keyPreferences = "voxpad_user_preferences"
	keyPhrases     = "voxpad_personal_phrases"
	keyProgress    = "voxpad_progress_data"
	usagePrefix    = "symbol_usage_"
)

// KV is the storage capability the service needs. *store.Store implements
// it; tests use an in-memory fake.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	ListByPrefix(ctx context.Context, prefix string) (map[string]string, error)
}

// DefaultPreferences returns a fresh default preferences record. A new value
// is constructed per call so callers can never share mutable state.
func DefaultPreferences() model.Preferences {
	return model.Preferences{
		VoiceSettings: model.VoiceSettings{
			Rate:   1,
			Pitch:  1,
			Volume: 1,
		},
		ComplexityLevel: model.ComplexityBasic,
		FontSize:        "medium",
		HighContrast:    false,
		Categories:      []string{"basic-needs", "emotions", "actions", "people", "places"},
	}
}

// DefaultProgress returns a fresh default progress record.
func DefaultProgress() model.Progress {
	return model.Progress{
		TotalSessions:    0,
		AverageScore:     0,
		MostUsedSymbols:  []model.Symbol{},
		ImprovementTrend: []float64{},
		WeeklyUsage:      []int{0, 0, 0, 0, 0, 0, 0},
	}
}

// Service reads and writes the persisted record types.
type Service struct {
	kv  KV
	now func() time.Time
}

// NewService wraps a key-value store.
func NewService(kv KV) *Service {
	return &Service{kv: kv, now: time.Now}
}

// Preferences returns the stored preferences shallow-merged over defaults,
// or pure defaults when nothing valid is stored.
//
// The merge is shallow at the top level: a stored field wins wholesale, so a
// stored voiceSettings object replaces the default nested object entirely
// rather than being deep-merged. Partial records written by older versions
// keep picking up defaults for fields they never stored.
func (s *Service) Preferences(ctx context.Context) model.Preferences {
	raw, ok, err := s.kv.Get(ctx, keyPreferences)
	if err != nil || !ok {
		return DefaultPreferences()
	}
	merged, err := mergeOverDefaults(raw, DefaultPreferences())
	if err != nil {
		return DefaultPreferences()
	}
	var prefs model.Preferences
	if err := json.Unmarshal(merged, &prefs); err != nil {
		return DefaultPreferences()
	}
	return prefs
}

// SavePreferences serializes and overwrites the stored preferences.
func (s *Service) SavePreferences(ctx context.Context, prefs model.Preferences) error {
	return s.putJSON(ctx, keyPreferences, prefs)
}

// Phrases returns all stored personal phrases in stored order, or an empty
// slice when nothing valid is stored.
func (s *Service) Phrases(ctx context.Context) []model.Phrase {
	raw, ok, err := s.kv.Get(ctx, keyPhrases)
	if err != nil || !ok {
		return nil
	}
	var phrases []model.Phrase
	if err := json.Unmarshal([]byte(raw), &phrases); err != nil {
		return nil
	}
	return phrases
}

// SavePhrase inserts the phrase, or replaces the stored phrase with the same
// id. There is no uniqueness constraint on text.
func (s *Service) SavePhrase(ctx context.Context, phrase model.Phrase) error {
	phrases := s.Phrases(ctx)
	replaced := false
	for i := range phrases {
		if phrases[i].ID == phrase.ID {
			phrases[i] = phrase
			replaced = true
			break
		}
	}
	if !replaced {
		phrases = append(phrases, phrase)
	}
	return s.putJSON(ctx, keyPhrases, phrases)
}

// DeletePhrase removes the phrase with the given id. Absent ids are a no-op.
func (s *Service) DeletePhrase(ctx context.Context, id string) error {
	phrases := s.Phrases(ctx)
	filtered := phrases[:0]
	for _, p := range phrases {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	return s.putJSON(ctx, keyPhrases, filtered)
}

// TouchPhrase records one spoken use of a phrase: frequency increments and
// lastUsed moves to now. Absent ids are a no-op.
func (s *Service) TouchPhrase(ctx context.Context, id string) error {
	phrases := s.Phrases(ctx)
	for i := range phrases {
		if phrases[i].ID == id {
			phrases[i].Frequency++
			phrases[i].LastUsed = s.now()
			return s.putJSON(ctx, keyPhrases, phrases)
		}
	}
	return nil
}

// SortPhrases orders phrases most-used first, breaking ties by recency.
func SortPhrases(phrases []model.Phrase) {
	sort.SliceStable(phrases, func(i, j int) bool {
		if phrases[i].Frequency != phrases[j].Frequency {
			return phrases[i].Frequency > phrases[j].Frequency
		}
		return phrases[i].LastUsed.After(phrases[j].LastUsed)
	})
}

// Progress returns the stored progress record, or defaults when nothing
// valid is stored. WeeklyUsage is normalized to exactly seven entries.
func (s *Service) Progress(ctx context.Context) model.Progress {
	raw, ok, err := s.kv.Get(ctx, keyProgress)
	if err != nil || !ok {
		return DefaultProgress()
	}
	var progress model.Progress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		return DefaultProgress()
	}
	progress.WeeklyUsage = normalizeWeekly(progress.WeeklyUsage)
	return progress
}

// SaveProgress serializes and overwrites the stored progress record.
func (s *Service) SaveProgress(ctx context.Context, progress model.Progress) error {
	progress.WeeklyUsage = normalizeWeekly(progress.WeeklyUsage)
	return s.putJSON(ctx, keyProgress, progress)
}

// IncrementUsage adds one to a symbol's usage counter.
func (s *Service) IncrementUsage(ctx context.Context, symbolID string) error {
	count := s.Usage(ctx, symbolID)
	return s.kv.Put(ctx, usagePrefix+symbolID, strconv.Itoa(count+1))
}

// Usage returns a symbol's usage counter, zero when absent or unreadable.
func (s *Service) Usage(ctx context.Context, symbolID string) int {
	raw, ok, err := s.kv.Get(ctx, usagePrefix+symbolID)
	if err != nil || !ok {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// UsageCounts returns every symbol usage counter keyed by symbol id.
func (s *Service) UsageCounts(ctx context.Context) map[string]int {
	entries, err := s.kv.ListByPrefix(ctx, usagePrefix)
	if err != nil {
		return nil
	}
	counts := make(map[string]int, len(entries))
	for key, raw := range entries {
		count, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || count <= 0 {
			continue
		}
		counts[strings.TrimPrefix(key, usagePrefix)] = count
	}
	return counts
}

// ClearAll removes every record this service owns, including all per-symbol
// usage counters. Calling it on empty storage is not an error.
func (s *Service) ClearAll(ctx context.Context) error {
	for _, key := range []string{keyPreferences, keyPhrases, keyProgress} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return s.kv.DeleteByPrefix(ctx, usagePrefix)
}

func (s *Service) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, key, string(data))
}

// mergeOverDefaults overlays the stored record's top-level JSON fields onto
// the defaults. Nested objects are replaced wholesale, not deep-merged.
func mergeOverDefaults(stored string, defaults any) ([]byte, error) {
	defaultJSON, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(defaultJSON, &base); err != nil {
		return nil, err
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stored), &overlay); err != nil {
		return nil, err
	}
	for key, value := range overlay {
		base[key] = value
	}
	return json.Marshal(base)
}

func normalizeWeekly(weekly []int) []int {
	if len(weekly) == 7 {
		return weekly
	}
	out := make([]int, 7)
	copy(out, weekly)
	return out
}
