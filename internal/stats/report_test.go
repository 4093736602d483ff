package stats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/store"
	"github.com/voxpad/voxpad/internal/symbol"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "voxpad.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	records := storage.NewService(st)
	catalog := symbol.Default()

	for i := 0; i < 3; i++ {
		if err := records.IncrementUsage(ctx, "water"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	_ = records.IncrementUsage(ctx, "help")
	_ = records.IncrementUsage(ctx, "not-in-catalog")

	report := BuildReport(ctx, records, catalog, 5)
	if report.TotalSpoken != 5 {
		t.Errorf("totalSpoken = %d, want 5", report.TotalSpoken)
	}
	if len(report.MostUsed) != 2 {
		t.Fatalf("mostUsed has %d entries, want 2 (unknown ids are inert)", len(report.MostUsed))
	}
	if report.MostUsed[0].Symbol.ID != "water" || report.MostUsed[0].Count != 3 {
		t.Errorf("mostUsed[0] = %+v", report.MostUsed[0])
	}
	if report.Progress.TotalSessions != 0 {
		t.Errorf("fresh progress should default, got %+v", report.Progress)
	}
}

func TestTopUsageTiesBreakByID(t *testing.T) {
	catalog := symbol.Default()
	counts := map[string]int{"water": 2, "food": 2, "help": 1}
	top := TopUsage(counts, catalog, 2)
	if len(top) != 2 {
		t.Fatalf("got %d entries", len(top))
	}
	if top[0].Symbol.ID != "food" || top[1].Symbol.ID != "water" {
		t.Errorf("tie should break alphabetically: %v, %v", top[0].Symbol.ID, top[1].Symbol.ID)
	}
}
