// Package stats contains progress calculations and text rendering.
package stats

import (
	"context"
	"sort"

	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/symbol"
)

// SymbolUsage pairs a symbol with its usage counter.
type SymbolUsage struct {
	Symbol model.Symbol
	Count  int
}

// Report contains precomputed data for progress rendering.
type Report struct {
	Progress    model.Progress
	MostUsed    []SymbolUsage
	TotalSpoken int
}

// BuildReport loads and prepares data for progress rendering. Storage reads
// fall back to defaults, so building a report never fails.
func BuildReport(ctx context.Context, records *storage.Service, catalog *symbol.Catalog, topN int) Report {
	counts := records.UsageCounts(ctx)
	total := 0
	for _, count := range counts {
		total += count
	}
	return Report{
		Progress:    records.Progress(ctx),
		MostUsed:    TopUsage(counts, catalog, topN),
		TotalSpoken: total,
	}
}

// TopUsage returns the top N symbols by usage counter. Counters for ids the
// catalog does not know are inert and skipped.
func TopUsage(counts map[string]int, catalog *symbol.Catalog, n int) []SymbolUsage {
	if n <= 0 || len(counts) == 0 {
		return nil
	}
	items := make([]SymbolUsage, 0, len(counts))
	for id, count := range counts {
		sym, ok := catalog.Symbol(id)
		if !ok {
			continue
		}
		items = append(items, SymbolUsage{Symbol: sym, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Symbol.ID < items[j].Symbol.ID
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
