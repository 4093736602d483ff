package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "voxpad.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPutGetDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := st.Put(ctx, "k", `{"a":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, ok, err := st.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `{"a":1}` {
		t.Errorf("value = %q", value)
	}
	if err := st.Put(ctx, "k", `{"a":2}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = st.Get(ctx, "k")
	if value != `{"a":2}` {
		t.Errorf("after overwrite value = %q", value)
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := st.Get(ctx, "k"); ok {
		t.Error("key should be gone after delete")
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Errorf("second delete should not fail: %v", err)
	}
}

func TestPrefixOperations(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	pairs := map[string]string{
		"symbol_usage_water": "3",
		"symbol_usage_food":  "1",
		"symbolXusageXother": "9",
		"prefs":              "{}",
	}
	for k, v := range pairs {
		if err := st.Put(ctx, k, v); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}

	// Underscores in the prefix must match literally, not as LIKE wildcards.
	listed, err := st.ListByPrefix(ctx, "symbol_usage_")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d keys, want 2: %v", len(listed), listed)
	}
	if listed["symbol_usage_water"] != "3" {
		t.Errorf("water counter = %q", listed["symbol_usage_water"])
	}

	if err := st.DeleteByPrefix(ctx, "symbol_usage_"); err != nil {
		t.Fatalf("delete by prefix: %v", err)
	}
	listed, err = st.ListByPrefix(ctx, "symbol_usage_")
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("counters should be gone, got %v", listed)
	}
	if _, ok, _ := st.Get(ctx, "symbolXusageXother"); !ok {
		t.Error("non-matching key should survive the prefix delete")
	}
	if _, ok, _ := st.Get(ctx, "prefs"); !ok {
		t.Error("unrelated key should survive the prefix delete")
	}
}
