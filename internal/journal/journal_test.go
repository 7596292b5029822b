package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finzen/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Append(ctx, Entry{
		Resource:       "goal",
		Action:         ActionContribute,
		Reference:      "3",
		AmountCents:    5000000,
		IsQuotaPayment: true,
		Notes:          "enero",
		OccurredOn:     core.NewDate(2025, 1, 15),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	e, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Resource != "goal" || e.Action != ActionContribute || e.Reference != "3" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.AmountCents != 5000000 || !e.IsQuotaPayment {
		t.Errorf("amount/quota flag lost: %+v", e)
	}
	if e.OccurredOn.String() != "2025-01-15" {
		t.Errorf("occurred_on = %s", e.OccurredOn)
	}
	if e.SyncedAt != nil {
		t.Error("new entry must be unsynced")
	}
}

func TestGetMissingEntry(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListUnsyncedAndMarkSynced(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := store.Append(ctx, Entry{
			Resource:   "goal",
			Action:     ActionContribute,
			Reference:  "1",
			OccurredOn: core.NewDate(2025, 2, i+1),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	pending, err := store.ListUnsynced(ctx, 10)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}
	// Oldest first, so the export replays mutations in order.
	if pending[0].ID != ids[0] {
		t.Errorf("expected oldest entry first, got id %d", pending[0].ID)
	}

	if err := store.MarkSynced(ctx, ids[1]); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, err = store.ListUnsynced(ctx, 10)
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending after sync = %d, want 2", len(pending))
	}

	e, err := store.GetByID(ctx, ids[1])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.SyncedAt == nil {
		t.Fatal("expected synced_at to be set")
	}

	// Idempotent: a second mark keeps the original stamp.
	if err := store.MarkSynced(ctx, ids[1]); err != nil {
		t.Fatalf("second mark synced: %v", err)
	}
}

func TestMarkSyncedMissing(t *testing.T) {
	store := openTestStore(t)
	if err := store.MarkSynced(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListUnsyncedRespectsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Append(ctx, Entry{
			Resource:   "debt",
			Action:     ActionPayment,
			Reference:  "9",
			OccurredOn: core.NewDate(2025, 3, 1),
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	pending, err := store.ListUnsynced(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
}
