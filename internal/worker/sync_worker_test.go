package worker

import (
	"context"
	"path/filepath"
	"testing"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/ledger"
	"spendlog/internal/sheets/memory"
)

func newWorker(t *testing.T) (*SyncWorker, *ledger.Store, *memory.Store) {
	t.Helper()
	store := ledger.Open(filepath.Join(t.TempDir(), "expenses.csv"))
	sheet := memory.New()
	return NewSyncWorker(store, sheet, sheet), store, sheet
}

func TestHandleSyncMessage(t *testing.T) {
	w, _, sheet := newWorker(t)
	ctx := context.Background()

	rec := core.ExpenseRecord{Date: "2024-01-15", Category: "Groceries", Amount: core.Money{Cents: 4250}, Note: "weekly shop"}
	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage(rec)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	got := sheet.Records()
	if len(got) != 1 || got[0] != rec {
		t.Fatalf("sheet holds %+v, want [%+v]", got, rec)
	}
}

func TestHandleSyncMessageInvalidRecord(t *testing.T) {
	w, _, sheet := newWorker(t)

	msg := &amqp.RecordSyncMessage{Date: "2024-02-30", Category: "Food", AmountCents: 500}
	if err := w.HandleSyncMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error for invalid record")
	}
	if n, _ := sheet.CountRecords(context.Background()); n != 0 {
		t.Fatalf("invalid record must not reach the sheet, count=%d", n)
	}
}

func TestStartupSyncCheckBackfills(t *testing.T) {
	w, store, sheet := newWorker(t)
	ctx := context.Background()

	recs := []core.ExpenseRecord{
		{Date: "2024-01-10", Category: "A", Amount: core.Money{Cents: 100}},
		{Date: "2024-01-11", Category: "B", Amount: core.Money{Cents: 200}},
		{Date: "2024-01-12", Category: "C", Amount: core.Money{Cents: 300}},
	}
	for _, r := range recs {
		if err := store.Append(r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	// The sheet already holds the first record; only the suffix is missing.
	if _, err := sheet.AppendRecord(ctx, recs[0]); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("startup sync: %v", err)
	}

	got := sheet.Records()
	if len(got) != 3 {
		t.Fatalf("expected 3 rows after backfill, got %d", len(got))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, recs[i], got[i])
		}
	}
}

func TestStartupSyncCheckUpToDate(t *testing.T) {
	w, store, sheet := newWorker(t)
	ctx := context.Background()

	rec := core.ExpenseRecord{Date: "2024-01-10", Category: "A", Amount: core.Money{Cents: 100}}
	if err := store.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := sheet.AppendRecord(ctx, rec); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("startup sync: %v", err)
	}
	if n, _ := sheet.CountRecords(ctx); n != 1 {
		t.Fatalf("up-to-date sheet must not gain rows, count=%d", n)
	}
}

func TestStartupSyncCheckEmptyLedger(t *testing.T) {
	w, _, sheet := newWorker(t)
	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("startup sync on empty ledger: %v", err)
	}
	if n, _ := sheet.CountRecords(context.Background()); n != 0 {
		t.Fatalf("expected untouched sheet, count=%d", n)
	}
}
