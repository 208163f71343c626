package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()
	store := ledger.Open(filepath.Join(t.TempDir(), "expenses.csv"))
	return NewLedgerService(store, nil) // no sync queue in unit tests
}

func TestAddRecordAndQueries(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	recs := []core.ExpenseRecord{
		{Date: "2024-01-10", Category: "A", Amount: core.Money{Cents: 1000}},
		{Date: "2024-01-15", Category: "B", Amount: core.Money{Cents: 3000}},
		{Date: "2024-01-20", Category: "A", Amount: core.Money{Cents: 500}},
	}
	for _, r := range recs {
		if err := s.AddRecord(ctx, r); err != nil {
			t.Fatalf("add %+v: %v", r, err)
		}
	}

	all, err := s.AllRecords()
	if err != nil {
		t.Fatalf("all records: %v", err)
	}
	if len(all) != 3 || all[2] != recs[2] {
		t.Fatalf("unexpected records: %+v", all)
	}

	total, err := s.Total("", "")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.Cents != 4500 {
		t.Fatalf("expected total 4500, got %d", total.Cents)
	}

	ranged, err := s.Total("2024-01-15", "2024-01-31")
	if err != nil {
		t.Fatalf("ranged total: %v", err)
	}
	if ranged.Cents != 3500 {
		t.Fatalf("expected ranged total 3500, got %d", ranged.Cents)
	}

	summary, err := s.CategorySummary("", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 2 || summary[0].Name != "B" || summary[1].Amount.Cents != 1500 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestAddRecordRejectsInvalid(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if err := s.AddRecord(ctx, core.ExpenseRecord{Date: "2024-02-30", Category: "Food", Amount: core.Money{Cents: 500}}); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := s.AddRecord(ctx, core.ExpenseRecord{Date: "2024-02-01", Category: "Food", Amount: core.Money{Cents: -500}}); !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}

	all, err := s.AllRecords()
	if err != nil {
		t.Fatalf("all records: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected adds must not reach the store, got %d records", len(all))
	}
}

func TestQueriesSeeWritesThroughCache(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if err := s.AddRecord(ctx, core.ExpenseRecord{Date: "2024-01-10", Category: "A", Amount: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if total, _ := s.Total("", ""); total.Cents != 100 {
		t.Fatalf("expected 100, got %d", total.Cents)
	}

	// A second append must invalidate the cached total.
	if err := s.AddRecord(ctx, core.ExpenseRecord{Date: "2024-01-11", Category: "A", Amount: core.Money{Cents: 200}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if total, _ := s.Total("", ""); total.Cents != 300 {
		t.Fatalf("cached total served after append, got %d", total.Cents)
	}

	if summary, _ := s.CategorySummary("", ""); len(summary) != 1 || summary[0].Amount.Cents != 300 {
		t.Fatalf("unexpected summary after append: %+v", summary)
	}
}

func TestTotalByDay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	for _, r := range []core.ExpenseRecord{
		{Date: "2024-01-15", Category: "A", Amount: core.Money{Cents: 100}},
		{Date: "2024-01-10", Category: "B", Amount: core.Money{Cents: 200}},
		{Date: "2024-01-15", Category: "C", Amount: core.Money{Cents: 300}},
	} {
		if err := s.AddRecord(ctx, r); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	days, err := s.TotalByDay("", "")
	if err != nil {
		t.Fatalf("total by day: %v", err)
	}
	if len(days) != 2 || days[0].Date != "2024-01-10" || days[1].Amount.Cents != 400 {
		t.Fatalf("unexpected day totals: %+v", days)
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	rec := core.ExpenseRecord{Date: "2024-01-15", Category: "Groceries", Amount: core.Money{Cents: 4250}, Note: "weekly shop"}
	if err := s.AddRecord(ctx, rec); err != nil {
		t.Fatalf("add: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := s.ExportCSV(path); err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := ledger.Open(path).ReadAll()
	if err != nil {
		t.Fatalf("re-read export: %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Fatalf("export round trip failed: %+v", got)
	}
}

func TestCloseWithoutQueue(t *testing.T) {
	s := newTestService(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close should not fail without an AMQP client: %v", err)
	}
}
