package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendlog/internal/core"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "expenses.csv"))
}

func TestEnsureInitialized(t *testing.T) {
	s := tempStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("second init should be a no-op: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "date,category,amount,note" {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestEnsureInitializedKeepsExistingData(t *testing.T) {
	s := tempStore(t)
	rec := core.ExpenseRecord{Date: "2024-01-15", Category: "Groceries", Amount: core.Money{Cents: 4250}, Note: "weekly shop"}
	if err := s.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("init on existing store: %v", err)
	}
	records, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("existing data lost, got %d records", len(records))
	}
}

func TestReadAllEmptyStore(t *testing.T) {
	s := tempStore(t)
	records, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read on fresh store: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty sequence, got %d records", len(records))
	}
}

func TestAppendThenReadAll(t *testing.T) {
	s := tempStore(t)
	recs := []core.ExpenseRecord{
		{Date: "2024-01-15", Category: "Groceries", Amount: core.Money{Cents: 4250}, Note: "weekly shop"},
		{Date: "2024-01-10", Category: "Transport", Amount: core.Money{Cents: 250}}, // backdated, note empty
		{Date: "2024-01-20", Category: "Groceries", Amount: core.Money{Cents: 0}, Note: "refunded"},
	}
	for _, r := range recs {
		if err := s.Append(r); err != nil {
			t.Fatalf("append %+v: %v", r, err)
		}
	}
	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("expected %d records, got %d", len(recs), len(got))
	}
	// Insertion order, not date order, and every field round-trips.
	for i := range recs {
		if got[i] != recs[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, recs[i], got[i])
		}
	}
}

func TestAppendQuotedFields(t *testing.T) {
	s := tempStore(t)
	rec := core.ExpenseRecord{Date: "2024-03-01", Category: "Eating, out", Amount: core.Money{Cents: 1999}, Note: `said "hello"`}
	if err := s.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Fatalf("expected %+v, got %+v", rec, got)
	}
}

func TestAppendRejectsInvalidRecords(t *testing.T) {
	s := tempStore(t)
	good := core.ExpenseRecord{Date: "2024-02-01", Category: "Food", Amount: core.Money{Cents: 500}}
	if err := s.Append(good); err != nil {
		t.Fatalf("append: %v", err)
	}

	cases := []struct {
		rec  core.ExpenseRecord
		want error
	}{
		{core.ExpenseRecord{Date: "2024-02-30", Category: "Food", Amount: core.Money{Cents: 500}}, core.ErrInvalidDate},
		{core.ExpenseRecord{Date: "2024-02-01", Category: "Food", Amount: core.Money{Cents: -500}}, core.ErrNegativeAmount},
	}
	for i, tc := range cases {
		if err := s.Append(tc.rec); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}

	// Rejected appends must not have touched the store.
	records, err := s.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("store changed by rejected append, got %d records", len(records))
	}
}

func TestReadAllCorruptRows(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"non-numeric amount", "date,category,amount,note\n2024-01-15,Groceries,abc,note\n"},
		{"missing field", "date,category,amount,note\n2024-01-15,Groceries,4.20\n"},
		{"extra field", "date,category,amount,note\n2024-01-15,Groceries,4.20,note,extra\n"},
		{"negative amount", "date,category,amount,note\n2024-01-15,Groceries,-4.20,note\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "expenses.csv")
			if err := os.WriteFile(path, []byte(tc.body), 0644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			_, err := Open(path).ReadAll()
			if !errors.Is(err, ErrCorruptRecord) {
				t.Fatalf("expected ErrCorruptRecord, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("error should name the line, got %q", err.Error())
			}
		})
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "expenses.csv")
	s := Open(path)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("init with missing parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("ledger file missing: %v", err)
	}
}
