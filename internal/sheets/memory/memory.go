// Package memory provides an in-memory spreadsheet adapter for tests and
// for running the worker without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendlog/internal/core"
	ports "spendlog/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	items []core.ExpenseRecord
}

// Ensure interface conformance
var (
	_ ports.RowAppender = (*Store)(nil)
	_ ports.RowCounter  = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// AppendRecord stores the record and returns a synthetic row reference.
func (s *Store) AppendRecord(_ context.Context, rec core.ExpenseRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// CountRecords returns the number of stored rows.
func (s *Store) CountRecords(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

// Records returns a copy of the stored rows in append order.
func (s *Store) Records() []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseRecord(nil), s.items...)
}
