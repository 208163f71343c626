// Package ledger implements the durable append-only expense store: a flat
// UTF-8 CSV file with a mandatory header row and one row per record.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"spendlog/internal/core"
)

// Header is the canonical first row of every ledger file. Field order is
// fixed; exports reuse it so the two formats stay identical.
var Header = []string{"date", "category", "amount", "note"}

// ErrCorruptRecord marks a stored row that no longer parses. Reads fail
// instead of skipping: a short or non-numeric row means the file was edited
// or truncated outside this program, and dropping it would make every
// aggregate quietly wrong.
var ErrCorruptRecord = errors.New("corrupt ledger record")

// Store is a handle on one ledger file. The caller owns the path and the
// lifecycle; this package keeps no global state.
type Store struct {
	path string
}

// Open returns a Store for path. The file itself is created lazily by
// EnsureInitialized or by the first Append.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// EnsureInitialized creates the ledger file with its header row when it does
// not exist yet. Idempotent, safe to call before every operation.
func (s *Store) EnsureInitialized() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("create ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}

	slog.Info("Ledger initialized", "path", s.path)
	return nil
}

// Append validates rec and writes it as the newest row, amount in canonical
// two-decimal form. A validation failure leaves the file untouched.
func (s *Store) Append(rec core.ExpenseRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := s.EnsureInitialized(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open ledger for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{rec.Date, rec.Category, rec.Amount.String(), rec.Note}); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	slog.Debug("Record appended",
		"path", s.path,
		"date", rec.Date,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)
	return nil
}

// ReadAll returns every stored record in insertion order. A fresh or empty
// store yields an empty slice and no error. A row that fails to parse aborts
// the whole read with an error wrapping ErrCorruptRecord and naming the line.
func (s *Store) ReadAll() ([]core.ExpenseRecord, error) {
	if err := s.EnsureInitialized(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count checked per row for a precise error

	if _, err := r.Read(); err == io.EOF {
		return []core.ExpenseRecord{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("read ledger header: %w", err)
	}

	records := []core.ExpenseRecord{}
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrCorruptRecord, err)
		}
		if len(row) != len(Header) {
			return nil, fmt.Errorf("line %d: %w: got %d fields, want %d", line, ErrCorruptRecord, len(row), len(Header))
		}
		amount, err := core.ParseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: amount %q", line, ErrCorruptRecord, row[2])
		}
		records = append(records, core.ExpenseRecord{
			Date:     row[0],
			Category: row[1],
			Amount:   amount,
			Note:     row[3],
		})
	}
}
