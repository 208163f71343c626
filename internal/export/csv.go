// Package export writes query results to caller-specified destinations.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
	"spendlog/internal/query"
)

// WriteCSV writes records to path in the ledger file format, header included.
// The destination is an independent copy; the ledger itself is never touched.
// Re-reading the export through the ledger package yields the same records
// field for field.
func WriteCSV(path string, records []core.ExpenseRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledger.Header); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, row := range query.ExportRows(records) {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	slog.Info("Exported records", "path", path, "rows", len(records))
	return nil
}
