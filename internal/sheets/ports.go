package sheets

import (
	"context"

	"spendlog/internal/core"
)

// Ports for outbound spreadsheet adapters.
type (
	// RowAppender writes one expense record as a new spreadsheet row.
	RowAppender interface {
		AppendRecord(ctx context.Context, rec core.ExpenseRecord) (rowRef string, err error)
	}

	// RowCounter reports how many expense rows the sheet already holds.
	// The worker's startup backfill compares this against the ledger length.
	RowCounter interface {
		CountRecords(ctx context.Context) (int, error)
	}
)
