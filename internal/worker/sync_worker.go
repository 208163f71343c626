// Package worker handles background synchronization of ledger records to a
// spreadsheet destination.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendlog/internal/amqp"
	"spendlog/internal/ledger"
	"spendlog/internal/sheets"
)

// SyncWorker mirrors appended ledger records to a spreadsheet. Live appends
// arrive over the sync queue; StartupSyncCheck backfills anything the queue
// missed while the worker was down.
type SyncWorker struct {
	store *ledger.Store
	sheet sheets.RowAppender
	count sheets.RowCounter
}

func NewSyncWorker(store *ledger.Store, sheet sheets.RowAppender, count sheets.RowCounter) *SyncWorker {
	return &SyncWorker{
		store: store,
		sheet: sheet,
		count: count,
	}
}

// HandleSyncMessage processes a single record sync message from the queue.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"date", msg.Date,
		"category", msg.Category)

	ref, err := w.sheet.AppendRecord(ctx, msg.Record())
	if err != nil {
		return fmt.Errorf("append record to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Record synced to sheet", "ref", ref)
	return nil
}

// StartupSyncCheck appends every ledger record the sheet does not hold yet.
// The ledger is append-only and the worker is the sheet's only writer, so the
// sheet is always a prefix of the ledger and a row count is enough to find
// the missing suffix.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	records, err := w.store.ReadAll()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	have, err := w.count.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("count sheet rows: %w", err)
	}

	if have >= len(records) {
		slog.InfoContext(ctx, "Sheet is up to date",
			"ledger_records", len(records),
			"sheet_rows", have)
		return nil
	}

	missing := records[have:]
	slog.InfoContext(ctx, "Backfilling sheet",
		"ledger_records", len(records),
		"sheet_rows", have,
		"missing", len(missing))

	for _, rec := range missing {
		if _, err := w.sheet.AppendRecord(ctx, rec); err != nil {
			return fmt.Errorf("backfill record (date %s): %w", rec.Date, err)
		}
	}

	slog.InfoContext(ctx, "Backfill completed", "synced", len(missing))
	return nil
}
