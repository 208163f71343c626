package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendlog/internal/amqp"
	"spendlog/internal/cache"
	"spendlog/internal/core"
	"spendlog/internal/export"
	"spendlog/internal/ledger"
	"spendlog/internal/query"
)

const (
	cacheSize = 64
	cacheTTL  = 5 * time.Minute
)

// LedgerService orchestrates the ledger store, the optional sync queue, and
// a small cache over aggregate queries. The store stays the single owner of
// durable data; everything served here is derived from ReadAll snapshots.
type LedgerService struct {
	store      *ledger.Store
	amqpClient *amqp.Client
	totals     *cache.LRUCache[core.Money]
	summaries  *cache.LRUCache[[]core.CategoryTotal]
}

func NewLedgerService(store *ledger.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
		totals:     cache.NewLRUCache[core.Money](cacheSize, cacheTTL),
		summaries:  cache.NewLRUCache[[]core.CategoryTotal](cacheSize, cacheTTL),
	}
}

// AddRecord validates and appends rec, then publishes a sync message.
// A publish failure is logged but never fails the append: the record is
// durable locally and the worker backfills missed rows on startup.
func (s *LedgerService) AddRecord(ctx context.Context, rec core.ExpenseRecord) error {
	if err := s.store.Append(rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	// Any cached aggregate may now be stale.
	s.totals.Purge()
	s.summaries.Purge()

	if s.amqpClient == nil {
		slog.DebugContext(ctx, "Sync queue not configured, skipping publish")
		return nil
	}
	if err := s.amqpClient.PublishRecordSync(ctx, amqp.NewRecordSyncMessage(rec)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"date", rec.Date, "category", rec.Category, "error", err)
	}
	return nil
}

// AllRecords returns the full ledger in insertion order.
func (s *LedgerService) AllRecords() ([]core.ExpenseRecord, error) {
	return s.store.ReadAll()
}

// Total returns the summed amount over [start, end]; empty bounds are open.
func (s *LedgerService) Total(start, end string) (core.Money, error) {
	key := rangeKey("total", start, end)
	if total, ok := s.totals.Get(key); ok {
		return total, nil
	}
	records, err := s.store.ReadAll()
	if err != nil {
		return core.Money{}, err
	}
	total := query.Total(query.FilterByDateRange(records, start, end))
	s.totals.Set(key, total)
	return total, nil
}

// CategorySummary returns per-category totals over [start, end], ranked by
// descending amount with stable first-appearance tie-breaks.
func (s *LedgerService) CategorySummary(start, end string) ([]core.CategoryTotal, error) {
	key := rangeKey("summary", start, end)
	if summary, ok := s.summaries.Get(key); ok {
		return summary, nil
	}
	records, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	summary := query.SummaryByCategory(query.FilterByDateRange(records, start, end))
	s.summaries.Set(key, summary)
	return summary, nil
}

// TotalByDay returns per-day totals over [start, end] for chart consumers.
func (s *LedgerService) TotalByDay(start, end string) ([]core.DayTotal, error) {
	records, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	return query.TotalByDay(query.FilterByDateRange(records, start, end)), nil
}

// ExportCSV writes a copy of the full ledger to path in the record format.
func (s *LedgerService) ExportCSV(path string) error {
	records, err := s.store.ReadAll()
	if err != nil {
		return err
	}
	return export.WriteCSV(path, records)
}

// Close closes the AMQP connection when one is configured.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}

func rangeKey(kind, start, end string) string {
	return kind + "|" + start + "|" + end
}
