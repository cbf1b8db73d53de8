package repositories

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// SummaryRepository defines aggregation and period-discovery operations over
// entries. Aggregation uses the same filter predicate as the detail queries so
// both always describe one filter scope.
type SummaryRepository interface {
	// GetSummaryAggregation computes income and expense totals for the filter
	// scope in a single aggregation pass.
	GetSummaryAggregation(ctx context.Context, filter domain.EntryFilter) (domain.SummaryTotals, error)

	// ListAllFilteredEntries retrieves every hydrated entry matching the
	// filter, without pagination. Ordering is (transaction_date DESC,
	// entry_id DESC), or ascending when requested by a summary consumer.
	ListAllFilteredEntries(ctx context.Context, filter domain.EntryFilter, ascending bool) ([]domain.HydratedEntry, error)

	// GetDistinctYearMonths returns each calendar month with at least one
	// entry, newest first. Best effort: malformed period labels are dropped,
	// not surfaced.
	GetDistinctYearMonths(ctx context.Context) ([]domain.YearMonth, error)

	// GetDistinctYears returns each year with at least one entry, newest
	// first. Best effort, like GetDistinctYearMonths.
	GetDistinctYears(ctx context.Context) ([]int, error)
}
