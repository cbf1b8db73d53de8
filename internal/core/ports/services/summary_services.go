package services

import (
	"context"
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// SummarySvcFacade defines the reporting operations over one filter scope.
// Detail rows and totals are computed by two concurrent queries: each is
// individually consistent as of its own read, but they are not guaranteed to
// share a snapshot.
type SummarySvcFacade interface {
	// GetFilteredSummaryPaginated fetches one page of hydrated entries and the
	// aggregation totals for the same filter scope concurrently, joining them
	// into a FilteredSummaryResult.
	GetFilteredSummaryPaginated(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) (*domain.FilteredSummaryResult, *string, error)

	// GetFilteredAccountEntries retrieves every entry of the filter scope
	// without pagination, ascending when a summary consumer requests it.
	GetFilteredAccountEntries(ctx context.Context, filter domain.EntryFilter, ascending bool) ([]domain.HydratedEntry, error)

	// GetSummaryAggregation computes the totals of the filter scope.
	GetSummaryAggregation(ctx context.Context, filter domain.EntryFilter) (domain.SummaryTotals, error)

	// GetAllDataForExport collects hydrated entries of the date window plus the
	// full category/party/bank reference lists.
	GetAllDataForExport(ctx context.Context, startDate, endDate *time.Time, categoryIDs, partyIDs, bankIDs []string) (*domain.ExportData, error)

	// GetDistinctYearMonths lists the calendar months that have entries.
	GetDistinctYearMonths(ctx context.Context) ([]domain.YearMonth, error)

	// GetDistinctYears lists the years that have entries.
	GetDistinctYears(ctx context.Context) ([]int, error)
}
