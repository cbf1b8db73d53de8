package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/middleware"
	"golang.org/x/sync/errgroup"
)

// SummaryService handles reporting over one filter scope. Detail rows and
// totals are fetched by concurrent queries; each is consistent as of its own
// read but the pair is not a shared snapshot.
type SummaryService struct {
	summaryRepo  portsrepo.SummaryRepository
	entryRepo    portsrepo.EntryReader
	categoryRepo portsrepo.CategoryReader
	partyRepo    portsrepo.PartyReader
	bankRepo     portsrepo.BankReader
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(sr portsrepo.SummaryRepository, er portsrepo.EntryReader, cr portsrepo.CategoryReader, pr portsrepo.PartyReader, br portsrepo.BankReader) portssvc.SummarySvcFacade {
	return &SummaryService{
		summaryRepo:  sr,
		entryRepo:    er,
		categoryRepo: cr,
		partyRepo:    pr,
		bankRepo:     br,
	}
}

// Ensure SummaryService implements the portssvc.SummarySvcFacade interface
var _ portssvc.SummarySvcFacade = (*SummaryService)(nil)

// GetFilteredSummaryPaginated fetches one page of hydrated entries and the
// aggregation totals for the same filter scope concurrently. The first error
// cancels the sibling query.
func (s *SummaryService) GetFilteredSummaryPaginated(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) (*domain.FilteredSummaryResult, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var entries []domain.HydratedEntry
	var pageToken *string
	var totals domain.SummaryTotals

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, pageToken, err = s.entryRepo.ListFilteredEntries(gCtx, filter, limit, nextToken)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.summaryRepo.GetSummaryAggregation(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to build filtered summary", slog.String("error", err.Error()))
		return nil, nil, err
	}

	result := &domain.FilteredSummaryResult{
		Entries:       entries,
		TotalIncome:   totals.TotalIncome,
		TotalExpenses: totals.TotalExpenses,
		Balance:       totals.Balance(),
	}
	return result, pageToken, nil
}

// GetFilteredAccountEntries retrieves every entry of the filter scope without
// pagination.
func (s *SummaryService) GetFilteredAccountEntries(ctx context.Context, filter domain.EntryFilter, ascending bool) ([]domain.HydratedEntry, error) {
	entries, err := s.summaryRepo.ListAllFilteredEntries(ctx, filter, ascending)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list filtered entries", slog.String("error", err.Error()))
		return nil, err
	}
	return entries, nil
}

// GetSummaryAggregation computes the totals of the filter scope.
func (s *SummaryService) GetSummaryAggregation(ctx context.Context, filter domain.EntryFilter) (domain.SummaryTotals, error) {
	totals, err := s.summaryRepo.GetSummaryAggregation(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to aggregate entries", slog.String("error", err.Error()))
		return domain.SummaryTotals{}, err
	}
	return totals, nil
}

// GetAllDataForExport collects the hydrated entries of the date window plus
// the full category, party and bank reference lists. The four queries run
// concurrently.
func (s *SummaryService) GetAllDataForExport(ctx context.Context, startDate, endDate *time.Time, categoryIDs, partyIDs, bankIDs []string) (*domain.ExportData, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := domain.EntryFilter{
		CategoryIDs: categoryIDs,
		PartyIDs:    partyIDs,
		BankIDs:     bankIDs,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	export := &domain.ExportData{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		export.Entries, err = s.summaryRepo.ListAllFilteredEntries(gCtx, filter, true)
		return err
	})
	g.Go(func() error {
		var err error
		export.Categories, err = s.categoryRepo.ListCategories(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		export.Parties, err = s.partyRepo.ListParties(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		export.Banks, err = s.bankRepo.ListBanks(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to collect export data", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Export data collected", slog.Int("entries", len(export.Entries)))
	return export, nil
}

// GetDistinctYearMonths lists the calendar months that have entries.
func (s *SummaryService) GetDistinctYearMonths(ctx context.Context) ([]domain.YearMonth, error) {
	return s.summaryRepo.GetDistinctYearMonths(ctx)
}

// GetDistinctYears lists the years that have entries.
func (s *SummaryService) GetDistinctYears(ctx context.Context) ([]int, error) {
	return s.summaryRepo.GetDistinctYears(ctx)
}
