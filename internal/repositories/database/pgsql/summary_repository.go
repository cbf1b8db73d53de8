package pgsql

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
)

type PgxSummaryRepository struct {
	BaseRepository
	attachmentRepo portsrepo.AttachmentRepositoryFacade
}

// newPgxSummaryRepository creates a new repository for entry aggregation.
func newPgxSummaryRepository(pool *pgxpool.Pool, attachmentRepo portsrepo.AttachmentRepositoryFacade) portsrepo.SummaryRepository {
	return &PgxSummaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		attachmentRepo: attachmentRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.SummaryRepository = (*PgxSummaryRepository)(nil)

// GetSummaryAggregation computes income and expense totals for the filter
// scope in a single pass over the matching rows. Both sums are COALESCEd so an
// empty scope aggregates to zero, not NULL.
func (r *PgxSummaryRepository) GetSummaryAggregation(ctx context.Context, filter domain.EntryFilter) (domain.SummaryTotals, error) {
	builder := sq.Select(
		"COALESCE(SUM(CASE WHEN e.transaction_type = 'INCOME' THEN e.amount ELSE 0 END), 0) AS total_income",
		"COALESCE(SUM(CASE WHEN e.transaction_type = 'EXPENSE' THEN e.amount ELSE 0 END), 0) AS total_expenses",
	).
		From("account_entries e").
		PlaceholderFormat(sq.Dollar)
	builder = applyEntryFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return domain.SummaryTotals{}, apperrors.NewAppError(500, "failed to build summary aggregation query", err)
	}

	var totals domain.SummaryTotals
	err = r.Pool.QueryRow(ctx, query, args...).Scan(&totals.TotalIncome, &totals.TotalExpenses)
	if err != nil {
		return domain.SummaryTotals{}, apperrors.NewAppError(500, "failed to execute summary aggregation", err)
	}

	return totals, nil
}

// ListAllFilteredEntries retrieves every hydrated entry in the filter scope,
// without pagination. Export and reporting consumers read the whole scope at
// once, so no cursor is involved.
func (r *PgxSummaryRepository) ListAllFilteredEntries(ctx context.Context, filter domain.EntryFilter, ascending bool) ([]domain.HydratedEntry, error) {
	builder := applyEntryFilter(filteredEntriesBase(), filter)
	if ascending {
		builder = builder.OrderBy("e.transaction_date ASC", "e.entry_id ASC")
	} else {
		builder = builder.OrderBy("e.transaction_date DESC", "e.entry_id DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build filtered entries query", err)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query filtered entries", err)
	}
	defer rows.Close()

	entries := []domain.HydratedEntry{}
	for rows.Next() {
		hydrated, scanErr := scanHydratedEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan filtered entry row", scanErr)
		}
		entries = append(entries, hydrated)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating filtered entry rows", err)
	}

	if err := hydrateEntryAttachments(ctx, r.attachmentRepo, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// GetDistinctYearMonths returns each calendar month with at least one entry,
// newest first. Rows whose period label fails to parse are logged and dropped
// rather than failing the whole listing.
func (r *PgxSummaryRepository) GetDistinctYearMonths(ctx context.Context) ([]domain.YearMonth, error) {
	query := `
		SELECT DISTINCT to_char(transaction_date, 'YYYY-MM') AS period
		FROM account_entries
		ORDER BY period DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distinct year-months", err)
	}
	defer rows.Close()

	periods := []domain.YearMonth{}
	for rows.Next() {
		var label string
		if scanErr := rows.Scan(&label); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan year-month row", scanErr)
		}
		parsed, parseErr := time.Parse("2006-01", label)
		if parseErr != nil {
			slog.WarnContext(ctx, "Dropping unparseable period label", "label", label, "error", parseErr)
			continue
		}
		periods = append(periods, domain.YearMonth{Year: parsed.Year(), Month: parsed.Month()})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating year-month rows", err)
	}

	return periods, nil
}

// GetDistinctYears returns each year with at least one entry, newest first.
func (r *PgxSummaryRepository) GetDistinctYears(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT to_char(transaction_date, 'YYYY') AS period
		FROM account_entries
		ORDER BY period DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distinct years", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var label string
		if scanErr := rows.Scan(&label); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan year row", scanErr)
		}
		year, parseErr := strconv.Atoi(label)
		if parseErr != nil {
			slog.WarnContext(ctx, "Dropping unparseable year label", "label", label, "error", parseErr)
			continue
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating year rows", err)
	}

	return years, nil
}
