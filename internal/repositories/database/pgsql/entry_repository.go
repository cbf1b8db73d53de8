package pgsql

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	"github.com/khatapp/khata_backend/internal/models"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
	"github.com/khatapp/khata_backend/internal/utils/mapping"
	"github.com/khatapp/khata_backend/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	bus            *invalidation.Bus
}

// newPgxEntryRepository creates a new repository for account entry data.
func newPgxEntryRepository(pool *pgxpool.Pool, attachmentRepo portsrepo.AttachmentRepositoryFacade, bus *invalidation.Bus) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		attachmentRepo: attachmentRepo,
		bus:            bus,
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// UpsertEntry writes the entry row and its search index mirror within one
// transaction, then signals live readers of the entries table.
func (r *PgxEntryRepository) UpsertEntry(ctx context.Context, entry domain.AccountEntry) error {
	modelEntry := mapping.ToModelEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	entryQuery := `
		INSERT INTO account_entries (
			entry_id, title, amount, transaction_type, entry_type,
			category_id, party_id, bank_id, transaction_date, description,
			is_pinned, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (entry_id) DO UPDATE SET
			title = EXCLUDED.title,
			amount = EXCLUDED.amount,
			transaction_type = EXCLUDED.transaction_type,
			entry_type = EXCLUDED.entry_type,
			category_id = EXCLUDED.category_id,
			party_id = EXCLUDED.party_id,
			bank_id = EXCLUDED.bank_id,
			transaction_date = EXCLUDED.transaction_date,
			description = EXCLUDED.description,
			is_pinned = EXCLUDED.is_pinned,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.Title,
		modelEntry.Amount,
		modelEntry.TransactionType,
		modelEntry.EntryType,
		modelEntry.CategoryID,
		modelEntry.PartyID,
		modelEntry.BankID,
		modelEntry.TransactionDate,
		modelEntry.Description,
		modelEntry.IsPinned,
		modelEntry.CreatedAt,
		modelEntry.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewAppError(409, "entry "+modelEntry.EntryID+" references a missing parent row", apperrors.ErrForeignKey)
		}
		return apperrors.NewAppError(500, "failed to upsert entry "+modelEntry.EntryID, err)
	}

	// Keep the full-text index row in step with the title.
	indexQuery := `
		INSERT INTO entry_search_index (entry_id, title, title_tokens)
		VALUES ($1, $2, to_tsvector('simple', $2))
		ON CONFLICT (entry_id) DO UPDATE SET
			title = EXCLUDED.title,
			title_tokens = EXCLUDED.title_tokens;
	`
	if _, err := tx.Exec(ctx, indexQuery, modelEntry.EntryID, modelEntry.Title); err != nil {
		return apperrors.NewAppError(500, "failed to index entry "+modelEntry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.bus.Publish(invalidation.TableEntries)
	return nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.AccountEntry, error) {
	query := `
		SELECT entry_id, title, amount, transaction_type, entry_type,
		       category_id, party_id, bank_id, transaction_date, description,
		       is_pinned, created_at, last_updated_at
		FROM account_entries
		WHERE entry_id = $1;
	`
	var m models.AccountEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.Title,
		&m.Amount,
		&m.TransactionType,
		&m.EntryType,
		&m.CategoryID,
		&m.PartyID,
		&m.BankID,
		&m.TransactionDate,
		&m.Description,
		&m.IsPinned,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// DeleteEntry removes the entry row. Attachments and the search index row go
// with it via ON DELETE CASCADE.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM account_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for delete")
	}

	r.bus.Publish(invalidation.TableEntries)
	r.bus.Publish(invalidation.TableAttachments)
	return nil
}

// SetEntryPinned flips the pinned flag on an entry.
func (r *PgxEntryRepository) SetEntryPinned(ctx context.Context, entryID string, pinned bool, updatedAt time.Time) error {
	query := `
		UPDATE account_entries
		SET is_pinned = $2,
		    last_updated_at = $3
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, pinned, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update pin flag for entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for update")
	}

	r.bus.Publish(invalidation.TableEntries)
	return nil
}

// ListFilteredEntries retrieves a page of hydrated entries matching the filter
// using token-based pagination on (transaction_date DESC, entry_id DESC).
// It returns the page, a token for the next page, and an error.
func (r *PgxEntryRepository) ListFilteredEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.HydratedEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	builder := applyEntryFilter(filteredEntriesBase(), filter)

	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + decodeErr.Error())
		}
		// Tuple comparison keeps the cursor stable under concurrent inserts
		// above the viewport.
		builder = builder.Where(sq.Expr("(e.transaction_date, e.entry_id) < (?, ?)", lastDate, lastID))
	}

	builder = builder.
		OrderBy("e.transaction_date DESC", "e.entry_id DESC").
		Limit(uint64(fetchLimit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to build filtered entries query", err)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query filtered entries", err)
	}
	defer rows.Close()

	entries := make([]domain.HydratedEntry, 0, fetchLimit)
	for rows.Next() {
		h, scanErr := scanHydratedEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan filtered entry row", scanErr)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating filtered entry rows", err)
	}

	// Determine the next token; the token points at the last item included in
	// this page, so the next query starts strictly after it.
	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.Entry.TransactionDate, last.Entry.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	if err := hydrateEntryAttachments(ctx, r.attachmentRepo, entries); err != nil {
		return nil, nil, err
	}

	return entries, nextTokenVal, nil
}

// SearchEntries looks the query up in the full-text index and re-joins
// category metadata onto each hit. Word matches come from the tsvector
// column; a trailing ILIKE keeps plain substring matches working too.
func (r *PgxEntryRepository) SearchEntries(ctx context.Context, query string, limit int) ([]domain.HydratedEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	searchQuery := `
		SELECT e.entry_id, e.title, e.amount, e.transaction_type, e.entry_type,
		       e.category_id, e.party_id, e.bank_id, e.transaction_date,
		       e.description, e.is_pinned, e.created_at, e.last_updated_at,
		       c.name, c.description, c.transaction_type, c.created_at, c.last_updated_at
		FROM entry_search_index s
		JOIN account_entries e ON e.entry_id = s.entry_id
		JOIN categories c ON c.category_id = e.category_id
		WHERE s.title_tokens @@ plainto_tsquery('simple', $1)
		   OR s.title ILIKE $2
		ORDER BY e.transaction_date DESC, e.entry_id DESC
		LIMIT $3;
	`
	pattern := "%" + escapeLikePattern(query) + "%"

	rows, err := r.Pool.Query(ctx, searchQuery, query, pattern, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search entries", err)
	}
	defer rows.Close()

	hits := []domain.HydratedEntry{}
	for rows.Next() {
		var m models.AccountEntry
		var catName, catType string
		var catDesc *string
		var catCreated, catUpdated time.Time

		scanErr := rows.Scan(
			&m.EntryID, &m.Title, &m.Amount, &m.TransactionType, &m.EntryType,
			&m.CategoryID, &m.PartyID, &m.BankID, &m.TransactionDate,
			&m.Description, &m.IsPinned, &m.CreatedAt, &m.LastUpdatedAt,
			&catName, &catDesc, &catType, &catCreated, &catUpdated,
		)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan search hit row", scanErr)
		}

		hits = append(hits, domain.HydratedEntry{
			Entry: mapping.ToDomainEntry(m),
			Category: domain.Category{
				CategoryID:      m.CategoryID,
				Name:            catName,
				Description:     catDesc,
				TransactionType: domain.TransactionType(catType),
				AuditFields: domain.AuditFields{
					CreatedAt:     catCreated,
					LastUpdatedAt: catUpdated,
				},
			},
			Attachments: []domain.Attachment{},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating search hit rows", err)
	}

	return hits, nil
}

