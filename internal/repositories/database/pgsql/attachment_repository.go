package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	"github.com/khatapp/khata_backend/internal/models"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
	"github.com/khatapp/khata_backend/internal/utils/mapping"
)

type PgxAttachmentRepository struct {
	BaseRepository
	bus *invalidation.Bus
}

// newPgxAttachmentRepository creates a new repository for attachment data.
func newPgxAttachmentRepository(pool *pgxpool.Pool, bus *invalidation.Bus) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bus:            bus,
	}
}

// Ensure implementation matches interface
var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

// SaveAttachments persists a batch of attachments in one transaction.
func (r *PgxAttachmentRepository) SaveAttachments(ctx context.Context, attachments []domain.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	query := `
		INSERT INTO attachments (attachment_id, entry_id, file_uri, mime_type, size_bytes, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, a := range attachments {
		m := mapping.ToModelAttachment(a)
		batch.Queue(query,
			m.AttachmentID,
			m.EntryID,
			m.FileURI,
			m.MimeType,
			m.SizeBytes,
			m.Width,
			m.Height,
			m.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	err = br.Close() // Close surfaces the first failed command in the batch
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewAppError(409, "attachment references a missing entry", apperrors.ErrForeignKey)
		}
		return apperrors.NewAppError(500, "failed to execute attachment insert batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.bus.Publish(invalidation.TableAttachments)
	return nil
}

// FindAttachmentsByEntryID retrieves all attachments of one entry, oldest first.
func (r *PgxAttachmentRepository) FindAttachmentsByEntryID(ctx context.Context, entryID string) ([]domain.Attachment, error) {
	query := `
		SELECT attachment_id, entry_id, file_uri, mime_type, size_bytes, width, height, created_at
		FROM attachments
		WHERE entry_id = $1
		ORDER BY created_at, attachment_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for entry "+entryID, err)
	}
	defer rows.Close()

	attachments := []models.Attachment{}
	for rows.Next() {
		m, scanErr := scanAttachment(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row for entry "+entryID, scanErr)
		}
		attachments = append(attachments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows for entry "+entryID, err)
	}

	return mapping.ToDomainAttachmentSlice(attachments), nil
}

// FindAttachmentsByEntryIDs retrieves attachments for a batch of entries in a
// single round-trip. Every requested entry ID is present in the returned map,
// entries without attachments mapping to an empty slice.
func (r *PgxAttachmentRepository) FindAttachmentsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Attachment, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.Attachment{}, nil
	}

	query := `
		SELECT attachment_id, entry_id, file_uri, mime_type, size_bytes, width, height, created_at
		FROM attachments
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, created_at, attachment_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for entry batch", err)
	}
	defer rows.Close()

	attachmentsMap := make(map[string][]domain.Attachment)
	for rows.Next() {
		m, scanErr := scanAttachment(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row during batch fetch", scanErr)
		}
		attachmentsMap[m.EntryID] = append(attachmentsMap[m.EntryID], mapping.ToDomainAttachment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows during batch fetch", err)
	}

	// Ensure even entries with no attachments have an entry (empty slice)
	for _, id := range entryIDs {
		if _, exists := attachmentsMap[id]; !exists {
			attachmentsMap[id] = []domain.Attachment{}
		}
	}

	return attachmentsMap, nil
}

// DeleteAttachments removes the attachments with the given IDs. IDs that do
// not exist are skipped silently; callers care that the files are gone.
func (r *PgxAttachmentRepository) DeleteAttachments(ctx context.Context, attachmentIDs []string) error {
	if len(attachmentIDs) == 0 {
		return nil
	}

	_, err := r.Pool.Exec(ctx, `DELETE FROM attachments WHERE attachment_id = ANY($1);`, attachmentIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete attachments", err)
	}

	r.bus.Publish(invalidation.TableAttachments)
	return nil
}

func scanAttachment(rows pgx.Rows) (models.Attachment, error) {
	var m models.Attachment
	err := rows.Scan(
		&m.AttachmentID,
		&m.EntryID,
		&m.FileURI,
		&m.MimeType,
		&m.SizeBytes,
		&m.Width,
		&m.Height,
		&m.CreatedAt,
	)
	return m, err
}
