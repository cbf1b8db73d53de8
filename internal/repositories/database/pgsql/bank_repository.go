package pgsql

import (
	"context"
	"errors"

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

type PgxBankRepository struct {
	BaseRepository
	bus *invalidation.Bus
}

// newPgxBankRepository creates a new repository for bank data.
func newPgxBankRepository(pool *pgxpool.Pool, bus *invalidation.Bus) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bus:            bus,
	}
}

// Ensure implementation matches interface
var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// SaveBank inserts a new bank.
func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)

	query := `
		INSERT INTO banks (bank_id, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankID,
		m.Name,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "bank "+m.BankID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save bank "+m.BankID, err)
	}

	r.bus.Publish(invalidation.TableBanks)
	return nil
}

// FindBankByID retrieves a bank by its ID.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `
		SELECT bank_id, name, description, created_at, last_updated_at
		FROM banks
		WHERE bank_id = $1;
	`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, bankID).Scan(
		&m.BankID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank by ID "+bankID, err)
	}

	bank := mapping.ToDomainBank(m)
	return &bank, nil
}

// UpdateBank updates an existing bank.
func (r *PgxBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)

	query := `
		UPDATE banks
		SET name = $2,
		    description = $3,
		    last_updated_at = $4
		WHERE bank_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BankID,
		m.Name,
		m.Description,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank "+m.BankID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank " + m.BankID + " not found for update")
	}

	r.bus.Publish(invalidation.TableBanks)
	return nil
}

// DeleteBank removes a bank. Entries referencing it keep their row; the FK is
// ON DELETE SET NULL, so their bank reference is nulled out.
func (r *PgxBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM banks WHERE bank_id = $1;`, bankID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank "+bankID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank " + bankID + " not found for delete")
	}

	r.bus.Publish(invalidation.TableBanks)
	r.bus.Publish(invalidation.TableEntries)
	return nil
}

// SearchBanks retrieves a page of banks whose name contains the query,
// case-insensitively, ordered by (created_at DESC, bank_id DESC).
func (r *PgxBankRepository) SearchBanks(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Bank, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	builder := sq.Select("bank_id", "name", "description", "created_at", "last_updated_at").
		From("banks").
		PlaceholderFormat(sq.Dollar)

	if query != "" {
		builder = builder.Where(sq.ILike{"name": "%" + escapeLikePattern(query) + "%"})
	}

	if nextToken != nil && *nextToken != "" {
		lastCreated, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + decodeErr.Error())
		}
		builder = builder.Where(sq.Expr("(created_at, bank_id) < (?, ?)", lastCreated, lastID))
	}

	builder = builder.OrderBy("created_at DESC", "bank_id DESC").Limit(uint64(fetchLimit))

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to build bank search query", err)
	}

	rows, err := r.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to search banks", err)
	}
	defer rows.Close()

	banks, err := scanBankRows(rows, fetchLimit)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(banks) > limit {
		last := banks[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.BankID)
		nextTokenVal = &token
		banks = banks[:limit]
	}

	return banks, nextTokenVal, nil
}

// ListBanks retrieves all banks, newest first.
func (r *PgxBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	query := `
		SELECT bank_id, name, description, created_at, last_updated_at
		FROM banks
		ORDER BY created_at DESC, bank_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list banks", err)
	}
	defer rows.Close()

	return scanBankRows(rows, 0)
}

func scanBankRows(rows pgx.Rows, capacityHint int) ([]domain.Bank, error) {
	banks := make([]domain.Bank, 0, capacityHint)
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.BankID,
			&m.Name,
			&m.Description,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank row", err)
		}
		banks = append(banks, mapping.ToDomainBank(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank rows", err)
	}
	return banks, nil
}
