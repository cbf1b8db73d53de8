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

type PgxPartyRepository struct {
	BaseRepository
	bus *invalidation.Bus
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool *pgxpool.Pool, bus *invalidation.Bus) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bus:            bus,
	}
}

// Ensure implementation matches interface
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// SaveParty inserts a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (party_id, name, contact_number, description, address, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.ContactNumber,
		m.Description,
		m.Address,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "party "+m.PartyID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save party "+m.PartyID, err)
	}

	r.bus.Publish(invalidation.TableParties)
	return nil
}

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `
		SELECT party_id, name, contact_number, description, address, created_at, last_updated_at
		FROM parties
		WHERE party_id = $1;
	`
	var m models.Party
	err := r.Pool.QueryRow(ctx, query, partyID).Scan(
		&m.PartyID,
		&m.Name,
		&m.ContactNumber,
		&m.Description,
		&m.Address,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find party by ID "+partyID, err)
	}

	party := mapping.ToDomainParty(m)
	return &party, nil
}

// UpdateParty updates an existing party.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		UPDATE parties
		SET name = $2,
		    contact_number = $3,
		    description = $4,
		    address = $5,
		    last_updated_at = $6
		WHERE party_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.ContactNumber,
		m.Description,
		m.Address,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update party "+m.PartyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("party " + m.PartyID + " not found for update")
	}

	r.bus.Publish(invalidation.TableParties)
	return nil
}

// DeleteParty removes a party. Entries referencing it keep their row; the FK
// is ON DELETE SET NULL, so their party reference is nulled out, which is
// itself a write to the entries table.
func (r *PgxPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM parties WHERE party_id = $1;`, partyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete party "+partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("party " + partyID + " not found for delete")
	}

	r.bus.Publish(invalidation.TableParties)
	r.bus.Publish(invalidation.TableEntries)
	return nil
}

// SearchParties retrieves a page of parties whose name contains the query,
// case-insensitively, ordered by (created_at DESC, party_id DESC).
func (r *PgxPartyRepository) SearchParties(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Party, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	builder := sq.Select("party_id", "name", "contact_number", "description", "address", "created_at", "last_updated_at").
		From("parties").
		PlaceholderFormat(sq.Dollar)

	if query != "" {
		builder = builder.Where(sq.ILike{"name": "%" + escapeLikePattern(query) + "%"})
	}

	if nextToken != nil && *nextToken != "" {
		lastCreated, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + decodeErr.Error())
		}
		builder = builder.Where(sq.Expr("(created_at, party_id) < (?, ?)", lastCreated, lastID))
	}

	builder = builder.OrderBy("created_at DESC", "party_id DESC").Limit(uint64(fetchLimit))

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to build party search query", err)
	}

	rows, err := r.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to search parties", err)
	}
	defer rows.Close()

	parties, err := scanPartyRows(rows, fetchLimit)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(parties) > limit {
		last := parties[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PartyID)
		nextTokenVal = &token
		parties = parties[:limit]
	}

	return parties, nextTokenVal, nil
}

// ListParties retrieves all parties, newest first.
func (r *PgxPartyRepository) ListParties(ctx context.Context) ([]domain.Party, error) {
	query := `
		SELECT party_id, name, contact_number, description, address, created_at, last_updated_at
		FROM parties
		ORDER BY created_at DESC, party_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list parties", err)
	}
	defer rows.Close()

	return scanPartyRows(rows, 0)
}

func scanPartyRows(rows pgx.Rows, capacityHint int) ([]domain.Party, error) {
	parties := make([]domain.Party, 0, capacityHint)
	for rows.Next() {
		var m models.Party
		err := rows.Scan(
			&m.PartyID,
			&m.Name,
			&m.ContactNumber,
			&m.Description,
			&m.Address,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan party row", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating party rows", err)
	}
	return parties, nil
}
