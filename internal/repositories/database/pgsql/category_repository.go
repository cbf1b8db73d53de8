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

type PgxCategoryRepository struct {
	BaseRepository
	bus *invalidation.Bus
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool, bus *invalidation.Bus) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bus:            bus,
	}
}

// Ensure implementation matches interface
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (category_id, name, description, transaction_type, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Description,
		m.TransactionType,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "category "+m.CategoryID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save category "+m.CategoryID, err)
	}

	r.bus.Publish(invalidation.TableCategories)
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, name, description, transaction_type, created_at, last_updated_at
		FROM categories
		WHERE category_id = $1;
	`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&m.CategoryID,
		&m.Name,
		&m.Description,
		&m.TransactionType,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// UpdateCategory updates an existing category. A transaction type change is
// applied as-is; entries already referencing the category are not revalidated.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2,
		    description = $3,
		    transaction_type = $4,
		    last_updated_at = $5
		WHERE category_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Description,
		m.TransactionType,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + m.CategoryID + " not found for update")
	}

	r.bus.Publish(invalidation.TableCategories)
	return nil
}

// DeleteCategory removes a category. The required FK from entries is
// restrictive, so deleting a category still referenced by entries fails with
// a foreign key violation.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewAppError(409, "category "+categoryID+" is still referenced by entries", apperrors.ErrForeignKey)
		}
		return apperrors.NewAppError(500, "failed to delete category "+categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + categoryID + " not found for delete")
	}

	r.bus.Publish(invalidation.TableCategories)
	return nil
}

// SearchCategories retrieves a page of categories whose name contains the
// query, case-insensitively, ordered by (created_at DESC, category_id DESC).
func (r *PgxCategoryRepository) SearchCategories(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Category, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	builder := sq.Select("category_id", "name", "description", "transaction_type", "created_at", "last_updated_at").
		From("categories").
		PlaceholderFormat(sq.Dollar)

	if query != "" {
		builder = builder.Where(sq.ILike{"name": "%" + escapeLikePattern(query) + "%"})
	}

	if nextToken != nil && *nextToken != "" {
		lastCreated, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + decodeErr.Error())
		}
		builder = builder.Where(sq.Expr("(created_at, category_id) < (?, ?)", lastCreated, lastID))
	}

	builder = builder.OrderBy("created_at DESC", "category_id DESC").Limit(uint64(fetchLimit))

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to build category search query", err)
	}

	rows, err := r.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to search categories", err)
	}
	defer rows.Close()

	categories, err := scanCategoryRows(rows, fetchLimit)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(categories) > limit {
		last := categories[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CategoryID)
		nextTokenVal = &token
		categories = categories[:limit]
	}

	return categories, nextTokenVal, nil
}

// ListCategories retrieves all categories, newest first.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, description, transaction_type, created_at, last_updated_at
		FROM categories
		ORDER BY created_at DESC, category_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories", err)
	}
	defer rows.Close()

	return scanCategoryRows(rows, 0)
}

func scanCategoryRows(rows pgx.Rows, capacityHint int) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, capacityHint)
	for rows.Next() {
		var m models.Category
		err := rows.Scan(
			&m.CategoryID,
			&m.Name,
			&m.Description,
			&m.TransactionType,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return categories, nil
}
