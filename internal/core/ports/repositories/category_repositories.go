package repositories

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// SearchCategories retrieves one page of categories whose name contains the
	// query case-insensitively, ordered by (created_at DESC, category_id DESC).
	// An empty query matches every category.
	SearchCategories(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Category, *string, error)

	// ListCategories retrieves all categories, newest first.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category. Changing the transaction
	// type does not revalidate entries already referencing the category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. Deleting a category still referenced
	// by entries fails with a foreign key violation.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
