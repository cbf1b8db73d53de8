package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/middleware"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(cr portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &CategoryService{categoryRepo: cr}
}

// Ensure CategoryService implements the portssvc.CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:      uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		TransactionType: domain.TransactionType(req.TransactionType),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category in repository", slog.String("error", err.Error()), slog.String("category_name", category.Name))
		return nil, err
	}

	logger.Info("Category created successfully", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves a single category.
func (s *CategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies the non-nil fields of the request. Changing the
// transaction type does not revalidate entries already referencing the
// category; new writes are validated against the new type.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
		}
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.TransactionType != nil {
		category.TransactionType = domain.TransactionType(*req.TransactionType)
	}
	category.LastUpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. Deleting one still referenced by entries
// fails with a foreign key violation; the caller must reassign those entries
// first.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrForeignKey) {
			logger.Warn("Refused to delete category still referenced by entries", slog.String("category_id", categoryID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

// SearchCategories retrieves one page of categories matching the query.
func (s *CategoryService) SearchCategories(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Category, *string, error) {
	categories, next, err := s.categoryRepo.SearchCategories(ctx, strings.TrimSpace(query), limit, nextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to search categories", slog.String("error", err.Error()), slog.String("query", query))
		return nil, nil, err
	}
	return categories, next, nil
}
