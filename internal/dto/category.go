package dto

import (
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// CreateCategoryRequest creates a new category.
type CreateCategoryRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description,omitempty"`
	TransactionType string  `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
}

// UpdateCategoryRequest updates an existing category. Nil fields are left
// unchanged. Changing the transaction type does not revalidate entries that
// already reference the category.
type UpdateCategoryRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	TransactionType *string `json:"transactionType,omitempty" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID      string    `json:"categoryID"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	TransactionType string    `json:"transactionType"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// ListCategoriesResponse is one page of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	NextToken  *string            `json:"nextToken,omitempty"`
}

// ToCategoryResponse converts a domain Category to its API representation.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:      c.CategoryID,
		Name:            c.Name,
		Description:     c.Description,
		TransactionType: string(c.TransactionType),
		CreatedAt:       c.CreatedAt,
		LastUpdatedAt:   c.LastUpdatedAt,
	}
}

// ToListCategoriesResponse converts a page of categories to its API representation.
func ToListCategoriesResponse(categories []domain.Category, nextToken *string) ListCategoriesResponse {
	resp := ListCategoriesResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
		NextToken:  nextToken,
	}
	for i := range categories {
		resp.Categories = append(resp.Categories, ToCategoryResponse(&categories[i]))
	}
	return resp
}
