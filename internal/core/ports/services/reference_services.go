package services

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/khatapp/khata_backend/internal/dto"
)

// CategorySvcFacade defines business operations over categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	SearchCategories(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Category, *string, error)
}

// PartySvcFacade defines business operations over parties.
type PartySvcFacade interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest) (*domain.Party, error)
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest) (*domain.Party, error)
	DeleteParty(ctx context.Context, partyID string) error
	SearchParties(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Party, *string, error)
}

// BankSvcFacade defines business operations over banks.
type BankSvcFacade interface {
	CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error)
	GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest) (*domain.Bank, error)
	DeleteBank(ctx context.Context, bankID string) error
	SearchBanks(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Bank, *string, error)
}
