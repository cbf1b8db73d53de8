package repositories

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// BankReader defines read operations for bank data.
type BankReader interface {
	// FindBankByID retrieves a specific bank by its ID.
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)

	// SearchBanks retrieves one page of banks whose name contains the query
	// case-insensitively, ordered by (created_at DESC, bank_id DESC).
	SearchBanks(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Bank, *string, error)

	// ListBanks retrieves all banks, newest first.
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}

// BankWriter defines write operations for bank data.
type BankWriter interface {
	// SaveBank persists a new bank.
	SaveBank(ctx context.Context, bank domain.Bank) error

	// UpdateBank updates an existing bank.
	UpdateBank(ctx context.Context, bank domain.Bank) error

	// DeleteBank removes a bank. Entries referencing it keep their row but
	// have the reference nulled out.
	DeleteBank(ctx context.Context, bankID string) error
}

// BankRepositoryFacade combines all bank-related repository interfaces.
type BankRepositoryFacade interface {
	BankReader
	BankWriter
}
