package dto

import (
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// CreateBankRequest creates a new bank.
type CreateBankRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateBankRequest updates an existing bank. Nil fields are left unchanged.
type UpdateBankRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// BankResponse is the API representation of a bank.
type BankResponse struct {
	BankID        string    `json:"bankID"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListBanksResponse is one page of banks.
type ListBanksResponse struct {
	Banks     []BankResponse `json:"banks"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToBankResponse converts a domain Bank to its API representation.
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:        b.BankID,
		Name:          b.Name,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBanksResponse converts a page of banks to its API representation.
func ToListBanksResponse(banks []domain.Bank, nextToken *string) ListBanksResponse {
	resp := ListBanksResponse{
		Banks:     make([]BankResponse, 0, len(banks)),
		NextToken: nextToken,
	}
	for i := range banks {
		resp.Banks = append(resp.Banks, ToBankResponse(&banks[i]))
	}
	return resp
}
