package dto

import (
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertEntryRequest creates an entry, or updates it when EntryID is set.
type UpsertEntryRequest struct {
	EntryID         *string         `json:"entryID,omitempty"`
	Title           string          `json:"title" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	EntryType       string          `json:"entryType" binding:"required,oneof=CASH BANK"`
	CategoryID      string          `json:"categoryID" binding:"required"`
	PartyID         *string         `json:"partyID,omitempty"`
	BankID          *string         `json:"bankID,omitempty"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Description     *string         `json:"description,omitempty"`
	IsPinned        bool            `json:"isPinned"`
}

// EntryResponse is the API representation of a single account entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	EntryType       string          `json:"entryType"`
	CategoryID      string          `json:"categoryID"`
	PartyID         *string         `json:"partyID,omitempty"`
	BankID          *string         `json:"bankID,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     *string         `json:"description,omitempty"`
	IsPinned        bool            `json:"isPinned"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// HydratedEntryResponse is an entry joined with its reference data and attachments.
type HydratedEntryResponse struct {
	EntryResponse
	Category    CategoryResponse     `json:"category"`
	Party       *PartyResponse       `json:"party,omitempty"`
	Bank        *BankResponse        `json:"bank,omitempty"`
	Attachments []AttachmentResponse `json:"attachments"`
}

// ListEntriesResponse is one page of hydrated entries with the cursor for the
// next page, nil when this is the last page.
type ListEntriesResponse struct {
	Entries   []HydratedEntryResponse `json:"entries"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain AccountEntry to its API representation.
func ToEntryResponse(e *domain.AccountEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		Title:           e.Title,
		Amount:          e.Amount,
		TransactionType: string(e.TransactionType),
		EntryType:       string(e.EntryType),
		CategoryID:      e.CategoryID,
		PartyID:         e.PartyID,
		BankID:          e.BankID,
		TransactionDate: e.TransactionDate,
		Description:     e.Description,
		IsPinned:        e.IsPinned,
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}

// ToHydratedEntryResponse converts a domain HydratedEntry to its API representation.
func ToHydratedEntryResponse(h domain.HydratedEntry) HydratedEntryResponse {
	resp := HydratedEntryResponse{
		EntryResponse: ToEntryResponse(&h.Entry),
		Category:      ToCategoryResponse(&h.Category),
		Attachments:   make([]AttachmentResponse, 0, len(h.Attachments)),
	}
	if h.Party != nil {
		p := ToPartyResponse(h.Party)
		resp.Party = &p
	}
	if h.Bank != nil {
		b := ToBankResponse(h.Bank)
		resp.Bank = &b
	}
	for _, a := range h.Attachments {
		resp.Attachments = append(resp.Attachments, ToAttachmentResponse(a))
	}
	return resp
}

// ToListEntriesResponse converts a page of hydrated entries to its API representation.
func ToListEntriesResponse(entries []domain.HydratedEntry, nextToken *string) ListEntriesResponse {
	resp := ListEntriesResponse{
		Entries:   make([]HydratedEntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for _, h := range entries {
		resp.Entries = append(resp.Entries, ToHydratedEntryResponse(h))
	}
	return resp
}
