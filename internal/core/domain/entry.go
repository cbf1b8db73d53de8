package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountEntry represents a single income or expense transaction.
// Amount is always non-negative; direction is carried by TransactionType.
type AccountEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	EntryType       EntryType       `json:"entryType"`
	CategoryID      string          `json:"categoryID"`         // Required FK
	PartyID         *string         `json:"partyID,omitempty"`  // Optional FK
	BankID          *string         `json:"bankID,omitempty"`   // Optional FK
	TransactionDate time.Time       `json:"transactionDate"`
	Description     *string         `json:"description,omitempty"`
	IsPinned        bool            `json:"isPinned"`
	AuditFields
}

// HydratedEntry is an AccountEntry joined with its reference data and
// attachments. Category is always present; Party and Bank are nil when the
// entry has no such reference or the referenced row was deleted.
type HydratedEntry struct {
	Entry       AccountEntry `json:"entry"`
	Category    Category     `json:"category"`
	Party       *Party       `json:"party,omitempty"`
	Bank        *Bank        `json:"bank,omitempty"`
	Attachments []Attachment `json:"attachments"`
}
