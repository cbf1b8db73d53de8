package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// EntryType indicates the payment medium.
type EntryType string

const (
	Cash EntryType = "CASH"
	Bank EntryType = "BANK"
)

// AccountEntry maps a row of the account_entries table.
type AccountEntry struct {
	EntryID         string          `json:"entryID"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	EntryType       EntryType       `json:"entryType"`
	CategoryID      string          `json:"categoryID"`
	PartyID         *string         `json:"partyID"`
	BankID          *string         `json:"bankID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     *string         `json:"description"`
	IsPinned        bool            `json:"isPinned"`
	AuditFields
}
