package domain

import "time"

// TransactionType indicates the direction of money movement for an entry or
// the kind of entries a category groups.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// EntryType indicates the payment medium of an entry.
type EntryType string

const (
	EntryTypeCash EntryType = "CASH"
	EntryTypeBank EntryType = "BANK"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
