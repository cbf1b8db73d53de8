package domain

// Category groups entries of one transaction type.
// TransactionType is mutable after creation; entries already referencing the
// category are not revalidated when it changes.
type Category struct {
	CategoryID      string          `json:"categoryID"` // Primary Key (UUID)
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	TransactionType TransactionType `json:"transactionType"`
	AuditFields
}
