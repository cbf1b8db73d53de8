package models

// Category maps a row of the categories table.
type Category struct {
	CategoryID      string          `json:"categoryID"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	AuditFields
}
