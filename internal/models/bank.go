package models

// BankAccount maps a row of the banks table.
type BankAccount struct {
	BankID      string  `json:"bankID"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	AuditFields
}
