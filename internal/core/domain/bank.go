package domain

// Bank is a bank account optionally referenced by entries of type BANK.
type Bank struct {
	BankID      string  `json:"bankID"` // Primary Key (UUID)
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	AuditFields
}
