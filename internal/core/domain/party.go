package domain

// Party is a payee or payer optionally referenced by entries.
type Party struct {
	PartyID       string  `json:"partyID"` // Primary Key (UUID)
	Name          string  `json:"name"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	Description   *string `json:"description,omitempty"`
	Address       *string `json:"address,omitempty"`
	AuditFields
}
