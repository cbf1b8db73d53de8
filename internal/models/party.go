package models

// Party maps a row of the parties table.
type Party struct {
	PartyID       string  `json:"partyID"`
	Name          string  `json:"name"`
	ContactNumber *string `json:"contactNumber"`
	Description   *string `json:"description"`
	Address       *string `json:"address"`
	AuditFields
}
