package dto

import (
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// CreatePartyRequest creates a new party.
type CreatePartyRequest struct {
	Name          string  `json:"name" binding:"required"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	Description   *string `json:"description,omitempty"`
	Address       *string `json:"address,omitempty"`
}

// UpdatePartyRequest updates an existing party. Nil fields are left unchanged.
type UpdatePartyRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	Description   *string `json:"description,omitempty"`
	Address       *string `json:"address,omitempty"`
}

// PartyResponse is the API representation of a party.
type PartyResponse struct {
	PartyID       string    `json:"partyID"`
	Name          string    `json:"name"`
	ContactNumber *string   `json:"contactNumber,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Address       *string   `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListPartiesResponse is one page of parties.
type ListPartiesResponse struct {
	Parties   []PartyResponse `json:"parties"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToPartyResponse converts a domain Party to its API representation.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		Name:          p.Name,
		ContactNumber: p.ContactNumber,
		Description:   p.Description,
		Address:       p.Address,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListPartiesResponse converts a page of parties to its API representation.
func ToListPartiesResponse(parties []domain.Party, nextToken *string) ListPartiesResponse {
	resp := ListPartiesResponse{
		Parties:   make([]PartyResponse, 0, len(parties)),
		NextToken: nextToken,
	}
	for i := range parties {
		resp.Parties = append(resp.Parties, ToPartyResponse(&parties[i]))
	}
	return resp
}
