package repositories

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// PartyReader defines read operations for party data.
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its ID.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// SearchParties retrieves one page of parties whose name contains the query
	// case-insensitively, ordered by (created_at DESC, party_id DESC).
	SearchParties(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Party, *string, error)

	// ListParties retrieves all parties, newest first.
	ListParties(ctx context.Context) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data.
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates an existing party.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeleteParty removes a party. Entries referencing it keep their row but
	// have the reference nulled out.
	DeleteParty(ctx context.Context, partyID string) error
}

// PartyRepositoryFacade combines all party-related repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
