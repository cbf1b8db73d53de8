package services

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/khatapp/khata_backend/internal/dto"
)

// EntryPager is a live, cursor-paginated view over one filter scope.
// LoadNext appends the next page; Refresh restarts from the head. Invalidated
// delivers a signal whenever a write touches any table the view reads from;
// consumers are expected to Refresh, never to rebase loaded pages.
type EntryPager interface {
	// LoadNext fetches the next page. It returns an empty slice once the tail
	// is reached.
	LoadNext(ctx context.Context) ([]domain.HydratedEntry, error)

	// Refresh resets the cursor and fetches the first page again.
	Refresh(ctx context.Context) ([]domain.HydratedEntry, error)

	// HasMore reports whether LoadNext may yield more rows.
	HasMore() bool

	// Invalidated delivers coalesced invalidate-on-write signals.
	Invalidated() <-chan string

	// Close tears the view down and releases its invalidation subscription.
	Close()
}

// EntrySvcFacade defines the business operations over account entries.
type EntrySvcFacade interface {
	// UpsertEntry creates the entry (generating an ID) or updates the entry
	// identified by req.EntryID. Category existence and transaction type
	// consistency are enforced here, at write time.
	UpsertEntry(ctx context.Context, req dto.UpsertEntryRequest) (*domain.AccountEntry, error)

	// GetEntry retrieves a single entry.
	GetEntry(ctx context.Context, entryID string) (*domain.AccountEntry, error)

	// DeleteEntry removes an entry and, by cascade, its attachments.
	DeleteEntry(ctx context.Context, entryID string) error

	// TogglePin flips the pinned flag and returns the new value.
	TogglePin(ctx context.Context, entryID string) (bool, error)

	// ListEntries retrieves one page of hydrated entries matching the filter,
	// using token-based cursor pagination.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.HydratedEntry, *string, error)

	// SearchEntries performs a case-insensitive title search through the
	// full-text index, each hit joined with its category.
	SearchEntries(ctx context.Context, query string, limit int) ([]domain.HydratedEntry, error)

	// NewPager opens a live paginated view over the filter scope.
	NewPager(filter domain.EntryFilter, pageSize int) EntryPager
}
