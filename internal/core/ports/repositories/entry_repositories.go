package repositories

import (
	"context"
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// EntryReader defines read operations for account entries.
type EntryReader interface {
	// FindEntryByID retrieves a single entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.AccountEntry, error)

	// ListFilteredEntries retrieves one page of hydrated entries matching the
	// filter, ordered by (transaction_date DESC, entry_id DESC), using
	// token-based cursor pagination. It returns the page, a token for the next
	// page (nil when there is none), and an error.
	ListFilteredEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.HydratedEntry, *string, error)

	// SearchEntries performs a full-text title search through the search index
	// and re-joins category metadata. Party, bank and attachments are not
	// hydrated on search hits.
	SearchEntries(ctx context.Context, query string, limit int) ([]domain.HydratedEntry, error)
}

// EntryWriter defines write operations for account entries.
type EntryWriter interface {
	// UpsertEntry inserts the entry, or updates it when a row with the same
	// entry ID already exists. The search index row is maintained in the same
	// transaction.
	UpsertEntry(ctx context.Context, entry domain.AccountEntry) error

	// DeleteEntry removes the entry. Attachments and the search index row are
	// removed by cascade.
	DeleteEntry(ctx context.Context, entryID string) error

	// SetEntryPinned flips the pinned flag on an entry.
	SetEntryPinned(ctx context.Context, entryID string, pinned bool, updatedAt time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
