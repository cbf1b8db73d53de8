package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
)

// NewRepositoryProvider builds every pgsql repository against one shared pool
// and one shared invalidation bus. The attachment repository is constructed
// first because the entry and summary repositories hydrate attachments
// through it.
func NewRepositoryProvider(dbPool *pgxpool.Pool, bus *invalidation.Bus) *portsrepo.RepositoryProvider {
	attachmentRepo := newPgxAttachmentRepository(dbPool, bus)

	return &portsrepo.RepositoryProvider{
		EntryRepo:      newPgxEntryRepository(dbPool, attachmentRepo, bus),
		CategoryRepo:   newPgxCategoryRepository(dbPool, bus),
		PartyRepo:      newPgxPartyRepository(dbPool, bus),
		BankRepo:       newPgxBankRepository(dbPool, bus),
		AttachmentRepo: attachmentRepo,
		SummaryRepo:    newPgxSummaryRepository(dbPool, attachmentRepo),
	}
}
