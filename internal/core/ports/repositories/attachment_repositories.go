package repositories

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
)

// AttachmentReader defines read operations for attachment data.
type AttachmentReader interface {
	// FindAttachmentsByEntryID retrieves all attachments of one entry,
	// oldest first.
	FindAttachmentsByEntryID(ctx context.Context, entryID string) ([]domain.Attachment, error)

	// FindAttachmentsByEntryIDs retrieves attachments for a batch of entries in
	// one round-trip. Every requested entry ID is present in the returned map,
	// entries without attachments mapping to an empty slice.
	FindAttachmentsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Attachment, error)
}

// AttachmentWriter defines write operations for attachment data.
type AttachmentWriter interface {
	// SaveAttachments persists a batch of attachments. Referencing a missing
	// entry fails with a foreign key violation.
	SaveAttachments(ctx context.Context, attachments []domain.Attachment) error

	// DeleteAttachments removes the attachments with the given IDs.
	DeleteAttachments(ctx context.Context, attachmentIDs []string) error
}

// AttachmentRepositoryFacade combines all attachment-related repository interfaces.
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
