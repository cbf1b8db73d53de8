package services

import (
	"context"

	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/khatapp/khata_backend/internal/dto"
)

// AttachmentSvcFacade defines business operations over entry attachments.
type AttachmentSvcFacade interface {
	// AddAttachments links a batch of files to an entry and returns the
	// persisted attachments with their generated IDs.
	AddAttachments(ctx context.Context, entryID string, files []dto.NewAttachment) ([]domain.Attachment, error)

	// GetAttachments retrieves all attachments of one entry.
	GetAttachments(ctx context.Context, entryID string) ([]domain.Attachment, error)

	// DeleteAttachments removes a batch of attachments.
	DeleteAttachments(ctx context.Context, attachmentIDs []string) error
}
