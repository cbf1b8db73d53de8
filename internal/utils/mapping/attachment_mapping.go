package mapping

import (
	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/khatapp/khata_backend/internal/models"
)

// ToModelAttachment converts a domain Attachment to a model Attachment.
func ToModelAttachment(d domain.Attachment) models.Attachment {
	return models.Attachment{
		AttachmentID: d.AttachmentID,
		EntryID:      d.EntryID,
		FileURI:      d.FileURI,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		Width:        d.Width,
		Height:       d.Height,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAttachment converts a model Attachment to a domain Attachment.
func ToDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID: m.AttachmentID,
		EntryID:      m.EntryID,
		FileURI:      m.FileURI,
		MimeType:     m.MimeType,
		SizeBytes:    m.SizeBytes,
		Width:        m.Width,
		Height:       m.Height,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainAttachmentSlice converts a slice of model attachments to domain attachments.
func ToDomainAttachmentSlice(ms []models.Attachment) []domain.Attachment {
	ds := make([]domain.Attachment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttachment(m)
	}
	return ds
}
