package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/middleware"
)

// AttachmentService handles business logic related to entry attachments.
type AttachmentService struct {
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	entryRepo      portsrepo.EntryReader
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(ar portsrepo.AttachmentRepositoryFacade, er portsrepo.EntryReader) portssvc.AttachmentSvcFacade {
	return &AttachmentService{
		attachmentRepo: ar,
		entryRepo:      er,
	}
}

// Ensure AttachmentService implements the portssvc.AttachmentSvcFacade interface
var _ portssvc.AttachmentSvcFacade = (*AttachmentService)(nil)

// AddAttachments links a batch of files to an entry and returns the persisted
// attachments with their generated IDs.
func (s *AttachmentService) AddAttachments(ctx context.Context, entryID string, files []dto.NewAttachment) ([]domain.Attachment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Resolve the entry first so a missing parent surfaces as not-found
	// rather than a foreign key violation from the insert.
	if _, err := s.entryRepo.FindEntryByID(ctx, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Refused to attach files to unknown entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	now := time.Now()
	attachments := make([]domain.Attachment, 0, len(files))
	for _, f := range files {
		attachments = append(attachments, domain.Attachment{
			AttachmentID: uuid.NewString(),
			EntryID:      entryID,
			FileURI:      f.FileURI,
			MimeType:     f.MimeType,
			SizeBytes:    f.SizeBytes,
			Width:        f.Width,
			Height:       f.Height,
			CreatedAt:    now,
		})
	}

	if err := s.attachmentRepo.SaveAttachments(ctx, attachments); err != nil {
		logger.Error("Failed to save attachments in repository", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Attachments added", slog.String("entry_id", entryID), slog.Int("count", len(attachments)))
	return attachments, nil
}

// GetAttachments retrieves all attachments of one entry, oldest first.
func (s *AttachmentService) GetAttachments(ctx context.Context, entryID string) ([]domain.Attachment, error) {
	attachments, err := s.attachmentRepo.FindAttachmentsByEntryID(ctx, entryID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch attachments", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	return attachments, nil
}

// DeleteAttachments removes a batch of attachments.
func (s *AttachmentService) DeleteAttachments(ctx context.Context, attachmentIDs []string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.attachmentRepo.DeleteAttachments(ctx, attachmentIDs); err != nil {
		logger.Error("Failed to delete attachments", slog.String("error", err.Error()), slog.Int("count", len(attachmentIDs)))
		return err
	}

	logger.Info("Attachments deleted", slog.Int("count", len(attachmentIDs)))
	return nil
}
