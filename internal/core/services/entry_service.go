package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/middleware"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
)

// EntryService handles business logic related to account entries.
type EntryService struct {
	entryRepo    portsrepo.EntryRepositoryWithTx
	categoryRepo portsrepo.CategoryReader
	bus          *invalidation.Bus
}

// NewEntryService creates a new EntryService.
func NewEntryService(er portsrepo.EntryRepositoryWithTx, cr portsrepo.CategoryReader, bus *invalidation.Bus) portssvc.EntrySvcFacade {
	return &EntryService{
		entryRepo:    er,
		categoryRepo: cr,
		bus:          bus,
	}
}

// Ensure EntryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*EntryService)(nil)

// UpsertEntry creates the entry, or updates it when req.EntryID is set.
// Category existence and transaction type consistency are enforced here, at
// write time; a later category change does not revalidate this entry.
func (s *EntryService) UpsertEntry(ctx context.Context, req dto.UpsertEntryRequest) (*domain.AccountEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be blank", apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	txType := domain.TransactionType(req.TransactionType)
	entryType := domain.EntryType(req.EntryType)
	if req.BankID != nil && entryType != domain.EntryTypeBank {
		return nil, fmt.Errorf("%w: bank reference requires entry type BANK", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry references unknown category", slog.String("category_id", req.CategoryID))
			return nil, apperrors.NewAppError(409, "category "+req.CategoryID+" does not exist", apperrors.ErrForeignKey)
		}
		logger.Error("Failed to check category existence", slog.String("error", err.Error()), slog.String("category_id", req.CategoryID))
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}
	if category.TransactionType != txType {
		return nil, fmt.Errorf("%w: category %s accepts %s entries, not %s", apperrors.ErrValidation, category.Name, category.TransactionType, txType)
	}

	now := time.Now()
	entry := domain.AccountEntry{
		Title:           strings.TrimSpace(req.Title),
		Amount:          req.Amount,
		TransactionType: txType,
		EntryType:       entryType,
		CategoryID:      req.CategoryID,
		PartyID:         req.PartyID,
		BankID:          req.BankID,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		IsPinned:        req.IsPinned,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if req.EntryID != nil {
		existing, err := s.entryRepo.FindEntryByID(ctx, *req.EntryID)
		if err != nil {
			logger.Error("Failed to load entry for update", slog.String("error", err.Error()), slog.String("entry_id", *req.EntryID))
			return nil, err
		}
		entry.EntryID = existing.EntryID
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.EntryID = uuid.NewString()
	}

	if err := s.entryRepo.UpsertEntry(ctx, entry); err != nil {
		logger.Error("Failed to upsert entry in repository", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	logger.Info("Entry upserted successfully", slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// GetEntry retrieves a single entry by its ID.
func (s *EntryService) GetEntry(ctx context.Context, entryID string) (*domain.AccountEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes an entry. Its attachments and search index row go with
// it by cascade.
func (s *EntryService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return err
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID))
	return nil
}

// TogglePin flips the pinned flag and returns the new value.
func (s *EntryService) TogglePin(ctx context.Context, entryID string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return false, err
	}

	newPinned := !entry.IsPinned
	if err := s.entryRepo.SetEntryPinned(ctx, entryID, newPinned, time.Now()); err != nil {
		logger.Error("Failed to toggle pin", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return false, err
	}

	return newPinned, nil
}

// ListEntries retrieves one page of hydrated entries matching the filter.
func (s *EntryService) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.HydratedEntry, *string, error) {
	entries, next, err := s.entryRepo.ListFilteredEntries(ctx, filter, limit, nextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return entries, next, nil
}

// SearchEntries performs a case-insensitive title search and returns each hit
// with its category joined.
func (s *EntryService) SearchEntries(ctx context.Context, query string, limit int) ([]domain.HydratedEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.HydratedEntry{}, nil
	}

	hits, err := s.entryRepo.SearchEntries(ctx, query, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to search entries", slog.String("error", err.Error()), slog.String("query", query))
		return nil, err
	}
	return hits, nil
}

// NewPager opens a live paginated view over the filter scope.
func (s *EntryService) NewPager(filter domain.EntryFilter, pageSize int) portssvc.EntryPager {
	return newEntryPager(s.entryRepo, s.bus, filter, pageSize)
}
