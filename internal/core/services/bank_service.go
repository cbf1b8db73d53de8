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
)

// BankService handles business logic related to banks.
type BankService struct {
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new BankService.
func NewBankService(br portsrepo.BankRepositoryFacade) portssvc.BankSvcFacade {
	return &BankService{bankRepo: br}
}

// Ensure BankService implements the portssvc.BankSvcFacade interface
var _ portssvc.BankSvcFacade = (*BankService)(nil)

// CreateBank creates a new bank.
func (s *BankService) CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
	}

	now := time.Now()
	bank := domain.Bank{
		BankID:      uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.bankRepo.SaveBank(ctx, bank); err != nil {
		logger.Error("Failed to save bank in repository", slog.String("error", err.Error()), slog.String("bank_name", bank.Name))
		return nil, err
	}

	logger.Info("Bank created successfully", slog.String("bank_id", bank.BankID))
	return &bank, nil
}

// GetBankByID retrieves a single bank.
func (s *BankService) GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find bank", slog.String("error", err.Error()), slog.String("bank_id", bankID))
		}
		return nil, err
	}
	return bank, nil
}

// UpdateBank applies the non-nil fields of the request.
func (s *BankService) UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest) (*domain.Bank, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
		}
		bank.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		bank.Description = req.Description
	}
	bank.LastUpdatedAt = time.Now()

	if err := s.bankRepo.UpdateBank(ctx, *bank); err != nil {
		logger.Error("Failed to update bank in repository", slog.String("error", err.Error()), slog.String("bank_id", bankID))
		return nil, err
	}

	return bank, nil
}

// DeleteBank removes a bank. Entries referencing it keep their row with the
// reference nulled out.
func (s *BankService) DeleteBank(ctx context.Context, bankID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.bankRepo.DeleteBank(ctx, bankID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete bank", slog.String("error", err.Error()), slog.String("bank_id", bankID))
		}
		return err
	}

	logger.Info("Bank deleted", slog.String("bank_id", bankID))
	return nil
}

// SearchBanks retrieves one page of banks matching the query.
func (s *BankService) SearchBanks(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Bank, *string, error) {
	banks, next, err := s.bankRepo.SearchBanks(ctx, strings.TrimSpace(query), limit, nextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to search banks", slog.String("error", err.Error()), slog.String("query", query))
		return nil, nil, err
	}
	return banks, next, nil
}
