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

// PartyService handles business logic related to parties.
type PartyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
}

// NewPartyService creates a new PartyService.
func NewPartyService(pr portsrepo.PartyRepositoryFacade) portssvc.PartySvcFacade {
	return &PartyService{partyRepo: pr}
}

// Ensure PartyService implements the portssvc.PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*PartyService)(nil)

// CreateParty creates a new party.
func (s *PartyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
	}

	now := time.Now()
	party := domain.Party{
		PartyID:       uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		ContactNumber: req.ContactNumber,
		Description:   req.Description,
		Address:       req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party in repository", slog.String("error", err.Error()), slog.String("party_name", party.Name))
		return nil, err
	}

	logger.Info("Party created successfully", slog.String("party_id", party.PartyID))
	return &party, nil
}

// GetPartyByID retrieves a single party.
func (s *PartyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		}
		return nil, err
	}
	return party, nil
}

// UpdateParty applies the non-nil fields of the request.
func (s *PartyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
		}
		party.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactNumber != nil {
		party.ContactNumber = req.ContactNumber
	}
	if req.Description != nil {
		party.Description = req.Description
	}
	if req.Address != nil {
		party.Address = req.Address
	}
	party.LastUpdatedAt = time.Now()

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		logger.Error("Failed to update party in repository", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, err
	}

	return party, nil
}

// DeleteParty removes a party. Entries referencing it keep their row with the
// reference nulled out.
func (s *PartyService) DeleteParty(ctx context.Context, partyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.partyRepo.DeleteParty(ctx, partyID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		}
		return err
	}

	logger.Info("Party deleted", slog.String("party_id", partyID))
	return nil
}

// SearchParties retrieves one page of parties matching the query.
func (s *PartyService) SearchParties(ctx context.Context, query string, limit int, nextToken *string) ([]domain.Party, *string, error) {
	parties, next, err := s.partyRepo.SearchParties(ctx, strings.TrimSpace(query), limit, nextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to search parties", slog.String("error", err.Error()), slog.String("query", query))
		return nil, nil, err
	}
	return parties, next, nil
}
