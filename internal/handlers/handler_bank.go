package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khatapp/khata_backend/internal/apperrors"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/middleware"
)

// bankHandler handles HTTP requests related to banks.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers routes related to banks.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.searchBanks)
		banks.GET("/:id", h.getBank)
		banks.PUT("/:id", h.updateBank)
		banks.DELETE("/:id", h.deleteBank)
	}
}

func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create bank in service", slog.String("error", err.Error()))
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to create bank"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

func (h *bankHandler) getBank(c *gin.Context) {
	bankID := c.Param("id")

	bank, err := h.bankService.GetBankByID(c.Request.Context(), bankID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		} else {
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to retrieve bank"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

func (h *bankHandler) updateBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankID := c.Param("id")
	var req dto.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.UpdateBank(c.Request.Context(), bankID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update bank in service", slog.String("error", err.Error()), slog.String("bank_id", bankID))
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to update bank"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

func (h *bankHandler) deleteBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankID := c.Param("id")

	if err := h.bankService.DeleteBank(c.Request.Context(), bankID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		} else {
			logger.Error("Failed to delete bank", slog.String("error", err.Error()), slog.String("bank_id", bankID))
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to delete bank"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *bankHandler) searchBanks(c *gin.Context) {
	limit, nextToken := parsePagination(c)

	banks, token, err := h.bankService.SearchBanks(c.Request.Context(), c.Query("q"), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to search banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBanksResponse(banks, token))
}
