package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/dto"
	"github.com/khatapp/khata_backend/internal/middleware"
)

// entryHandler handles HTTP requests related to account entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers routes related to account entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.upsertEntry)
		entries.GET("", h.listEntries)
		entries.GET("/search", h.searchEntries)
		entries.GET("/:id", h.getEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.POST("/:id/pin", h.togglePin)
	}
}

// parseEntryFilter reads the optional filter predicates from the query string.
// Absent parameters leave their predicate unset, so no parameters at all
// yields the zero filter that matches every entry.
func parseEntryFilter(c *gin.Context) (domain.EntryFilter, error) {
	filter := domain.EntryFilter{
		CategoryIDs:   c.QueryArray("categoryID"),
		PartyIDs:      c.QueryArray("partyID"),
		BankIDs:       c.QueryArray("bankID"),
		TitleContains: c.Query("title"),
	}

	if v := c.Query("entryType"); v != "" {
		et := domain.EntryType(v)
		if et != domain.EntryTypeCash && et != domain.EntryTypeBank {
			return filter, errors.New("entryType must be CASH or BANK")
		}
		filter.EntryType = &et
	}
	if v := c.Query("transactionType"); v != "" {
		tt := domain.TransactionType(v)
		if tt != domain.TransactionTypeIncome && tt != domain.TransactionTypeExpense {
			return filter, errors.New("transactionType must be INCOME or EXPENSE")
		}
		filter.TransactionType = &tt
	}
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("startDate must be RFC3339")
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("endDate must be RFC3339")
		}
		filter.EndDate = &t
	}

	return filter, nil
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination reads the limit and nextToken query parameters. The limit
// is clamped to maxPageLimit; attachment hydration does one extra round trip
// per page, so page sizes stay bounded.
func parsePagination(c *gin.Context) (int, *string) {
	limit := defaultPageLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	var nextToken *string
	if v := c.Query("nextToken"); v != "" {
		nextToken = &v
	}
	return limit, nextToken
}

func (h *entryHandler) upsertEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.UpsertEntry(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrForeignKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Entry references missing data"})
		} else {
			logger.Error("Failed to upsert entry in service", slog.String("error", err.Error()))
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to save entry"})
		}
		return
	}

	status := http.StatusCreated
	if req.EntryID != nil {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToEntryResponse(entry))
}

func (h *entryHandler) getEntry(c *gin.Context) {
	entryID := c.Param("id")

	entry, err := h.entryService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := parseEntryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, nextToken := parsePagination(c)

	entries, token, err := h.entryService.ListEntries(c.Request.Context(), filter, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, token))
}

func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to delete entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *entryHandler) togglePin(c *gin.Context) {
	entryID := c.Param("id")

	pinned, err := h.entryService.TogglePin(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to toggle pin"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"entryID": entryID, "isPinned": pinned})
}

func (h *entryHandler) searchEntries(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}
	limit, _ := parsePagination(c)

	hits, err := h.entryService.SearchEntries(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to search entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(hits, nil))
}
