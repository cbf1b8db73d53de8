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

// summaryHandler handles HTTP requests for reporting and export.
type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

func newSummaryHandler(ss portssvc.SummarySvcFacade) *summaryHandler {
	return &summaryHandler{summaryService: ss}
}

// registerSummaryRoutes registers reporting and export routes. Every route
// accepts the same filter query parameters as the entry listing.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := newSummaryHandler(summaryService)

	summary := rg.Group("/summary")
	{
		summary.GET("", h.getFilteredSummary)
		summary.GET("/aggregation", h.getAggregation)
		summary.GET("/entries", h.getAllFilteredEntries)
		summary.GET("/export", h.exportData)
		summary.GET("/months", h.getDistinctYearMonths)
		summary.GET("/years", h.getDistinctYears)
	}
}

func (h *summaryHandler) getFilteredSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := parseEntryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, nextToken := parsePagination(c)

	result, token, err := h.summaryService.GetFilteredSummaryPaginated(c.Request.Context(), filter, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build filtered summary", slog.String("error", err.Error()))
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFilteredSummaryResponse(*result, token))
}

func (h *summaryHandler) getAggregation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := parseEntryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals, err := h.summaryService.GetSummaryAggregation(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to aggregate entries", slog.String("error", err.Error()))
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to aggregate entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryAggregationResponse(totals))
}

func (h *summaryHandler) getAllFilteredEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := parseEntryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ascending := c.Query("order") == "asc"

	entries, err := h.summaryService.GetFilteredAccountEntries(c.Request.Context(), filter, ascending)
	if err != nil {
		logger.Error("Failed to list filtered entries", slog.String("error", err.Error()))
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nil))
}

func (h *summaryHandler) exportData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := parseEntryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	export, err := h.summaryService.GetAllDataForExport(c.Request.Context(), filter.StartDate, filter.EndDate, filter.CategoryIDs, filter.PartyIDs, filter.BankIDs)
	if err != nil {
		logger.Error("Failed to collect export data", slog.String("error", err.Error()))
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to export data"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExportResponse(*export))
}

func (h *summaryHandler) getDistinctYearMonths(c *gin.Context) {
	periods, err := h.summaryService.GetDistinctYearMonths(c.Request.Context())
	if err != nil {
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to list periods"})
		return
	}

	resp := make([]dto.YearMonthResponse, 0, len(periods))
	for _, p := range periods {
		resp = append(resp, dto.YearMonthResponse{Year: p.Year, Month: int(p.Month)})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *summaryHandler) getDistinctYears(c *gin.Context) {
	years, err := h.summaryService.GetDistinctYears(c.Request.Context())
	if err != nil {
		c.JSON(storageFailureStatus(err), gin.H{"error": "Failed to list years"})
		return
	}

	c.JSON(http.StatusOK, years)
}
