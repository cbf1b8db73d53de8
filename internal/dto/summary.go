package dto

import (
	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryAggregationResponse holds the totals of one filter scope.
type SummaryAggregationResponse struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// FilteredSummaryResponse is one page of entries plus the totals for the same
// filter scope.
type FilteredSummaryResponse struct {
	Entries       []HydratedEntryResponse `json:"entries"`
	TotalIncome   decimal.Decimal         `json:"totalIncome"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	Balance       decimal.Decimal         `json:"balance"`
	NextToken     *string                 `json:"nextToken,omitempty"`
}

// YearMonthResponse identifies a calendar month with entries.
type YearMonthResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ExportResponse is the full dataset of a date window.
type ExportResponse struct {
	Entries    []HydratedEntryResponse `json:"entries"`
	Categories []CategoryResponse      `json:"categories"`
	Parties    []PartyResponse         `json:"parties"`
	Banks      []BankResponse          `json:"banks"`
}

// ToSummaryAggregationResponse converts domain summary totals.
func ToSummaryAggregationResponse(t domain.SummaryTotals) SummaryAggregationResponse {
	return SummaryAggregationResponse{
		TotalIncome:   t.TotalIncome,
		TotalExpenses: t.TotalExpenses,
		Balance:       t.Balance(),
	}
}

// ToFilteredSummaryResponse converts a domain FilteredSummaryResult.
func ToFilteredSummaryResponse(r domain.FilteredSummaryResult, nextToken *string) FilteredSummaryResponse {
	resp := FilteredSummaryResponse{
		Entries:       make([]HydratedEntryResponse, 0, len(r.Entries)),
		TotalIncome:   r.TotalIncome,
		TotalExpenses: r.TotalExpenses,
		Balance:       r.Balance,
		NextToken:     nextToken,
	}
	for _, h := range r.Entries {
		resp.Entries = append(resp.Entries, ToHydratedEntryResponse(h))
	}
	return resp
}

// ToExportResponse converts a domain ExportData.
func ToExportResponse(d domain.ExportData) ExportResponse {
	resp := ExportResponse{
		Entries:    make([]HydratedEntryResponse, 0, len(d.Entries)),
		Categories: make([]CategoryResponse, 0, len(d.Categories)),
		Parties:    make([]PartyResponse, 0, len(d.Parties)),
		Banks:      make([]BankResponse, 0, len(d.Banks)),
	}
	for _, h := range d.Entries {
		resp.Entries = append(resp.Entries, ToHydratedEntryResponse(h))
	}
	for i := range d.Categories {
		resp.Categories = append(resp.Categories, ToCategoryResponse(&d.Categories[i]))
	}
	for i := range d.Parties {
		resp.Parties = append(resp.Parties, ToPartyResponse(&d.Parties[i]))
	}
	for i := range d.Banks {
		resp.Banks = append(resp.Banks, ToBankResponse(&d.Banks[i]))
	}
	return resp
}
