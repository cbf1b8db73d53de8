package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryTotals holds the aggregated income and expense sums for one filter
// scope. Balance is always derived, never stored.
type SummaryTotals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

// Balance returns totalIncome - totalExpenses.
func (t SummaryTotals) Balance() decimal.Decimal {
	return t.TotalIncome.Sub(t.TotalExpenses)
}

// FilteredSummaryResult combines a page of hydrated entries with the totals
// for the same filter scope. The two are computed by concurrent queries, so
// they are each consistent as of their own read but not a shared snapshot.
type FilteredSummaryResult struct {
	Entries       []HydratedEntry `json:"entries"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// YearMonth identifies a calendar month with at least one entry.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ExportData is the full dataset for a date window, used for export.
type ExportData struct {
	Entries    []HydratedEntry `json:"entries"`
	Categories []Category      `json:"categories"`
	Parties    []Party         `json:"parties"`
	Banks      []Bank          `json:"banks"`
}
