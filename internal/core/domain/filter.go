package domain

import "time"

// EntryFilter is a conjunction of optional predicates over entries. A zero
// value matches every entry; each populated field narrows the result set.
// The same filter is applied to detail queries and summary aggregation so
// both always describe the same scope.
type EntryFilter struct {
	CategoryIDs     []string
	PartyIDs        []string
	BankIDs         []string
	EntryType       *EntryType
	TransactionType *TransactionType
	StartDate       *time.Time
	EndDate         *time.Time
	TitleContains   string
}

// IsZero reports whether no predicate is set.
func (f EntryFilter) IsZero() bool {
	return len(f.CategoryIDs) == 0 && len(f.PartyIDs) == 0 && len(f.BankIDs) == 0 &&
		f.EntryType == nil && f.TransactionType == nil &&
		f.StartDate == nil && f.EndDate == nil && f.TitleContains == ""
}
