package pgsql

import (
	"testing"
	"time"

	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEntryFilterZeroFilterHasNoWhere(t *testing.T) {
	filter := domain.EntryFilter{}
	require.True(t, filter.IsZero())

	builder := applyEntryFilter(filteredEntriesBase(), filter)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestApplyEntryFilterSinglePredicates(t *testing.T) {
	entryType := domain.EntryTypeBank
	txType := domain.TransactionTypeExpense
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	testCases := []struct {
		name     string
		filter   domain.EntryFilter
		fragment string
		args     []any
	}{
		{
			name:     "category ids",
			filter:   domain.EntryFilter{CategoryIDs: []string{"cat-1", "cat-2"}},
			fragment: "e.category_id IN ($1,$2)",
			args:     []any{"cat-1", "cat-2"},
		},
		{
			name:     "party ids",
			filter:   domain.EntryFilter{PartyIDs: []string{"party-1"}},
			fragment: "e.party_id IN ($1)",
			args:     []any{"party-1"},
		},
		{
			name:     "bank ids",
			filter:   domain.EntryFilter{BankIDs: []string{"bank-1"}},
			fragment: "e.bank_id IN ($1)",
			args:     []any{"bank-1"},
		},
		{
			name:     "entry type",
			filter:   domain.EntryFilter{EntryType: &entryType},
			fragment: "e.entry_type = $1",
			args:     []any{"BANK"},
		},
		{
			name:     "transaction type",
			filter:   domain.EntryFilter{TransactionType: &txType},
			fragment: "e.transaction_type = $1",
			args:     []any{"EXPENSE"},
		},
		{
			name:     "start date",
			filter:   domain.EntryFilter{StartDate: &start},
			fragment: "e.transaction_date >= $1",
			args:     []any{start},
		},
		{
			name:     "end date",
			filter:   domain.EntryFilter{EndDate: &end},
			fragment: "e.transaction_date <= $1",
			args:     []any{end},
		},
		{
			name:     "title substring",
			filter:   domain.EntryFilter{TitleContains: "rent"},
			fragment: "e.title ILIKE $1",
			args:     []any{"%rent%"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.False(t, tc.filter.IsZero())

			query, args, err := applyEntryFilter(filteredEntriesBase(), tc.filter).ToSql()
			require.NoError(t, err)
			assert.Contains(t, query, tc.fragment)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestApplyEntryFilterConjunction(t *testing.T) {
	txType := domain.TransactionTypeIncome
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	filter := domain.EntryFilter{
		CategoryIDs:     []string{"cat-1"},
		TransactionType: &txType,
		StartDate:       &start,
		TitleContains:   "salary",
	}

	query, args, err := applyEntryFilter(filteredEntriesBase(), filter).ToSql()
	require.NoError(t, err)

	// Populated predicates combine with AND, in application order.
	assert.Contains(t, query, "e.category_id IN ($1) AND e.transaction_type = $2 AND e.transaction_date >= $3 AND e.title ILIKE $4")
	assert.Equal(t, []any{"cat-1", "INCOME", start, "%salary%"}, args)
}

func TestApplyEntryFilterEscapesLikeMetacharacters(t *testing.T) {
	filter := domain.EntryFilter{TitleContains: `50%_off\deal`}

	_, args, err := applyEntryFilter(filteredEntriesBase(), filter).ToSql()
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, `%50\%\_off\\deal%`, args[0])
}

func TestFilteredEntriesBaseJoins(t *testing.T) {
	query, _, err := filteredEntriesBase().ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "JOIN categories c ON c.category_id = e.category_id")
	assert.Contains(t, query, "LEFT JOIN parties p ON p.party_id = e.party_id")
	assert.Contains(t, query, "LEFT JOIN banks b ON b.bank_id = e.bank_id")
}
