package mapping

import (
	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/khatapp/khata_backend/internal/models"
)

// ToModelEntry converts a domain AccountEntry to a model AccountEntry.
func ToModelEntry(d domain.AccountEntry) models.AccountEntry {
	return models.AccountEntry{
		EntryID:         d.EntryID,
		Title:           d.Title,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		EntryType:       models.EntryType(d.EntryType),
		CategoryID:      d.CategoryID,
		PartyID:         d.PartyID,
		BankID:          d.BankID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		IsPinned:        d.IsPinned,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model AccountEntry to a domain AccountEntry.
func ToDomainEntry(m models.AccountEntry) domain.AccountEntry {
	return domain.AccountEntry{
		EntryID:         m.EntryID,
		Title:           m.Title,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		EntryType:       domain.EntryType(m.EntryType),
		CategoryID:      m.CategoryID,
		PartyID:         m.PartyID,
		BankID:          m.BankID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		IsPinned:        m.IsPinned,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries.
func ToDomainEntrySlice(ms []models.AccountEntry) []domain.AccountEntry {
	ds := make([]domain.AccountEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
