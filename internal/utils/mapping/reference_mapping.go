package mapping

import (
	"github.com/khatapp/khata_backend/internal/core/domain"
	"github.com/khatapp/khata_backend/internal/models"
)

// ToModelCategory converts a domain Category to a model Category.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:      d.CategoryID,
		Name:            d.Name,
		Description:     d.Description,
		TransactionType: models.TransactionType(d.TransactionType),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:      m.CategoryID,
		Name:            m.Name,
		Description:     m.Description,
		TransactionType: domain.TransactionType(m.TransactionType),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelParty converts a domain Party to a model Party.
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:       d.PartyID,
		Name:          d.Name,
		ContactNumber: d.ContactNumber,
		Description:   d.Description,
		Address:       d.Address,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to a domain Party.
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:       m.PartyID,
		Name:          m.Name,
		ContactNumber: m.ContactNumber,
		Description:   m.Description,
		Address:       m.Address,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBank converts a domain Bank to a model BankAccount.
func ToModelBank(d domain.Bank) models.BankAccount {
	return models.BankAccount{
		BankID:      d.BankID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBank converts a model BankAccount to a domain Bank.
func ToDomainBank(m models.BankAccount) domain.Bank {
	return domain.Bank{
		BankID:      m.BankID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
