package services

import (
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
)

// NewServiceContainer wires every service against the repository provider and
// the shared invalidation bus.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, bus *invalidation.Bus) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Entry:      NewEntryService(repos.EntryRepo, repos.CategoryRepo, bus),
		Category:   NewCategoryService(repos.CategoryRepo),
		Party:      NewPartyService(repos.PartyRepo),
		Bank:       NewBankService(repos.BankRepo),
		Attachment: NewAttachmentService(repos.AttachmentRepo, repos.EntryRepo),
		Summary:    NewSummaryService(repos.SummaryRepo, repos.EntryRepo, repos.CategoryRepo, repos.PartyRepo, repos.BankRepo),
	}
}
