package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service layer.
type RepositoryProvider struct {
	EntryRepo      EntryRepositoryWithTx
	CategoryRepo   CategoryRepositoryFacade
	PartyRepo      PartyRepositoryFacade
	BankRepo       BankRepositoryFacade
	AttachmentRepo AttachmentRepositoryFacade
	SummaryRepo    SummaryRepository
}
