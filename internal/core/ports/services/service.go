package services

// ServiceContainer bundles all service implementations for injection into the
// HTTP handlers.
type ServiceContainer struct {
	Entry      EntrySvcFacade
	Category   CategorySvcFacade
	Party      PartySvcFacade
	Bank       BankSvcFacade
	Attachment AttachmentSvcFacade
	Summary    SummarySvcFacade
}
