package invalidation

// Well-known table names shared by the publishers (repositories) and the
// subscribers (live paginated readers).
const (
	TableEntries     = "account_entries"
	TableCategories  = "categories"
	TableParties     = "parties"
	TableBanks       = "banks"
	TableAttachments = "attachments"
)
