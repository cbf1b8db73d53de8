package pgsql

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	"github.com/khatapp/khata_backend/internal/models"
	"github.com/khatapp/khata_backend/internal/utils/mapping"
)

// hydratedEntryColumns are the columns selected by every filtered entry query:
// the entry itself, its category (inner join), and its optional party and bank
// (left joins).
var hydratedEntryColumns = []string{
	"e.entry_id", "e.title", "e.amount", "e.transaction_type", "e.entry_type",
	"e.category_id", "e.party_id", "e.bank_id", "e.transaction_date",
	"e.description", "e.is_pinned", "e.created_at", "e.last_updated_at",
	"c.name", "c.description", "c.transaction_type", "c.created_at", "c.last_updated_at",
	"p.name", "p.contact_number", "p.description", "p.address", "p.created_at", "p.last_updated_at",
	"b.name", "b.description", "b.created_at", "b.last_updated_at",
}

// filteredEntriesBase builds the joined SELECT every detail query starts from.
// Category is a required join; party and bank are left joins so entries whose
// references were deleted (or never set) still appear.
func filteredEntriesBase() sq.SelectBuilder {
	return sq.Select(hydratedEntryColumns...).
		From("account_entries e").
		Join("categories c ON c.category_id = e.category_id").
		LeftJoin("parties p ON p.party_id = e.party_id").
		LeftJoin("banks b ON b.bank_id = e.bank_id").
		PlaceholderFormat(sq.Dollar)
}

// applyEntryFilter adds one WHERE clause per populated predicate. Absent
// fields add nothing, so the filter is a conjunction of optional clauses and
// a zero filter matches every row.
func applyEntryFilter(b sq.SelectBuilder, f domain.EntryFilter) sq.SelectBuilder {
	if f.IsZero() {
		return b
	}
	if len(f.CategoryIDs) > 0 {
		b = b.Where(sq.Eq{"e.category_id": f.CategoryIDs})
	}
	if len(f.PartyIDs) > 0 {
		b = b.Where(sq.Eq{"e.party_id": f.PartyIDs})
	}
	if len(f.BankIDs) > 0 {
		b = b.Where(sq.Eq{"e.bank_id": f.BankIDs})
	}
	if f.EntryType != nil {
		b = b.Where(sq.Eq{"e.entry_type": string(*f.EntryType)})
	}
	if f.TransactionType != nil {
		b = b.Where(sq.Eq{"e.transaction_type": string(*f.TransactionType)})
	}
	if f.StartDate != nil {
		b = b.Where(sq.GtOrEq{"e.transaction_date": *f.StartDate})
	}
	if f.EndDate != nil {
		b = b.Where(sq.LtOrEq{"e.transaction_date": *f.EndDate})
	}
	if f.TitleContains != "" {
		b = b.Where(sq.ILike{"e.title": "%" + escapeLikePattern(f.TitleContains) + "%"})
	}
	return b
}

// escapeLikePattern neutralizes LIKE metacharacters in user input so a title
// filter matches them literally.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// scanHydratedEntry scans one row of a filteredEntriesBase query into a
// HydratedEntry without attachments; those are fetched in a separate
// round-trip per page.
func scanHydratedEntry(rows pgx.Rows) (domain.HydratedEntry, error) {
	var m models.AccountEntry
	var catName, catType string
	var catDesc *string
	var catCreated, catUpdated time.Time
	var partyName, partyContact, partyDesc, partyAddr *string
	var partyCreated, partyUpdated *time.Time
	var bankName, bankDesc *string
	var bankCreated, bankUpdated *time.Time

	err := rows.Scan(
		&m.EntryID, &m.Title, &m.Amount, &m.TransactionType, &m.EntryType,
		&m.CategoryID, &m.PartyID, &m.BankID, &m.TransactionDate,
		&m.Description, &m.IsPinned, &m.CreatedAt, &m.LastUpdatedAt,
		&catName, &catDesc, &catType, &catCreated, &catUpdated,
		&partyName, &partyContact, &partyDesc, &partyAddr, &partyCreated, &partyUpdated,
		&bankName, &bankDesc, &bankCreated, &bankUpdated,
	)
	if err != nil {
		return domain.HydratedEntry{}, err
	}

	hydrated := domain.HydratedEntry{
		Entry: mapping.ToDomainEntry(m),
		Category: domain.Category{
			CategoryID:      m.CategoryID,
			Name:            catName,
			Description:     catDesc,
			TransactionType: domain.TransactionType(catType),
			AuditFields: domain.AuditFields{
				CreatedAt:     catCreated,
				LastUpdatedAt: catUpdated,
			},
		},
		Attachments: []domain.Attachment{},
	}

	// A left join with no party row leaves the entry intact with the
	// party omitted.
	if m.PartyID != nil && partyName != nil {
		hydrated.Party = &domain.Party{
			PartyID:       *m.PartyID,
			Name:          *partyName,
			ContactNumber: partyContact,
			Description:   partyDesc,
			Address:       partyAddr,
			AuditFields: domain.AuditFields{
				CreatedAt:     derefTime(partyCreated),
				LastUpdatedAt: derefTime(partyUpdated),
			},
		}
	}
	if m.BankID != nil && bankName != nil {
		hydrated.Bank = &domain.Bank{
			BankID:      *m.BankID,
			Name:        *bankName,
			Description: bankDesc,
			AuditFields: domain.AuditFields{
				CreatedAt:     derefTime(bankCreated),
				LastUpdatedAt: derefTime(bankUpdated),
			},
		}
	}

	return hydrated, nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// hydrateEntryAttachments runs the second round-trip that attaches files to a
// set of entries. One batch query per set, never a join, so parent rows are
// not duplicated by the one-to-many relationship.
func hydrateEntryAttachments(ctx context.Context, attachmentRepo portsrepo.AttachmentReader, entries []domain.HydratedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	entryIDs := make([]string, len(entries))
	for i, h := range entries {
		entryIDs[i] = h.Entry.EntryID
	}

	byEntry, err := attachmentRepo.FindAttachmentsByEntryIDs(ctx, entryIDs)
	if err != nil {
		return err
	}

	for i := range entries {
		entries[i].Attachments = byEntry[entries[i].Entry.EntryID]
	}
	return nil
}
