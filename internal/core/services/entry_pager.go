package services

import (
	"context"
	"sync"

	"github.com/khatapp/khata_backend/internal/core/domain"
	portsrepo "github.com/khatapp/khata_backend/internal/core/ports/repositories"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/khatapp/khata_backend/internal/utils/invalidation"
)

// entryPager is a live cursor-paginated view over one filter scope. It tracks
// the next-page token between LoadNext calls and subscribes to every table
// whose rows surface in a hydrated entry, so any relevant write produces an
// Invalidated signal.
type entryPager struct {
	entryRepo portsrepo.EntryReader
	filter    domain.EntryFilter
	pageSize  int

	mu        sync.Mutex
	nextToken *string
	exhausted bool

	sub *invalidation.Subscription
}

func newEntryPager(er portsrepo.EntryReader, bus *invalidation.Bus, filter domain.EntryFilter, pageSize int) portssvc.EntryPager {
	return &entryPager{
		entryRepo: er,
		filter:    filter,
		pageSize:  pageSize,
		sub: bus.Subscribe(
			invalidation.TableEntries,
			invalidation.TableAttachments,
			invalidation.TableCategories,
			invalidation.TableParties,
			invalidation.TableBanks,
		),
	}
}

// LoadNext fetches the next page, or an empty slice once the tail is reached.
func (p *entryPager) LoadNext(ctx context.Context) ([]domain.HydratedEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exhausted {
		return []domain.HydratedEntry{}, nil
	}

	entries, next, err := p.entryRepo.ListFilteredEntries(ctx, p.filter, p.pageSize, p.nextToken)
	if err != nil {
		return nil, err
	}

	p.nextToken = next
	p.exhausted = next == nil
	return entries, nil
}

// Refresh resets the cursor and fetches the first page again.
func (p *entryPager) Refresh(ctx context.Context) ([]domain.HydratedEntry, error) {
	p.mu.Lock()
	p.nextToken = nil
	p.exhausted = false
	p.mu.Unlock()

	return p.LoadNext(ctx)
}

// HasMore reports whether LoadNext may yield more rows.
func (p *entryPager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.exhausted
}

// Invalidated delivers coalesced invalidate-on-write signals.
func (p *entryPager) Invalidated() <-chan string {
	return p.sub.C()
}

// Close releases the invalidation subscription.
func (p *entryPager) Close() {
	p.sub.Close()
}
