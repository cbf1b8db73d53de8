package invalidation

import "sync"

// Bus is a coarse-grained invalidate-on-write signal. Repositories publish the
// name of a table after any successful write to it; live readers subscribed to
// that table are told to refresh from the first page. Invalidation is by table,
// not by row, which causes some unnecessary refreshes but is simple and correct.
type Bus struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// Subscription is one reader's registration on the bus. Signals are coalesced:
// the channel has capacity one, so a reader that has not yet consumed a signal
// does not buffer further ones. Readers must treat a signal as "restart from
// the head", never as an incremental delta.
type Subscription struct {
	bus    *Bus
	tables map[string]struct{}
	ch     chan string

	closeOnce sync.Once
}

// NewBus creates an empty invalidation bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a reader for write signals on the given tables.
// The caller must Close the subscription when its consumer is torn down.
func (b *Bus) Subscribe(tables ...string) *Subscription {
	sub := &Subscription{
		bus:    b,
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan string, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Publish signals every subscription watching the given table. It never blocks:
// a subscription whose pending signal has not been consumed is skipped.
func (b *Bus) Publish(table string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if _, watching := sub.tables[table]; !watching {
			continue
		}
		select {
		case sub.ch <- table:
		default:
		}
	}
}

// C returns the channel on which invalidation signals are delivered. The value
// received is the name of the table that was written.
func (s *Subscription) C() <-chan string {
	return s.ch
}

// Close deregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.ch)
	})
}
