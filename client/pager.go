package client

import (
	"context"
	"sync"

	"inviteshare/models"
)

const DefaultPageSize = 10

// Pager accumulates one filtered view page by page. The in-flight guard makes
// page fetches strictly sequential, so the accumulated slice is always a
// consistent prefix of the collection.
type Pager struct {
	mu       sync.Mutex
	store    Store
	filter   InvitationFilter
	limit    int
	cursor   int // next 1-based page to fetch
	gen      int // bumped by Reset and Close; a late fetch from an older gen is dropped
	items    []models.Invitation
	total    int
	hasMore  bool
	inFlight bool
	stale    bool
	closed   bool
}

func NewPager(store Store, filter InvitationFilter, limit int) *Pager {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Pager{store: store, filter: filter, limit: limit, cursor: 1, hasMore: true}
}

// FetchNext retrieves the next page and reports whether a fetch actually
// happened. It is a no-op while another fetch is in flight, after the last
// page, or after Close. A stale pager starts over from page 1.
func (p *Pager) FetchNext(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.closed || p.inFlight || (!p.hasMore && !p.stale) {
		p.mu.Unlock()
		return false, nil
	}
	if p.stale {
		p.cursor = 1
		p.items = nil
		p.stale = false
		p.hasMore = true
	}
	cursor, gen := p.cursor, p.gen
	filter, limit := p.filter, p.limit
	p.inFlight = true
	p.mu.Unlock()

	offset := (cursor - 1) * limit
	page, total, err := p.store.Query(ctx, filter, offset, limit)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		// superseded by Reset or Close while the fetch was running
		return false, nil
	}
	p.inFlight = false
	if err != nil {
		// guard released - the next trigger may retry this page
		return false, err
	}
	p.items = append(p.items, page...)
	p.total = total
	p.hasMore = offset+len(page) < total
	p.cursor = cursor + 1
	return true, nil
}

// Trigger is the proximity signal entry point: advance exactly once, ignored
// while a fetch is running or once the collection is exhausted.
func (p *Pager) Trigger(ctx context.Context) error {
	_, err := p.FetchNext(ctx)
	return err
}

// Reset starts a new pagination session for the given filter. Previously
// fetched pages are discarded, not carried over.
func (p *Pager) Reset(filter InvitationFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.filter = filter
	p.cursor = 1
	p.items = nil
	p.total = 0
	p.hasMore = true
	p.inFlight = false
	p.stale = false
}

// MarkStale flags every fetched page for a refetch from page 1. Used by the
// cache layer after mutations instead of splicing pages in place.
func (p *Pager) MarkStale() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stale = true
}

// Close detaches the pager from its trigger. A fetch completing afterwards
// cannot touch the pager's state.
func (p *Pager) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.gen++
}

// Invitations returns a copy of all pages fetched so far.
func (p *Pager) Invitations() []models.Invitation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Invitation{}, p.items...)
}

func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *Pager) HasNextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *Pager) IsStale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stale
}

func (p *Pager) Filter() InvitationFilter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}
