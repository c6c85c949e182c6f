package client

import (
	"context"
	"sync"

	"inviteshare/models"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type cachedList struct {
	filter InvitationFilter
	items  []models.Invitation
}

// ViewCache keeps the two derived views of the invitation collection
// consistent after mutations without a full reload: full-list views are
// patched in place and re-sorted, paginated views are only ever marked stale
// and refetched from page 1 - page boundaries shift unpredictably under
// insertion and removal, and a refetch is cheap at this scale.
//
// Nothing here writes optimistically. Apply* is called strictly after the
// backend confirmed the mutation, so a failure never needs a rollback.
type ViewCache struct {
	store  Store
	lists  cmap.ConcurrentMap[string, cachedList]
	mu     sync.Mutex
	pagers []*Pager
}

func NewViewCache(store Store) *ViewCache {
	return &ViewCache{store: store, lists: cmap.New[cachedList]()}
}

// List returns the full-list view for the filter, fetched through the cache.
func (vc *ViewCache) List(ctx context.Context, filter InvitationFilter) ([]models.Invitation, error) {
	if entry, ok := vc.lists.Get(filter.Key()); ok {
		return append([]models.Invitation{}, entry.items...), nil
	}
	all, err := vc.store.All(ctx, filter)
	if err != nil {
		return nil, err
	}
	vc.lists.Set(filter.Key(), cachedList{filter: filter, items: all})
	return append([]models.Invitation{}, all...), nil
}

// NewPager hands out a pager registered for staleness marks. Release it with
// ReleasePager when its view goes away.
func (vc *ViewCache) NewPager(filter InvitationFilter, limit int) *Pager {
	p := NewPager(vc.store, filter, limit)
	vc.mu.Lock()
	vc.pagers = append(vc.pagers, p)
	vc.mu.Unlock()
	return p
}

func (vc *ViewCache) ReleasePager(p *Pager) {
	vc.mu.Lock()
	for i, other := range vc.pagers {
		if other == p {
			vc.pagers = append(vc.pagers[:i], vc.pagers[i+1:]...)
			break
		}
	}
	vc.mu.Unlock()
	p.Close()
}

// ApplyCreate prepends the new record to every matching full-list view and
// marks matching pagers stale.
func (vc *ViewCache) ApplyCreate(invitation models.Invitation) {
	for _, key := range vc.lists.Keys() {
		entry, ok := vc.lists.Get(key)
		if !ok || !entry.filter.Matches(&invitation) {
			continue
		}
		entry.items = append([]models.Invitation{invitation}, entry.items...)
		vc.lists.Set(key, entry)
	}
	vc.markStale(invitation)
}

// ApplyUpdate replaces the record by id in every full-list view holding it,
// then re-sorts - an update can change recency ordering.
func (vc *ViewCache) ApplyUpdate(invitation models.Invitation) {
	for _, key := range vc.lists.Keys() {
		entry, ok := vc.lists.Get(key)
		if !ok {
			continue
		}
		replaced := false
		for i := range entry.items {
			if entry.items[i].ID == invitation.ID {
				entry.items[i] = invitation
				replaced = true
			}
		}
		if !replaced {
			continue
		}
		SortByNewest(entry.items)
		vc.lists.Set(key, entry)
	}
	vc.markStale(invitation)
}

// ApplyDelete removes the record from every full-list view, preserving order.
func (vc *ViewCache) ApplyDelete(invitation models.Invitation) {
	for _, key := range vc.lists.Keys() {
		entry, ok := vc.lists.Get(key)
		if !ok {
			continue
		}
		kept := entry.items[:0:0]
		for _, item := range entry.items {
			if item.ID != invitation.ID {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(entry.items) {
			continue
		}
		entry.items = kept
		vc.lists.Set(key, entry)
	}
	vc.markStale(invitation)
}

func (vc *ViewCache) markStale(invitation models.Invitation) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	for _, p := range vc.pagers {
		filter := p.Filter()
		if filter.Matches(&invitation) {
			p.MarkStale()
		}
	}
}
