package client

import (
	"context"
	"errors"
	"sort"

	"inviteshare/models"
)

// InvitationFilter selects invitations per caller role. The zero value
// matches everything.
type InvitationFilter struct {
	Owner    string
	Reviewer string
}

func (f InvitationFilter) params() map[string]string {
	p := map[string]string{}
	if f.Owner != "" {
		p["owner"] = f.Owner
	}
	if f.Reviewer != "" {
		p["reviewer"] = f.Reviewer
	}
	return p
}

// Key is the canonical signature cached views and pagers are keyed by.
func (f InvitationFilter) Key() string {
	return BuildQueryString(f.params())
}

func (f InvitationFilter) Matches(invitation *models.Invitation) bool {
	if f.Owner != "" && invitation.Owner != f.Owner {
		return false
	}
	if f.Reviewer != "" && invitation.Reviewer != f.Reviewer {
		return false
	}
	return true
}

// Store hides how the collection is filtered, sorted and paged. The current
// implementation scans the whole collection client-side; a backend that pages
// natively could replace it without touching any caller.
type Store interface {
	All(ctx context.Context, filter InvitationFilter) ([]models.Invitation, error)
	Query(ctx context.Context, filter InvitationFilter, offset, limit int) (page []models.Invitation, total int, err error)
}

type InvitationStore struct {
	rc      *ResourceClient
	retries int
}

func NewInvitationStore(rc *ResourceClient) *InvitationStore {
	return &InvitationStore{rc: rc, retries: 2}
}

// All returns the full matching collection, newest first. An empty result is
// not an error. Both the full-list and the paginated views go through here so
// they can never disagree on order.
func (s *InvitationStore) All(ctx context.Context, filter InvitationFilter) ([]models.Invitation, error) {
	invitations := []models.Invitation{}
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		invitations = invitations[:0]
		if err = s.rc.List(ctx, ResourceInvitations, filter.params(), &invitations); err == nil {
			break
		}
		var te *TransportError
		if !errors.As(err, &te) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	SortByNewest(invitations)
	return invitations, nil
}

// Query slices the page [offset, offset+limit) out of the filtered collection
// and reports the total match count.
func (s *InvitationStore) Query(ctx context.Context, filter InvitationFilter, offset, limit int) ([]models.Invitation, int, error) {
	all, err := s.All(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if offset < 0 || offset >= total {
		return []models.Invitation{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	page := make([]models.Invitation, end-offset)
	copy(page, all[offset:end])
	return page, total, nil
}

// SortByNewest orders by creation time descending. Ties keep the backend's
// insertion order.
func SortByNewest(invitations []models.Invitation) {
	sort.SliceStable(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
}
