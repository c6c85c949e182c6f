package client

import (
	"context"
	"time"

	"inviteshare/models"

	"github.com/google/uuid"
)

// InvitationForm is what the create dialog submits.
type InvitationForm struct {
	Owner        string `validate:"required,email"`
	Reviewer     string `validate:"required,email"`
	ReadPost     bool
	WritePost    bool
	ReadMessage  bool
	WriteMessage bool
	ReadProfile  bool
	WriteProfile bool
	ExpireInDays int `validate:"gte=1,lte=30"`
}

// PermissionUpdate carries the six flags for an owner-side edit.
type PermissionUpdate struct {
	ReadPost     bool
	WritePost    bool
	ReadMessage  bool
	WriteMessage bool
	ReadProfile  bool
	WriteProfile bool
}

// InvitationService drives the invitation lifecycle end to end: validate and
// normalize locally, persist through the resource client, then reconcile the
// cached views. Cache writes happen strictly after confirmed success.
type InvitationService struct {
	rc     *ResourceClient
	store  Store
	cache  *ViewCache
	notify Notifier
	now    func() time.Time
}

func NewInvitationService(rc *ResourceClient, notify Notifier) *InvitationService {
	if notify == nil {
		notify = LogNotifier{}
	}
	store := NewInvitationStore(rc)
	return &InvitationService{
		rc:     rc,
		store:  store,
		cache:  NewViewCache(store),
		notify: notify,
		now:    time.Now,
	}
}

func (s *InvitationService) Cache() *ViewCache { return s.cache }

// Pager returns a pager over the given view, registered for cache
// invalidation.
func (s *InvitationService) Pager(filter InvitationFilter, limit int) *Pager {
	return s.cache.NewPager(filter, limit)
}

// Create validates, normalizes and persists a new pending invitation.
// Validation failures never reach the network; a conflicting active
// invitation rejects the whole operation with nothing persisted.
func (s *InvitationService) Create(ctx context.Context, form InvitationForm) (*models.Invitation, error) {
	invitation, err := s.create(ctx, form)
	if err != nil {
		s.notify.Failure("Failed to create invitation: " + err.Error())
		return nil, err
	}
	s.notify.Success("Invitation created successfully")
	return invitation, nil
}

func (s *InvitationService) create(ctx context.Context, form InvitationForm) (*models.Invitation, error) {
	if err := ValidateInvitationForm(form); err != nil {
		return nil, err
	}
	now := s.now()
	invitation := models.Invitation{
		ID:           uuid.NewString(),
		Owner:        form.Owner,
		Reviewer:     form.Reviewer,
		Status:       models.InvitationPending,
		ReadPost:     form.ReadPost,
		WritePost:    form.WritePost,
		ReadMessage:  form.ReadMessage,
		WriteMessage: form.WriteMessage,
		ReadProfile:  form.ReadProfile,
		WriteProfile: form.WriteProfile,
		CreatedAt:    now,
	}
	if err := invitation.ValidatePermissions(); err != nil {
		return nil, &ValidationError{Field: "permissions", Reason: err.Error()}
	}
	invitation.NormalizePermissions()
	if err := invitation.SetExpiry(form.ExpireInDays, now); err != nil {
		return nil, &ValidationError{Field: "expireInDays", Reason: err.Error()}
	}
	existing, err := s.store.All(ctx, InvitationFilter{Owner: form.Owner})
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Reviewer == form.Reviewer && existing[i].IsActive() {
			return nil, &ConflictError{Message: "active invitation already exists for " + form.Reviewer}
		}
	}
	created := models.Invitation{}
	if err := s.rc.Create(ctx, ResourceInvitations, &invitation, &created); err != nil {
		return nil, err
	}
	s.cache.ApplyCreate(created)
	return &created, nil
}

// UpdatePermissions is the owner-side edit: permissions only, pending only,
// with the same validation and normalization as creation.
func (s *InvitationService) UpdatePermissions(ctx context.Context, id string, perms PermissionUpdate) (*models.Invitation, error) {
	invitation, err := s.updatePermissions(ctx, id, perms)
	if err != nil {
		s.notify.Failure("Failed to update invitation")
		return nil, err
	}
	s.notify.Success("Invitation updated successfully")
	return invitation, nil
}

func (s *InvitationService) updatePermissions(ctx context.Context, id string, perms PermissionUpdate) (*models.Invitation, error) {
	invitation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invitation.IsPending() {
		return nil, models.ErrNotPending
	}
	invitation.ReadPost = perms.ReadPost
	invitation.WritePost = perms.WritePost
	invitation.ReadMessage = perms.ReadMessage
	invitation.WriteMessage = perms.WriteMessage
	invitation.ReadProfile = perms.ReadProfile
	invitation.WriteProfile = perms.WriteProfile
	if err := invitation.ValidatePermissions(); err != nil {
		return nil, &ValidationError{Field: "permissions", Reason: err.Error()}
	}
	invitation.NormalizePermissions()
	now := s.now()
	invitation.UpdatedAt = &now
	updated := models.Invitation{}
	if err := s.rc.Replace(ctx, ResourceInvitations, id, invitation, &updated); err != nil {
		return nil, err
	}
	s.cache.ApplyUpdate(updated)
	return &updated, nil
}

// Accept is the reviewer-side transition pending->accepted.
func (s *InvitationService) Accept(ctx context.Context, id string) (*models.Invitation, error) {
	return s.setStatus(ctx, id, models.InvitationAccepted)
}

// Reject is the reviewer-side transition pending->rejected.
func (s *InvitationService) Reject(ctx context.Context, id string) (*models.Invitation, error) {
	return s.setStatus(ctx, id, models.InvitationRejected)
}

func (s *InvitationService) setStatus(ctx context.Context, id string, to models.InvitationStatus) (*models.Invitation, error) {
	invitation, err := s.overwriteStatus(ctx, id, to)
	if err != nil {
		s.notify.Failure("Failed to update invitation")
		return nil, err
	}
	s.notify.Success("Invitation " + string(to))
	return invitation, nil
}

// overwriteStatus does not re-run permission validation - a status change is
// a direct overwrite, allowed only out of pending.
func (s *InvitationService) overwriteStatus(ctx context.Context, id string, to models.InvitationStatus) (*models.Invitation, error) {
	invitation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invitation.SetStatus(to, s.now()); err != nil {
		return nil, err
	}
	updated := models.Invitation{}
	if err := s.rc.Replace(ctx, ResourceInvitations, id, invitation, &updated); err != nil {
		return nil, err
	}
	s.cache.ApplyUpdate(updated)
	return &updated, nil
}

// Cancel is the owner's hard delete. It is not a status change and leaves no
// tombstone.
func (s *InvitationService) Cancel(ctx context.Context, id string) error {
	invitation, err := s.Get(ctx, id)
	if err == nil {
		err = s.rc.Delete(ctx, ResourceInvitations, id)
	}
	if err != nil {
		s.notify.Failure("Failed to delete invitation")
		return err
	}
	s.cache.ApplyDelete(*invitation)
	s.notify.Success("Invitation deleted successfully")
	return nil
}

// Get fetches one invitation through the list-with-filter path.
func (s *InvitationService) Get(ctx context.Context, id string) (*models.Invitation, error) {
	invitations := []models.Invitation{}
	if err := s.rc.List(ctx, ResourceInvitations, map[string]string{"id": id}, &invitations); err != nil {
		return nil, err
	}
	if len(invitations) == 0 {
		return nil, &NotFoundError{Resource: ResourceInvitations, ID: id}
	}
	return &invitations[0], nil
}

// EligibleReviewers returns every user the owner may still invite: everyone
// except the owner and anyone the owner already has an invitation out to.
func (s *InvitationService) EligibleReviewers(ctx context.Context, owner string) ([]models.User, error) {
	users := []models.User{}
	if err := s.rc.List(ctx, ResourceUsers, nil, &users); err != nil {
		return nil, err
	}
	invitations, err := s.store.All(ctx, InvitationFilter{Owner: owner})
	if err != nil {
		return nil, err
	}
	excluded := map[string]bool{owner: true}
	for i := range invitations {
		excluded[invitations[i].Reviewer] = true
	}
	eligible := []models.User{}
	for _, user := range users {
		if !excluded[user.Email] {
			eligible = append(eligible, user)
		}
	}
	return eligible, nil
}
