package models

import (
	"errors"
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

const (
	MinExpireDays = 1
	MaxExpireDays = 30
)

var (
	ErrNoPermissions    = errors.New("at least one permission must be granted")
	ErrNotPending       = errors.New("invitation is no longer pending")
	ErrBadTransition    = errors.New("invitation can only be accepted or rejected")
	ErrExpiryOutOfRange = errors.New("expiration must be between 1 and 30 days from now")
)

// Invitation grants its reviewer read/write access to the owner's posts,
// messages and profile. Permissions may only change while status is pending;
// accepted and rejected are terminal.
type Invitation struct {
	ID           string           `gorm:"primaryKey;type:varchar(40)" json:"id"`
	Owner        string           `gorm:"type:varchar(150);index" json:"owner"`
	Reviewer     string           `gorm:"type:varchar(150);index" json:"reviewer"`
	Status       InvitationStatus `gorm:"type:varchar(10);index" json:"status"`
	ReadPost     bool             `json:"readPost"`
	WritePost    bool             `json:"writePost"`
	ReadMessage  bool             `json:"readMessage"`
	WriteMessage bool             `json:"writeMessage"`
	ReadProfile  bool             `json:"readProfile"`
	WriteProfile bool             `json:"writeProfile"`
	ExpiresAt    time.Time        `json:"expiresAt"`
	CreatedAt    time.Time        `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt    *time.Time       `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

type permissionFlag struct {
	label string
	value *bool
}

// permissionFlags lists all six flags in display order
func (inv *Invitation) permissionFlags() []permissionFlag {
	return []permissionFlag{
		{"Read Posts", &inv.ReadPost},
		{"Write Posts", &inv.WritePost},
		{"Read Messages", &inv.ReadMessage},
		{"Write Messages", &inv.WriteMessage},
		{"Read Profile", &inv.ReadProfile},
		{"Write Profile", &inv.WriteProfile},
	}
}

// writeImpliesRead pairs each write flag with the read flag it implies
func (inv *Invitation) writeImpliesRead() [3][2]*bool {
	return [3][2]*bool{
		{&inv.WritePost, &inv.ReadPost},
		{&inv.WriteMessage, &inv.ReadMessage},
		{&inv.WriteProfile, &inv.ReadProfile},
	}
}

// NormalizePermissions forces the read flag on for every category where the
// write flag is set, regardless of what the caller supplied.
func (inv *Invitation) NormalizePermissions() {
	for _, pair := range inv.writeImpliesRead() {
		if *pair[0] {
			*pair[1] = true
		}
	}
}

func (inv *Invitation) HasAnyPermission() bool {
	for _, f := range inv.permissionFlags() {
		if *f.value {
			return true
		}
	}
	return false
}

// ValidatePermissions is run on every create and update - an all-false
// permission set is never persisted
func (inv *Invitation) ValidatePermissions() error {
	if !inv.HasAnyPermission() {
		return ErrNoPermissions
	}
	return nil
}

// PermissionLabels returns the labels of all granted permissions, in
// display order.
func (inv *Invitation) PermissionLabels() []string {
	labels := []string{}
	for _, f := range inv.permissionFlags() {
		if *f.value {
			labels = append(labels, f.label)
		}
	}
	return labels
}

func (inv *Invitation) IsPending() bool {
	return inv.Status == InvitationPending
}

// IsActive reports whether this invitation blocks a new one between the same
// owner/reviewer pair. Pending and accepted invitations block; rejected ones
// do not.
func (inv *Invitation) IsActive() bool {
	return inv.Status == InvitationPending || inv.Status == InvitationAccepted
}

func (inv *Invitation) IsExpired(now time.Time) bool {
	return now.After(inv.ExpiresAt)
}

// SetStatus performs the only allowed state transitions:
// pending->accepted and pending->rejected.
func (inv *Invitation) SetStatus(to InvitationStatus, now time.Time) error {
	if to != InvitationAccepted && to != InvitationRejected {
		return ErrBadTransition
	}
	if !inv.IsPending() {
		return ErrNotPending
	}
	inv.Status = to
	inv.UpdatedAt = &now
	return nil
}

// SetExpiry derives ExpiresAt from a days-from-now input
func (inv *Invitation) SetExpiry(days int, now time.Time) error {
	if days < MinExpireDays || days > MaxExpireDays {
		return ErrExpiryOutOfRange
	}
	inv.ExpiresAt = now.AddDate(0, 0, days)
	return nil
}
