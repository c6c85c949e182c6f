package client

import (
	"context"
	"time"

	"inviteshare/models"

	"github.com/google/uuid"
)

// AuthService implements the development auth flow over the /users and
// /sessions collections. Credentials are compared in plaintext - this mirrors
// the backend it talks to and is stated as development-only.
//
// The session is returned to the caller and threaded explicitly; there is no
// package-level current-session variable.
type AuthService struct {
	rc  *ResourceClient
	now func() time.Time
}

func NewAuthService(rc *ResourceClient) *AuthService {
	return &AuthService{rc: rc, now: time.Now}
}

// CheckAuth returns the active session, or nil when nobody is logged in.
func (a *AuthService) CheckAuth(ctx context.Context) (*models.Session, error) {
	sessions := []models.Session{}
	if err := a.rc.List(ctx, ResourceSessions, nil, &sessions); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func (a *AuthService) Register(ctx context.Context, form RegisterForm) (*models.User, *models.Session, error) {
	if err := ValidateRegisterForm(form); err != nil {
		return nil, nil, err
	}
	users := []models.User{}
	if err := a.rc.List(ctx, ResourceUsers, map[string]string{"email": form.Email}, &users); err != nil {
		return nil, nil, err
	}
	if len(users) > 0 {
		return nil, nil, &ConflictError{Message: "user with this email already exists"}
	}
	user := models.User{
		ID:        uuid.NewString(),
		Email:     form.Email,
		Password:  form.Password,
		FullName:  form.FullName,
		CreatedAt: a.now(),
	}
	created := models.User{}
	if err := a.rc.Create(ctx, ResourceUsers, &user, &created); err != nil {
		return nil, nil, err
	}
	session, err := a.createSession(ctx, created.Email)
	if err != nil {
		return nil, nil, err
	}
	return &created, session, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	if err := ValidateLoginForm(email, password); err != nil {
		return nil, nil, err
	}
	users := []models.User{}
	if err := a.rc.List(ctx, ResourceUsers, map[string]string{"email": email}, &users); err != nil {
		return nil, nil, err
	}
	if len(users) == 0 || users[0].Password != password {
		return nil, nil, ErrInvalidCredentials
	}
	session, err := a.createSession(ctx, users[0].Email)
	if err != nil {
		return nil, nil, err
	}
	return &users[0], session, nil
}

func (a *AuthService) Logout(ctx context.Context) error {
	return a.clearSessions(ctx)
}

// createSession replaces whatever the collection holds - at most one session
// exists at any time.
func (a *AuthService) createSession(ctx context.Context, email string) (*models.Session, error) {
	if err := a.clearSessions(ctx); err != nil {
		return nil, err
	}
	session := models.Session{ID: uuid.NewString(), Email: email}
	created := models.Session{}
	if err := a.rc.Create(ctx, ResourceSessions, &session, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AuthService) clearSessions(ctx context.Context) error {
	sessions := []models.Session{}
	if err := a.rc.List(ctx, ResourceSessions, nil, &sessions); err != nil {
		return err
	}
	for _, session := range sessions {
		if err := a.rc.Delete(ctx, ResourceSessions, session.ID); err != nil {
			return err
		}
	}
	return nil
}
