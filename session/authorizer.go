package session

import (
	"context"
	"errors"
	"fmt"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// Reason classifies an authorization failure.
type Reason string

const (
	ReasonNotLoggedIn Reason = "not-logged-in"
	ReasonForbidden   Reason = "forbidden"
	ReasonCheckFailed Reason = "check-failed"
)

// AuthError is the error side of RequireRole.
type AuthError struct {
	Reason Reason
	Role   string
	Err    error
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case ReasonNotLoggedIn:
		return "not logged in"
	case ReasonForbidden:
		return fmt.Sprintf("role %s required", e.Role)
	}
	return fmt.Sprintf("authorization check failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Denied is true for a definite "no"; false means the check itself broke.
func (e *AuthError) Denied() bool { return e.Reason != ReasonCheckFailed }

// UserLookup asks the backend who the current token belongs to.
type UserLookup interface {
	Me(ctx context.Context) (*api.Response[models.User], error)
}

// Authorizer is the single place admin views go to for "who am I" and "may
// I". It replaces per-page token and role checks.
type Authorizer struct {
	store *Store
	users UserLookup
}

func NewAuthorizer(store *Store, users UserLookup) *Authorizer {
	return &Authorizer{store: store, users: users}
}

// CurrentUser returns the locally known session, or nil when nobody is
// logged in or the token has expired.
func (a *Authorizer) CurrentUser() *Session {
	token, err := a.store.Token()
	if err != nil || token == "" {
		return nil
	}
	s, ok := decodeToken(token)
	if !ok {
		// Opaque token: all we know is the id saved at login.
		id, _ := a.store.UserID()
		return &Session{UserID: id}
	}
	if s.Expired(a.store.now()) {
		return nil
	}
	if s.UserID == 0 {
		s.UserID, _ = a.store.UserID()
	}
	return &s
}

// RequireRole returns nil only when the backend confirms the caller holds
// role. Any other outcome is an *AuthError.
func (a *Authorizer) RequireRole(ctx context.Context, role string) error {
	if a.CurrentUser() == nil {
		return &AuthError{Reason: ReasonNotLoggedIn, Role: role}
	}
	resp, err := a.users.Me(ctx)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return &AuthError{Reason: ReasonNotLoggedIn, Role: role, Err: err}
	case errors.Is(err, api.ErrForbidden):
		return &AuthError{Reason: ReasonForbidden, Role: role, Err: err}
	case err != nil:
		return &AuthError{Reason: ReasonCheckFailed, Role: role, Err: err}
	}
	if resp.Data.Role != role {
		return &AuthError{Reason: ReasonForbidden, Role: role}
	}
	return nil
}

// IsAdmin is RequireRole(ADMIN) flattened to the yes/no/error shape: a
// definite denial is (false, nil), a broken check is (false, err).
func (a *Authorizer) IsAdmin(ctx context.Context) (bool, error) {
	err := a.RequireRole(ctx, models.RoleAdmin)
	if err == nil {
		return true, nil
	}
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Denied() {
		return false, nil
	}
	return false, err
}
