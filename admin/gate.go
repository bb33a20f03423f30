// Package admin implements the moderation workflow shared by every admin
// screen: an authorization gate in front of all fetches, an in-memory
// list/filter engine, a detail view whose update actions run through a small
// state machine, and a feedback layer that reports every outcome once.
package admin

import (
	"context"
	"errors"
	"sync"

	"okuyorum-admin/models"
	"okuyorum-admin/session"
)

// GateState is where the authorization check stands.
type GateState int

const (
	GatePending GateState = iota
	GateAllowed
	GateDenied
)

func (s GateState) String() string {
	switch s {
	case GateAllowed:
		return "allowed"
	case GateDenied:
		return "denied"
	}
	return "pending"
}

// RoleChecker is satisfied by *session.Authorizer.
type RoleChecker interface {
	RequireRole(ctx context.Context, role string) error
}

// Gate runs the admin check before a screen may fetch anything. It fails
// closed: a broken check is treated like a denial.
type Gate struct {
	mu       sync.Mutex
	checker  RoleChecker
	fb       *Feedback
	role     string
	fallback string
	state    GateState
}

func NewGate(checker RoleChecker, fb *Feedback) *Gate {
	return &Gate{checker: checker, fb: fb, role: models.RoleAdmin, fallback: RouteHome}
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Open performs the check and reports whether the screen may proceed. On
// denial it emits one notification and navigates to the fallback route. A
// check that resolves after ctx is cancelled is discarded and the gate stays
// pending.
func (g *Gate) Open(ctx context.Context) bool {
	g.mu.Lock()
	g.state = GatePending
	g.mu.Unlock()

	err := g.checker.RequireRole(ctx, g.role)
	if ctx.Err() != nil {
		return false
	}

	g.mu.Lock()
	if err == nil {
		g.state = GateAllowed
		g.mu.Unlock()
		return true
	}
	g.state = GateDenied
	g.mu.Unlock()

	var authErr *session.AuthError
	if errors.As(err, &authErr) && authErr.Denied() {
		g.fb.logger.Info().Str("reason", string(authErr.Reason)).Msg("admin gate denied")
		g.fb.Deny(g.fallback, "Yetkisiz erişim", "Bu sayfaya erişim yetkiniz bulunmuyor.")
		return false
	}
	g.fb.logger.Warn().Err(err).Msg("admin gate check failed")
	g.fb.Deny(g.fallback, "Hata", "Yetki kontrolü sırasında bir hata oluştu.")
	return false
}

// Guard wraps a screen's load so it only runs once the gate has opened.
func Guard(g *Gate, load func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if !g.Open(ctx) {
			if err := ctx.Err(); err != nil {
				return err
			}
			return ErrDenied
		}
		return load(ctx)
	}
}
