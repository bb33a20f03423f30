package admin

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"okuyorum-admin/session"
)

type fakeChecker struct {
	err     error
	delay   time.Duration
	settled atomic.Bool
}

func (f *fakeChecker) RequireRole(ctx context.Context, role string) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	f.settled.Store(true)
	return f.err
}

func TestGateNonAdminNavigatesAwayWithoutFetching(t *testing.T) {
	fb, rec := newFeedback()
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	list := NewDonationList(backend, fb)
	gate := NewGate(&fakeChecker{err: &session.AuthError{Reason: session.ReasonForbidden, Role: "ADMIN"}}, fb)

	err := Guard(gate, list.Refresh)(context.Background())
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("err = %v, want ErrDenied", err)
	}
	if backend.count("list") != 0 {
		t.Fatalf("resource fetched despite denial")
	}
	if gate.State() != GateDenied {
		t.Fatalf("gate state = %v", gate.State())
	}
	notes := rec.notifications()
	if len(notes) != 1 || notes[0].Kind != KindDestructive || notes[0].Title != "Yetkisiz erişim" {
		t.Fatalf("notifications = %+v", notes)
	}
	if routes := rec.navigations(); len(routes) != 1 || routes[0] != RouteHome {
		t.Fatalf("navigations = %v", routes)
	}
	if list.Loaded() || len(list.Rows()) != 0 {
		t.Fatalf("denied page must hold no data")
	}
}

func TestGateCheckFailureFailsClosed(t *testing.T) {
	fb, rec := newFeedback()
	backend := newFakeDonations(donation(1, "PENDING", "A"))
	gate := NewGate(&fakeChecker{err: &session.AuthError{Reason: session.ReasonCheckFailed, Err: errors.New("dial tcp: refused")}}, fb)

	err := Guard(gate, NewDonationList(backend, fb).Refresh)(context.Background())
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("err = %v", err)
	}
	if backend.count("list") != 0 {
		t.Fatalf("fetched after failed check")
	}
	notes := rec.notifications()
	if len(notes) != 1 || notes[0].Title != "Hata" {
		t.Fatalf("notifications = %+v", notes)
	}
	if routes := rec.navigations(); len(routes) != 1 || routes[0] != RouteHome {
		t.Fatalf("navigations = %v", routes)
	}
}

func TestGateFetchStrictlyAfterCheck(t *testing.T) {
	fb, rec := newFeedback()
	checker := &fakeChecker{delay: 20 * time.Millisecond}
	gate := NewGate(checker, fb)

	var fetchedBeforeCheck atomic.Bool
	load := func(ctx context.Context) error {
		if !checker.settled.Load() || gate.State() != GateAllowed {
			fetchedBeforeCheck.Store(true)
		}
		return nil
	}
	if err := Guard(gate, load)(context.Background()); err != nil {
		t.Fatalf("guarded load: %v", err)
	}
	if fetchedBeforeCheck.Load() {
		t.Fatalf("load ran before the gate resolved")
	}
	if len(rec.notifications()) != 0 || len(rec.navigations()) != 0 {
		t.Fatalf("allowed gate must be silent")
	}
}

func TestGateCancelledCheckIsDiscarded(t *testing.T) {
	fb, rec := newFeedback()
	gate := NewGate(&fakeChecker{delay: time.Second, err: &session.AuthError{Reason: session.ReasonForbidden}}, fb)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := Guard(gate, func(context.Context) error { called = true; return nil })(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if called || gate.State() != GatePending {
		t.Fatalf("called=%v state=%v", called, gate.State())
	}
	if len(rec.notifications()) != 0 || len(rec.navigations()) != 0 {
		t.Fatalf("cancelled check must not notify or navigate")
	}
}
