package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"okuyorum-admin/api"
	"okuyorum-admin/config"
)

// Routes the feedback layer navigates to on its own. Neither needs admin
// rights, so a denied user is never sent to another gated page.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// Kind separates good news from destructive notifications.
type Kind int

const (
	KindSuccess Kind = iota
	KindDestructive
)

// Notification is one fire-and-forget message to the user.
type Notification struct {
	Kind    Kind
	Title   string
	Message string
}

// Notifier shows notifications. Implementations must not block.
type Notifier interface {
	Notify(Notification)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(route string)
}

// Confirmer asks the user a yes/no question before a destructive call.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Feedback is the single way admin screens talk back to the user: every
// mutation ends in exactly one Success or Failure, every denial in exactly
// one notification followed by navigation.
type Feedback struct {
	notifier   Notifier
	nav        Navigator
	loginDelay time.Duration
	schedule   func(time.Duration, func())
	logger     *config.Logger
}

func NewFeedback(n Notifier, nav Navigator, logger *config.Logger) *Feedback {
	if logger == nil {
		logger = config.Discard()
	}
	return &Feedback{
		notifier:   n,
		nav:        nav,
		loginDelay: 2 * time.Second,
		schedule:   func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		logger:     logger,
	}
}

// WithLoginDelay sets how long a 401 message stays before jumping to /login.
func (f *Feedback) WithLoginDelay(d time.Duration) *Feedback {
	f.loginDelay = d
	return f
}

func (f *Feedback) Logger() *config.Logger { return f.logger }

func (f *Feedback) Success(title, message string) {
	f.notifier.Notify(Notification{Kind: KindSuccess, Title: title, Message: message})
}

// Invalid reports a local validation problem. It never navigates.
func (f *Feedback) Invalid(message string) {
	f.notifier.Notify(Notification{Kind: KindDestructive, Title: "Geçersiz giriş", Message: message})
}

// Failure reports err. For 401 it also schedules a delayed move to /login.
func (f *Feedback) Failure(title string, err error) {
	f.logger.Debug().Err(err).Str("title", title).Msg("admin action failed")
	f.notifier.Notify(Notification{Kind: KindDestructive, Title: title, Message: ErrorMessage(err)})
	if api.StatusCode(err) == http.StatusUnauthorized {
		f.schedule(f.loginDelay, func() { f.nav.Navigate(RouteLogin) })
	}
}

// Deny notifies once and then navigates to route.
func (f *Feedback) Deny(route, title, message string) {
	f.notifier.Notify(Notification{Kind: KindDestructive, Title: title, Message: message})
	f.nav.Navigate(route)
}

func (f *Feedback) Navigate(route string) { f.nav.Navigate(route) }

// ErrorMessage turns any error from the admin layer into user-facing text.
func ErrorMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var pErr *PartialUpdateError
	if errors.As(err, &pErr) {
		return pErr.Error()
	}
	switch api.StatusCode(err) {
	case http.StatusUnauthorized:
		return "Bu işlem için giriş yapmalısınız."
	case http.StatusForbidden:
		return "Bu işlem için yetkiniz bulunmuyor."
	case http.StatusNotFound:
		return "Kayıt bulunamadı."
	}
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return "Beklenmeyen bir hata oluştu. Lütfen tekrar deneyin."
}
