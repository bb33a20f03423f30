package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"okuyorum-admin/admin"
	"okuyorum-admin/api"
	"okuyorum-admin/config"
	"okuyorum-admin/services"
	"okuyorum-admin/session"
)

// app holds everything a command needs. It is set up once per process so the
// shell can run many commands against the same session.
type app struct {
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
	term   *terminal

	cfg    *config.Config
	logger config.Logger
	store  *session.Store
	client *api.Client
	auth   *session.Authorizer
	fb     *admin.Feedback

	authSvc       *services.AuthService
	users         *services.UserService
	donations     *services.DonationService
	requests      *services.RequestService
	events        *services.KiraathaneEventService
	kiraathanes   *services.KiraathaneService
	registrations *services.RegistrationService
	stats         *services.StatisticsService

	// flag overrides
	apiURL  string
	home    string
	verbose bool
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	sc := bufio.NewScanner(in)
	return &app{in: sc, out: out, errOut: errOut, term: newTerminal(sc, in, out)}
}

// init loads config and opens the session store. Safe to call repeatedly.
func (a *app) init() error {
	if a.store != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.home != "" {
		cfg.Home = a.home
	}
	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.logger = config.NewLogger(a.errOut, cfg.AppEnv, level)

	store, err := session.Open(cfg.SessionPath(), cfg.KeyPath())
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	a.store = store

	a.client = api.NewClient(api.Options{
		BaseURL: cfg.APIURL,
		Tokens:  store,
		Logger:  &a.logger,
		Timeout: cfg.HTTPTimeout,
	})
	a.authSvc = services.NewAuthService(a.client)
	a.users = services.NewUserService(a.client)
	a.donations = services.NewDonationService(a.client)
	a.requests = services.NewRequestService(a.client)
	a.events = services.NewKiraathaneEventService(a.client)
	a.kiraathanes = services.NewKiraathaneService(a.client)
	a.registrations = services.NewRegistrationService(a.client)
	a.stats = services.NewStatisticsService(a.client)

	a.auth = session.NewAuthorizer(store, a.users)
	a.fb = admin.NewFeedback(a.term, a.term, &a.logger).WithLoginDelay(cfg.LoginRedirect)

	a.logger.Debug().Str("api", cfg.APIURL).Str("home", cfg.Home).Msg("client ready")
	return nil
}

func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// guarded runs load only after the admin check passes.
func (a *app) guarded(ctx context.Context, load func(ctx context.Context) error) error {
	return admin.Guard(admin.NewGate(a.auth, a.fb), load)(ctx)
}

// loadDetail opens the gate and loads one record by its raw id argument.
func (a *app) loadDetail(cmd *cobra.Command, load func(ctx context.Context, rawID string) error, rawID string) error {
	err := a.guarded(cmd.Context(), func(ctx context.Context) error { return load(ctx, rawID) })
	return reported(err)
}

// confirmer skips the prompt when the user passed --yes.
func (a *app) confirmer(yes bool) admin.Confirmer {
	if yes {
		return alwaysYes{}
	}
	return a.term
}

type alwaysYes struct{}

func (alwaysYes) Confirm(context.Context, string) bool { return true }

// printHistory lists what this machine has done to a record.
func (a *app) printHistory(resource string, id int64) {
	entries, err := a.store.ForResource(resource, id)
	if err != nil {
		a.logger.Warn().Err(err).Msg("read journal")
		return
	}
	if len(entries) == 0 {
		return
	}
	a.printf("\nİşlem geçmişi (bu makine):\n")
	for _, e := range entries {
		a.printf("  %s  %-9s %-12s %s\n", humanize.Time(e.At), e.Action, e.Outcome, e.Detail)
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

