package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"okuyorum-admin/admin"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "okuyorum-admin",
		Short:         "OkuYorum yönetim istemcisi",
		Long:          "Bağış, talep ve etkinlik kayıtlarını OkuYorum API'si üzerinden yönetir.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetIn(a.term.rawIn)

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "API base URL (OKUYORUM_API_URL)")
	pf.StringVar(&a.home, "home", "", "session directory (OKUYORUM_HOME)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newDonationsCmd(a),
		newRequestsCmd(a),
		newEventsCmd(a),
		newKiraathanesCmd(a),
		newRegistrationsCmd(a),
		newUsersCmd(a),
		newDashboardCmd(a),
		newJournalCmd(a),
		newShellCmd(a),
	)
	return root
}

// filterFlags binds the list filter to command flags.
type filterFlags struct {
	search  string
	status  string
	kind    string
	from    string
	to      string
	min     int
	max     int
	sortBy  string
	desc    bool
	page    int
	perPage int
}

// registerFilters adds the flags for the predicates s supports. A list
// whose records have no status gets no --status flag.
func registerFilters[T any](cmd *cobra.Command, f *filterFlags, s admin.Schema[T]) {
	fl := cmd.Flags()
	if s.Text != nil {
		fl.StringVarP(&f.search, "search", "s", "", "search text")
	}
	if s.Status != nil {
		fl.StringVar(&f.status, "status", admin.All, "status filter")
	}
	if s.Type != nil {
		fl.StringVar(&f.kind, "type", admin.All, "type filter")
	}
	if s.Date != nil {
		fl.StringVar(&f.from, "from", "", "created on or after (YYYY-MM-DD)")
		fl.StringVar(&f.to, "to", "", "created on or before (YYYY-MM-DD)")
	}
	if s.Quantity != nil {
		fl.IntVar(&f.min, "min", 0, "minimum quantity")
		fl.IntVar(&f.max, "max", 0, "maximum quantity")
	}
	fl.StringVar(&f.sortBy, "sort", "", "sort field: "+strings.Join(s.SortKeys(), ", "))
	fl.BoolVar(&f.desc, "desc", false, "sort descending")
	fl.IntVar(&f.page, "page", 1, "page number")
	fl.IntVar(&f.perPage, "per-page", admin.DefaultPerPage, "rows per page")
}

// listFilter turns the flags into a filter s accepts.
func listFilter[T any](f *filterFlags, s admin.Schema[T]) (admin.Filter, error) {
	out := admin.Filter{
		Search:      f.search,
		Status:      f.status,
		Type:        f.kind,
		MinQuantity: f.min,
		MaxQuantity: f.max,
		SortBy:      f.sortBy,
		Descending:  f.desc,
	}
	var err error
	if out.From, err = parseDay(f.from, "from"); err != nil {
		return out, err
	}
	if out.To, err = parseDay(f.to, "to"); err != nil {
		return out, err
	}
	return s.Validate(out)
}

// statusArg normalises a status argument. An unknown value is passed on
// upper-cased so the detail screen reports it.
func statusArg[S ~string](raw string, parse func(string) (S, error)) string {
	if st, err := parse(raw); err == nil {
		return string(st)
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

func parseDay(v, field string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return time.Time{}, &admin.ValidationError{Field: field, Message: "Geçersiz tarih: " + v + " (YYYY-AA-GG)"}
	}
	return t, nil
}

func parseEventID(raw string) (int64, error) {
	return admin.ParseID(raw, "Geçersiz etkinlik ID'si")
}
