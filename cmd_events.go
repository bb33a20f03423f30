package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"okuyorum-admin/admin"
	"okuyorum-admin/models"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"etkinlikler"},
		Short:   "Kıraathane etkinlikleri",
	}
	var ff filterFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "Etkinlikleri listele",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := listFilter(&ff, admin.EventSchema)
			if err != nil {
				return err
			}
			f.Type = strings.ToUpper(f.Type)
			load := func(ctx context.Context) ([]models.KiraathaneEvent, error) {
				resp, err := a.events.GetAllEvents(ctx)
				if err != nil {
					return nil, err
				}
				return resp.Data, nil
			}
			view := admin.NewListView("events", admin.EventSchema, load, a.fb)
			view.SetFilter(f)
			if err := a.guarded(cmd.Context(), view.Refresh); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RouteEvents)

			rows, info := view.Page(ff.page, ff.perPage)
			if len(rows) == 0 {
				a.printf("Kayıt bulunamadı.\n")
				return nil
			}
			tw := titleWidth(a.term.width(), 70)
			a.printf("%-6s %-*s %-16s %-12s %10s %s\n", "ID", tw, "Başlık", "Tür", "Tarih", "Boş yer", "Kayıtlar")
			rule(a.out, tw+70)
			for _, r := range rows {
				e := r.Item
				a.printf("%-6s %-*s %-16s %-12s %10s %s\n",
					r.Key,
					tw, truncateString(e.Title, tw),
					e.EventType.Label(),
					day(e.EventDate),
					fmt.Sprintf("%d/%d", e.SeatsLeft(), e.Capacity),
					"registrations list "+r.Key)
			}
			pageFooter(a.out, info)
			return nil
		},
	}
	registerFilters(list, &ff, admin.EventSchema)

	show := &cobra.Command{
		Use:   "show <eventId>",
		Short: "Etkinlik ayrıntısı",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEventID(args[0])
			if err != nil {
				a.fb.Invalid(err.Error())
				return reported(err)
			}
			var e models.KiraathaneEvent
			err = a.guarded(cmd.Context(), func(ctx context.Context) error {
				resp, err := a.events.GetEventByID(ctx, id)
				if err != nil {
					a.fb.Failure("Kayıt yüklenemedi", err)
					return err
				}
				e = resp.Data
				return nil
			})
			if err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.EventRoute(id))
			printEvent(a.out, e)
			return nil
		},
	}
	cmd.AddCommand(list, show)
	return cmd
}

func printEvent(w io.Writer, e models.KiraathaneEvent) {
	fmt.Fprintf(w, "Etkinlik #%d\n", e.ID)
	fmt.Fprintf(w, "  Başlık     : %s\n", e.Title)
	fmt.Fprintf(w, "  Tür        : %s\n", e.EventType.Label())
	fmt.Fprintf(w, "  Başlangıç  : %s\n", day(e.EventDate))
	fmt.Fprintf(w, "  Bitiş      : %s\n", day(e.EndDate))
	fmt.Fprintf(w, "  Kontenjan  : %d/%d boş\n", e.SeatsLeft(), e.Capacity)
	fmt.Fprintf(w, "  Kıraathane : #%d\n", e.KiraathaneID)
	if e.Description != "" {
		fmt.Fprintf(w, "  Açıklama   : %s\n", e.Description)
	}
	fmt.Fprintf(w, "  Kayıtlar   : registrations list %d\n", e.ID)
}

func newKiraathanesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kiraathanes",
		Short: "Kıraathaneler",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Kıraathaneleri listele",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []models.Kiraathane
			err := a.guarded(cmd.Context(), func(ctx context.Context) error {
				resp, err := a.kiraathanes.GetAllKiraathanes(ctx)
				if err != nil {
					a.fb.Failure("Veriler yüklenemedi", err)
					return err
				}
				items = resp.Data
				return nil
			})
			if err != nil {
				return reported(err)
			}
			if len(items) == 0 {
				a.printf("Kayıt bulunamadı.\n")
				return nil
			}
			a.printf("%-6s %-32s %-16s %s\n", "ID", "Ad", "Şehir", "Adres")
			rule(a.out, 90)
			for _, k := range items {
				a.printf("%-6d %-32s %-16s %s\n", k.ID, truncateString(k.Name, 32), orDash(k.City), orDash(k.Address))
			}
			a.printf("\nToplam %s kıraathane\n", humanize.Comma(int64(len(items))))
			return nil
		},
	})
	return cmd
}

func newRegistrationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"kayitlar"},
		Short:   "Etkinlik kayıtları ve katılım",
	}

	var ff filterFlags
	list := &cobra.Command{
		Use:   "list <eventId>",
		Short: "Bir etkinliğin kayıtlarını listele",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				a.fb.Invalid(err.Error())
				return reported(err)
			}
			f, err := listFilter(&ff, admin.RegistrationSchema)
			if err != nil {
				return err
			}
			view := admin.NewRegistrationList(a.registrations, eventID, a.fb)
			view.SetFilter(f)
			if err := a.guarded(cmd.Context(), view.Refresh); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RegistrationsRoute(eventID))

			rows, info := view.Page(ff.page, ff.perPage)
			if len(rows) == 0 {
				a.printf("Kayıt bulunamadı.\n")
				return nil
			}
			a.printf("%-6s %-24s %-20s %-14s %s\n", "ID", "Kullanıcı", "Katılım", "Kayıt", "Not")
			rule(a.out, 90)
			for _, r := range rows {
				g := r.Item
				a.printf("%-6s %-24s %-20s %-14s %s\n",
					r.Key,
					truncateString(orDash(g.Username), 24),
					statusCell(g.AttendanceStatus.Meta()),
					ago(g.RegisteredAt),
					g.AttendanceNotes)
			}
			pageFooter(a.out, info)
			return nil
		},
	}
	registerFilters(list, &ff, admin.RegistrationSchema)

	var notes string
	status := &cobra.Command{
		Use:   "status <eventId> <registrationId> <STATUS>",
		Short: "Katılım durumunu değiştir",
		Long:  "Geçerli durumlar: REGISTERED, CONFIRMED, ATTENDED, NO_SHOW, CANCELLED",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseEventID(args[0])
			if err != nil {
				a.fb.Invalid(err.Error())
				return reported(err)
			}
			d := admin.NewRegistrationDetail(a.registrations, eventID, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[1]); err != nil {
				return err
			}
			if err := d.SubmitStatus(cmd.Context(), statusArg(args[2], models.ParseAttendanceStatus), notes); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RegistrationsRoute(eventID))
			return nil
		},
	}
	status.Flags().StringVarP(&notes, "notes", "n", "", "attendance notes")

	cmd.AddCommand(list, status)
	return cmd
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"kullanicilar"},
		Short:   "Kullanıcılar",
	}
	var ff filterFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "Kullanıcıları listele",
		Long:  "--status rol filtresidir (ADMIN, USER).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := listFilter(&ff, admin.UserSchema)
			if err != nil {
				return err
			}
			load := func(ctx context.Context) ([]models.User, error) {
				resp, err := a.users.GetAllUsers(ctx)
				if err != nil {
					return nil, err
				}
				return resp.Data, nil
			}
			view := admin.NewListView("users", admin.UserSchema, load, a.fb)
			view.SetFilter(f)
			if err := a.guarded(cmd.Context(), view.Refresh); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RouteUsers)

			rows, info := view.Page(ff.page, ff.perPage)
			if len(rows) == 0 {
				a.printf("Kayıt bulunamadı.\n")
				return nil
			}
			a.printf("%-6s %-24s %-32s %-8s %s\n", "ID", "Kullanıcı adı", "E-posta", "Rol", "Kayıt")
			rule(a.out, 90)
			for _, r := range rows {
				u := r.Item
				a.printf("%-6s %-24s %-32s %-8s %s\n", r.Key, truncateString(u.Username, 24), truncateString(orDash(u.Email), 32), u.Role, ago(u.Created))
			}
			pageFooter(a.out, info)
			return nil
		},
	}
	registerFilters(list, &ff, admin.UserSchema)
	cmd.AddCommand(list)
	return cmd
}
