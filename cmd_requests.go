package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"okuyorum-admin/admin"
	"okuyorum-admin/models"
)

func newRequestsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"talepler"},
		Short:   "Kitap taleplerini yönet",
	}
	cmd.AddCommand(
		newRequestListCmd(a),
		newRequestShowCmd(a),
		newRequestStatusCmd(a),
		newRequestDeleteCmd(a),
	)
	return cmd
}

func newRequestListCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Talepleri listele",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := listFilter(&ff, admin.RequestSchema)
			if err != nil {
				return err
			}
			// Request types are upper case on the wire.
			f.Type = strings.ToUpper(f.Type)
			list := admin.NewRequestList(a.requests, a.fb)
			list.SetFilter(f)
			if err := a.guarded(cmd.Context(), list.Refresh); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RouteRequests)
			rows, info := list.Page(ff.page, ff.perPage)
			printRequestRows(a.out, rows, a.term.width())
			pageFooter(a.out, info)
			return nil
		},
	}
	registerFilters(cmd, &ff, admin.RequestSchema)
	return cmd
}

func printRequestRows(w io.Writer, rows []admin.Row[models.DonationRequest], width int) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Kayıt bulunamadı.")
		return
	}
	tw := titleWidth(width, 86)
	fmt.Fprintf(w, "%-8s %-*s %-22s %5s %-12s %-18s %s\n", "ID", tw, "Kitap", "Talep eden", "Adet", "Tür", "Durum", "Oluşturma")
	rule(w, min(width, tw+86))
	for _, r := range rows {
		q := r.Item
		fmt.Fprintf(w, "%-8s %-*s %-22s %5d %-12s %-18s %s\n",
			r.Key,
			tw, truncateString(q.BookTitle, tw),
			truncateString(orDash(q.RequesterName), 22),
			q.Quantity,
			q.Type.Label(),
			statusCell(q.Status.Meta()),
			ago(q.CreatedAt))
	}
}

func newRequestShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Talep ayrıntısı",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewRequestDetail(a.requests, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			a.term.setRoute(admin.RequestRoute(d.ID()))
			printRequest(a.out, d.Item())
			a.printHistory("request", d.ID())
			return nil
		},
	}
}

func printRequest(w io.Writer, q models.DonationRequest) {
	fmt.Fprintf(w, "Talep #%d\n", q.ID)
	rule(w, 40)
	fmt.Fprintf(w, "Kitap      : %s\n", q.BookTitle)
	fmt.Fprintf(w, "Yazar      : %s\n", orDash(q.Author))
	fmt.Fprintf(w, "Tür        : %s\n", orDash(q.Genre))
	fmt.Fprintf(w, "Adet       : %d\n", q.Quantity)
	fmt.Fprintf(w, "Talep türü : %s\n", q.Type.Label())
	fmt.Fprintf(w, "Talep eden : %s\n", orDash(q.RequesterName))
	if q.InstitutionName != "" {
		fmt.Fprintf(w, "Kurum      : %s\n", q.InstitutionName)
	}
	fmt.Fprintf(w, "Adres      : %s\n", orDash(q.Address))
	if q.Latitude != 0 || q.Longitude != 0 {
		fmt.Fprintf(w, "Konum      : %.5f, %.5f\n", q.Latitude, q.Longitude)
	}
	fmt.Fprintf(w, "Durum      : %s\n", statusCell(q.Status.Meta()))
	fmt.Fprintf(w, "Oluşturma  : %s (%s)\n", day(q.CreatedAt), ago(q.CreatedAt))
}

func newRequestStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <STATUS>",
		Short: "Talep durumunu değiştir",
		Long:  "Geçerli durumlar: PENDING, ACTIVE, COMPLETED, CANCELLED",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewRequestDetail(a.requests, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			if err := d.SubmitStatus(cmd.Context(), statusArg(args[1], models.ParseRequestStatus), ""); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RequestRoute(d.ID()))
			return nil
		},
	}
}

func newRequestDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Talebi sil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewRequestDetail(a.requests, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			return reported(d.Delete(cmd.Context(), a.confirmer(yes)))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
