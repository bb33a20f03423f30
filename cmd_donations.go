package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"okuyorum-admin/admin"
	"okuyorum-admin/models"
)

func newDonationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "donations",
		Aliases: []string{"bagislar"},
		Short:   "Bağışları yönet",
	}
	cmd.AddCommand(
		newDonationListCmd(a),
		newDonationShowCmd(a),
		newDonationStatusCmd(a),
		newDonationTrackingCmd(a),
		newDonationDeleteCmd(a),
		newDonationCreateCmd(a),
		newDonationEditCmd(a),
	)
	return cmd
}

func newDonationListCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Bağışları listele",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := listFilter(&ff, admin.DonationSchema)
			if err != nil {
				return err
			}
			list := admin.NewDonationList(a.donations, a.fb)
			list.SetFilter(f)
			if err := a.guarded(cmd.Context(), list.Refresh); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RouteDonations)
			rows, info := list.Page(ff.page, ff.perPage)
			printDonationRows(a.out, rows, a.term.width())
			pageFooter(a.out, info)
			return nil
		},
	}
	registerFilters(cmd, &ff, admin.DonationSchema)
	return cmd
}

func printDonationRows(w io.Writer, rows []admin.Row[models.Donation], width int) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Kayıt bulunamadı.")
		return
	}
	tw := titleWidth(width, 90)
	fmt.Fprintf(w, "%-8s %-*s %-20s %5s %-12s %-24s %s\n", "ID", tw, "Kitap", "Yazar", "Adet", "Tür", "Durum", "Oluşturma")
	rule(w, min(width, tw+90))
	for _, r := range rows {
		d := r.Item
		key := r.Key
		if !r.HasID {
			key = "-"
		}
		fmt.Fprintf(w, "%-8s %-*s %-20s %5d %-12s %-24s %s\n",
			key,
			tw, truncateString(d.BookTitle, tw),
			truncateString(d.Author, 20),
			d.Quantity,
			d.DonationType.Label(),
			statusCell(d.Status.Meta()),
			ago(d.CreatedAt))
	}
}

func newDonationShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Bağış ayrıntısı",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewDonationDetail(a.donations, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			a.term.setRoute(admin.DonationRoute(d.ID()))
			printDonation(a.out, d.Item())
			a.printHistory("donation", d.ID())
			return nil
		},
	}
}

func printDonation(w io.Writer, d models.Donation) {
	id, _ := d.DonationID()
	fmt.Fprintf(w, "Bağış #%d\n", id)
	rule(w, 40)
	fmt.Fprintf(w, "Kitap        : %s\n", d.BookTitle)
	fmt.Fprintf(w, "Yazar        : %s\n", orDash(d.Author))
	fmt.Fprintf(w, "Tür / Durum  : %s / %s\n", orDash(d.Genre), orDash(d.Condition))
	fmt.Fprintf(w, "Adet         : %s\n", humanize.Comma(int64(d.Quantity)))
	fmt.Fprintf(w, "Bağış türü   : %s\n", d.DonationType.Label())
	fmt.Fprintf(w, "Alıcı        : %s\n", orDash(d.Recipient()))
	fmt.Fprintf(w, "Durum        : %s\n", statusCell(d.Status.Meta()))
	if d.StatusNote != "" {
		fmt.Fprintf(w, "Durum notu   : %s\n", d.StatusNote)
	}
	fmt.Fprintf(w, "Takip kodu   : %s\n", orDash(d.TrackingCode))
	fmt.Fprintf(w, "Teslimat     : %s\n", orDash(d.DeliveryMethod))
	fmt.Fprintf(w, "Tahmini tesl.: %s\n", day(d.EstimatedDeliveryDate))
	fmt.Fprintf(w, "Görevli      : %s\n", orDash(d.HandlerName))
	fmt.Fprintf(w, "Oluşturma    : %s (%s)\n", day(d.CreatedAt), ago(d.CreatedAt))
	if d.Description != "" {
		fmt.Fprintf(w, "\n%s\n", d.Description)
	}
}

func newDonationStatusCmd(a *app) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "status <id> <STATUS>",
		Short: "Bağış durumunu değiştir",
		Long:  "Geçerli durumlar: " + donationStatusList(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewDonationDetail(a.donations, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			if err := d.SubmitStatus(cmd.Context(), statusArg(args[1], models.ParseDonationStatus), note); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.DonationRoute(d.ID()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&note, "note", "n", "", "status note")
	return cmd
}

func donationStatusList() string {
	names := make([]string, len(models.DonationStatuses))
	for i, s := range models.DonationStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func newDonationTrackingCmd(a *app) *cobra.Command {
	var (
		in  admin.TrackingInput
		eta string
	)
	cmd := &cobra.Command{
		Use:   "tracking <id>",
		Short: "Takip bilgisini ve görevliyi güncelle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if eta != "" {
				ts, err := models.ParseTimestamp(eta)
				if err != nil {
					return &admin.ValidationError{Field: "eta", Message: "Geçersiz tarih: " + eta}
				}
				in.Info.EstimatedDeliveryDate = ts
			}
			d := admin.NewDonationDetail(a.donations, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			if err := d.SubmitTracking(cmd.Context(), in); err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.DonationRoute(d.ID()))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&in.Info.TrackingCode, "code", "", "tracking code")
	fl.StringVar(&in.Info.DeliveryMethod, "method", "", "delivery method")
	fl.StringVar(&eta, "eta", "", "estimated delivery date (YYYY-MM-DD)")
	fl.StringVar(&in.HandlerName, "handler", "", "handler name")
	return cmd
}

func newDonationDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Bağışı sil",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewDonationDetail(a.donations, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			return reported(d.Delete(cmd.Context(), a.confirmer(yes)))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newDonationCreateCmd(a *app) *cobra.Command {
	var (
		d    models.Donation
		kind string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Yeni bağış oluştur",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.term.setRoute(admin.RouteNewDonation)
			return reported(a.guarded(cmd.Context(), func(ctx context.Context) error {
				if !cmd.Flags().Changed("title") {
					if err := a.promptDonation(&d, &kind); err != nil {
						return err
					}
				}
				d.DonationType = models.DonationType(strings.ToLower(kind))
				id, err := admin.CreateDonation(ctx, a.donations, a.fb, a.store, d)
				if err != nil {
					return err
				}
				a.term.setRoute(admin.DonationRoute(id))
				return nil
			}))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&d.BookTitle, "title", "", "book title")
	fl.StringVar(&d.Author, "author", "", "author")
	fl.StringVar(&d.Genre, "genre", "", "genre")
	fl.StringVar(&d.Condition, "condition", "", "condition")
	fl.IntVar(&d.Quantity, "quantity", 1, "number of copies")
	fl.StringVar(&kind, "type", string(models.DonationForIndividual), "schools, libraries or individual")
	fl.StringVar(&d.InstitutionName, "institution", "", "receiving institution")
	fl.StringVar(&d.RecipientName, "recipient", "", "receiving person")
	fl.StringVar(&d.Description, "description", "", "free text")
	return cmd
}

// promptDonation fills the new-donation form line by line. Empty answers
// keep the current value.
func (a *app) promptDonation(d *models.Donation, kind *string) error {
	fields := []struct {
		label string
		set   func(string) error
	}{
		{"Kitap adı", func(v string) error { d.BookTitle = v; return nil }},
		{"Yazar", func(v string) error { d.Author = v; return nil }},
		{"Tür", func(v string) error { d.Genre = v; return nil }},
		{"Durum (yeni/iyi/yıpranmış)", func(v string) error { d.Condition = v; return nil }},
		{fmt.Sprintf("Adet [%d]", d.Quantity), func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return &admin.ValidationError{Field: "quantity", Message: "Adet sayı olmalıdır."}
			}
			d.Quantity = n
			return nil
		}},
		{fmt.Sprintf("Bağış türü (schools/libraries/individual) [%s]", *kind), func(v string) error { *kind = v; return nil }},
		{"Kurum adı", func(v string) error { d.InstitutionName = v; return nil }},
		{"Alıcı adı", func(v string) error { d.RecipientName = v; return nil }},
	}
	for _, f := range fields {
		v, ok := a.term.ask(f.label + ": ")
		if !ok {
			return admin.ErrCancelled
		}
		if v == "" {
			continue
		}
		if err := f.set(v); err != nil {
			a.fb.Invalid(err.Error())
			return err
		}
	}
	return nil
}

func newDonationEditCmd(a *app) *cobra.Command {
	var title, author, genre, condition, description string
	var quantity int
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Bağış bilgilerini düzenle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := admin.NewDonationDetail(a.donations, a.fb, a.store)
			if err := a.loadDetail(cmd, d.Load, args[0]); err != nil {
				return err
			}
			fl := cmd.Flags()
			err := d.SubmitEdit(cmd.Context(), func(item *models.Donation) {
				if fl.Changed("title") {
					item.BookTitle = title
				}
				if fl.Changed("author") {
					item.Author = author
				}
				if fl.Changed("genre") {
					item.Genre = genre
				}
				if fl.Changed("condition") {
					item.Condition = condition
				}
				if fl.Changed("description") {
					item.Description = description
				}
				if fl.Changed("quantity") {
					item.Quantity = quantity
				}
			})
			if err != nil {
				return reported(err)
			}
			printDonation(a.out, d.Item())
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&title, "title", "", "book title")
	fl.StringVar(&author, "author", "", "author")
	fl.StringVar(&genre, "genre", "", "genre")
	fl.StringVar(&condition, "condition", "", "condition")
	fl.StringVar(&description, "description", "", "free text")
	fl.IntVar(&quantity, "quantity", 0, "number of copies")
	return cmd
}
