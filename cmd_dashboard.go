package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"okuyorum-admin/admin"
	"okuyorum-admin/models"
)

// dashboard is the admin home: the three independent loads run together once
// the gate has opened.
type dashboard struct {
	donations []models.Donation
	requests  []models.DonationRequest
	stats     models.Statistics
}

func (a *app) loadDashboard(ctx context.Context) (*dashboard, error) {
	var d dashboard
	err := a.guarded(ctx, func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			resp, err := a.donations.GetAllDonations(ctx)
			if err != nil {
				return err
			}
			d.donations = resp.Data
			return nil
		})
		g.Go(func() error {
			resp, err := a.requests.GetAllRequests(ctx)
			if err != nil {
				return err
			}
			d.requests = resp.Data
			return nil
		})
		g.Go(func() error {
			resp, err := a.stats.Summary(ctx)
			if err != nil {
				return err
			}
			d.stats = resp.Data
			return nil
		})
		if err := g.Wait(); err != nil {
			a.fb.Failure("Veriler yüklenemedi", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Yönetim özeti",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDashboard(cmd.Context())
			if err != nil {
				return reported(err)
			}
			a.term.setRoute(admin.RouteDashboard)
			printDashboard(a.out, d)
			return nil
		},
	}
}

func printDashboard(w io.Writer, d *dashboard) {
	fmt.Fprintln(w, "OkuYorum yönetim özeti")
	rule(w, 44)
	fmt.Fprintf(w, "%-28s %15s\n", "Bağış", humanize.Comma(int64(d.stats.TotalDonations)))
	fmt.Fprintf(w, "%-28s %15s\n", "Bağışlanan kitap", humanize.Comma(int64(d.stats.BooksDonated)))
	fmt.Fprintf(w, "%-28s %15s\n", "Talep", humanize.Comma(int64(d.stats.TotalRequests)))
	fmt.Fprintf(w, "%-28s %15s\n", "Kullanıcı", humanize.Comma(int64(d.stats.TotalUsers)))
	fmt.Fprintf(w, "%-28s %15s\n", "Etkinlik", humanize.Comma(int64(d.stats.TotalEvents)))

	counts := make(map[models.DonationStatus]int)
	for _, dn := range d.donations {
		counts[dn.Status]++
	}
	fmt.Fprintln(w, "\nBağış durumları")
	rule(w, 44)
	for _, s := range models.DonationStatuses {
		if counts[s] == 0 {
			continue
		}
		fmt.Fprintf(w, "%-28s %15d\n", statusCell(s.Meta()), counts[s])
	}

	pending := admin.Apply(admin.RequestSchema, d.requests, admin.Filter{Status: string(models.RequestPending), SortBy: "createdAt"})
	fmt.Fprintf(w, "\nBekleyen talep: %d\n", len(pending))
	for i, r := range pending {
		if i == 5 {
			fmt.Fprintf(w, "  … ve %d talep daha\n", len(pending)-5)
			break
		}
		fmt.Fprintf(w, "  #%-6d %-36s %s\n", r.ID, truncateString(r.BookTitle, 36), ago(r.CreatedAt))
	}
}

func newJournalCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Bu makineden yapılan son işlemler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.printf("Kayıtlı işlem yok.\n")
				return nil
			}
			a.printf("%-16s %-13s %-8s %-9s %-12s %s\n", "Zaman", "Kaynak", "ID", "İşlem", "Sonuç", "Ayrıntı")
			rule(a.out, 100)
			for _, e := range entries {
				a.printf("%-16s %-13s %-8d %-9s %-12s %s\n",
					humanize.Time(e.At), e.Resource, e.ResourceID, e.Action, e.Outcome, truncateString(e.Detail, 50))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "number of entries")
	return cmd
}
