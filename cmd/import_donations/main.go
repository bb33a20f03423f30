package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"okuyorum-admin/api"
	"okuyorum-admin/config"
	"okuyorum-admin/models"
	"okuyorum-admin/services"
	"okuyorum-admin/session"
)

// creator is the part of services.DonationService the importer needs.
type creator interface {
	CreateDonation(ctx context.Context, d models.Donation) (*api.Response[models.Donation], error)
}

type result struct {
	success int
	failed  int
	created []models.Donation
}

func main() {
	var dryRun bool
	cmd := &cobra.Command{
		Use:          "import_donations [file.json]",
		Short:        "Bulk-create donations from a JSON array",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "donations.json"
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), path, dryRun, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without calling the API")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, dryRun bool, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.AppEnv, cfg.LogLevel)

	donations, err := readDonations(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Read %d donation(s) from %s\n", len(donations), path)
	if dryRun {
		return nil
	}

	store, err := session.Open(cfg.SessionPath(), cfg.KeyPath())
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer store.Close()
	if token, _ := store.Token(); token == "" {
		return fmt.Errorf("not logged in; run `okuyorum-admin login` first")
	}

	client := api.NewClient(api.Options{BaseURL: cfg.APIURL, Tokens: store, Logger: &logger, Timeout: cfg.HTTPTimeout})
	res := importAll(ctx, services.NewDonationService(client), donations, out)

	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d donations\n", res.success)
	fmt.Fprintf(out, "Errors: %d\n", res.failed)

	if len(res.created) > 0 {
		fmt.Fprintln(out, "\nImported donations:")
		fmt.Fprintf(out, "%-6s %-50s %-30s\n", "ID", "Title", "Author")
		fmt.Fprintln(out, strings.Repeat("-", 88))
		for _, d := range res.created {
			id, _ := d.DonationID()
			fmt.Fprintf(out, "%-6d %-50s %-30s\n", id, truncateString(d.BookTitle, 50), truncateString(d.Author, 30))
		}
	}
	if res.failed > 0 {
		return fmt.Errorf("%d donation(s) failed", res.failed)
	}
	return nil
}

func readDonations(path string) ([]models.Donation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var donations []models.Donation
	if err := json.NewDecoder(f).Decode(&donations); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return donations, nil
}

// importAll creates donations one by one and keeps going after failures.
func importAll(ctx context.Context, svc creator, donations []models.Donation, out io.Writer) result {
	var res result
	for i, d := range donations {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(out, "Importing: %s by %s... ", d.BookTitle, d.Author)

		if strings.TrimSpace(d.BookTitle) == "" || d.Quantity <= 0 {
			fmt.Fprintf(out, "ERROR - entry %d needs a title and a positive quantity\n", i+1)
			res.failed++
			continue
		}
		if d.DonationType == "" {
			d.DonationType = models.DonationForIndividual
		}

		resp, err := svc.CreateDonation(ctx, d)
		if err != nil {
			fmt.Fprintf(out, "ERROR - %v\n", err)
			res.failed++
			continue
		}
		id, _ := resp.Data.DonationID()
		fmt.Fprintf(out, "SUCCESS (ID: %d)\n", id)
		res.success++
		res.created = append(res.created, resp.Data)
	}
	return res
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
