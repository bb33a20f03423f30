package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"okuyorum-admin/admin"
	"okuyorum-admin/models"
)

// truncateString shortens s to maxLen runes, marking the cut with "...".
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

func statusCell(m models.StatusMeta) string {
	return m.Icon + " " + m.Label
}

func ago(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t.Time)
}

func day(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("-", n))
}

func pageFooter(w io.Writer, info admin.PageInfo) {
	if info.Total == 0 {
		return
	}
	fmt.Fprintf(w, "\nSayfa %d/%d · toplam %s kayıt\n", info.Page, max(info.TotalPages, 1), humanize.Comma(int64(info.Total)))
}

// titleWidth gives the free-text column whatever the fixed columns leave.
func titleWidth(total, fixed int) int {
	return min(max(total-fixed, 20), 60)
}
