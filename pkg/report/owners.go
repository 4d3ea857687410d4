// Package report builds downstream summaries from an exported deal row
// set: per-owner aggregation and missing-field detection. Both are simple
// column scans with no coordination logic.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/salesops/hubspot-export/pkg/export"
)

// unknownOwner groups rows whose dealowner column is blank.
const unknownOwner = "(unknown)"

// OwnerSummary aggregates the deals of one owner.
type OwnerSummary struct {
	Owner      string
	DealCount  int
	TotalValue float64
	Companies  []string // sorted, unique
}

// ParseValue converts a raw amount string to a float, best effort.
// Thousands separators are tolerated; blank or non-numeric values count
// as zero.
func ParseValue(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// SummarizeByOwner groups rows by owner name and aggregates deal count,
// total value, and the set of company names. Summaries are sorted by
// owner name.
func SummarizeByOwner(rows []export.Row) []OwnerSummary {
	counts := make(map[string]int)
	totals := make(map[string]float64)
	companies := make(map[string]map[string]struct{})

	for _, r := range rows {
		owner := strings.TrimSpace(r.DealOwner)
		if owner == "" {
			owner = unknownOwner
		}

		counts[owner]++
		totals[owner] += ParseValue(r.Value)

		if companies[owner] == nil {
			companies[owner] = make(map[string]struct{})
		}
		if company := strings.TrimSpace(r.CompanyName); company != "" {
			companies[owner][company] = struct{}{}
		}
	}

	owners := make([]string, 0, len(counts))
	for owner := range counts {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	summaries := make([]OwnerSummary, 0, len(owners))
	for _, owner := range owners {
		names := make([]string, 0, len(companies[owner]))
		for name := range companies[owner] {
			names = append(names, name)
		}
		sort.Strings(names)

		summaries = append(summaries, OwnerSummary{
			Owner:      owner,
			DealCount:  counts[owner],
			TotalValue: totals[owner],
			Companies:  names,
		})
	}
	return summaries
}

// WriteOwnerSummary writes the per-owner aggregation as CSV.
func WriteOwnerSummary(w io.Writer, summaries []OwnerSummary) error {
	cw := csv.NewWriter(w)

	header := []string{"owner", "deals_count", "total_value", "companies_count", "companies"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for _, s := range summaries {
		record := []string{
			s.Owner,
			strconv.Itoa(s.DealCount),
			fmt.Sprintf("%.2f", s.TotalValue),
			strconv.Itoa(len(s.Companies)),
			strings.Join(s.Companies, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write summary record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteOwnerSummaryCSV writes the per-owner aggregation to a file.
func WriteOwnerSummaryCSV(path string, summaries []OwnerSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteOwnerSummary(f, summaries); err != nil {
		return err
	}
	return f.Close()
}
