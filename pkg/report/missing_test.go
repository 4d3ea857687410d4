package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/salesops/hubspot-export/pkg/export"
)

func TestFindMissing(t *testing.T) {
	rows := []export.Row{
		{Deal: "Alpha", Value: "1000", CompanyName: "Acme"},
		{Deal: "Beta", Value: "", CompanyName: "Beta, Inc."},
		{Deal: "Gamma", Value: "500", CompanyName: "  "},
	}

	missing := FindMissing(rows, []string{"value", "company_name"})

	if len(missing) != 2 {
		t.Fatalf("len(missing) = %d, want 2", len(missing))
	}
	if missing[0].Row.Deal != "Beta" {
		t.Errorf("missing[0].Deal = %q, want Beta", missing[0].Row.Deal)
	}
	if len(missing[0].MissingFields) != 1 || missing[0].MissingFields[0] != "value" {
		t.Errorf("missing[0].MissingFields = %v, want [value]", missing[0].MissingFields)
	}
	// Whitespace-only counts as blank.
	if missing[1].Row.Deal != "Gamma" || missing[1].MissingFields[0] != "company_name" {
		t.Errorf("missing[1] = %+v", missing[1])
	}
}

func TestFindMissing_AllColumnsByDefault(t *testing.T) {
	rows := []export.Row{
		{Deal: "Alpha"}, // everything else blank
	}

	missing := FindMissing(rows, nil)

	if len(missing) != 1 {
		t.Fatalf("len(missing) = %d, want 1", len(missing))
	}
	if len(missing[0].MissingFields) != len(export.Header)-1 {
		t.Errorf("MissingFields = %v, want every column but deal", missing[0].MissingFields)
	}
}

func TestAffectedCompanies(t *testing.T) {
	missing := []MissingRow{
		{Row: export.Row{CompanyName: "Beta"}},
		{Row: export.Row{CompanyName: "Acme"}},
		{Row: export.Row{CompanyName: "Beta"}},
		{Row: export.Row{CompanyName: ""}},
	}

	got := AffectedCompanies(missing)

	if len(got) != 2 || got[0] != "Acme" || got[1] != "Beta" {
		t.Errorf("AffectedCompanies() = %v, want [Acme Beta]", got)
	}
}

func TestWriteMissing_Header(t *testing.T) {
	missing := []MissingRow{
		{
			Row:           export.Row{Deal: "Beta", CompanyName: "Beta, Inc."},
			MissingFields: []string{"value", "dealowner"},
		},
	}

	var buf bytes.Buffer
	if err := WriteMissing(&buf, missing); err != nil {
		t.Fatalf("WriteMissing() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	wantHeader := strings.Join(export.Header, ",") + ",missing_fields"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if !strings.Contains(lines[1], `"value,dealowner"`) {
		t.Errorf("record = %q, want comma-joined missing_fields", lines[1])
	}
}

func TestMissingCSV_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/missing.csv"

	missing := []MissingRow{
		{
			Row:           export.Row{Deal: "Beta", DealOwner: "Jane Doe", CompanyName: "Beta, Inc."},
			MissingFields: []string{"value", "expiration_date"},
		},
	}

	if err := WriteMissingCSV(path, missing); err != nil {
		t.Fatalf("WriteMissingCSV() error = %v", err)
	}

	back, err := ReadMissingCSV(path)
	if err != nil {
		t.Fatalf("ReadMissingCSV() error = %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("len(back) = %d, want 1", len(back))
	}
	if back[0].Row != missing[0].Row {
		t.Errorf("row = %+v, want %+v", back[0].Row, missing[0].Row)
	}
	if len(back[0].MissingFields) != 2 || back[0].MissingFields[0] != "value" {
		t.Errorf("MissingFields = %v, want [value expiration_date]", back[0].MissingFields)
	}
}
