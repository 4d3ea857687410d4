package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteRows_HeaderAndRecords(t *testing.T) {
	rows := []Row{
		{Deal: "Acme renewal", Value: "12000", DealStage: "contractsent", DealOwner: "Jane Doe"},
		{Deal: "Beta pilot", CompanyName: "Beta, Inc."},
	}

	var buf bytes.Buffer
	if err := WriteRows(&buf, rows); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output lines = %d, want header + 2 records", len(lines))
	}
	if lines[0] != strings.Join(Header, ",") {
		t.Errorf("header line = %q", lines[0])
	}
	// Commas inside values must be quoted.
	if !strings.Contains(lines[2], `"Beta, Inc."`) {
		t.Errorf("record = %q, want quoted company name", lines[2])
	}

	back, err := ReadRows(&buf)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(back) != len(rows) {
		t.Fatalf("len(back) = %d, want %d", len(back), len(rows))
	}
	for i := range rows {
		if back[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, back[i], rows[i])
		}
	}
}

func TestReadRows_ExtraColumnsTolerated(t *testing.T) {
	input := strings.Join(Header, ",") + ",missing_fields\n" +
		"Acme renewal,12000,contractsent,Jane Doe,2026-06-30,2026-02-10,Ada Lovelace,Acme,\"value, company_name\"\n"

	rows, err := ReadRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Deal != "Acme renewal" || rows[0].CompanyName != "Acme" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestReadRows_EmptyInput(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("")); err == nil {
		t.Fatal("ReadRows() expected error for input without header")
	}
}

func TestWriteAndReadCSV_File(t *testing.T) {
	path := t.TempDir() + "/deals.csv"

	rows := []Row{{Deal: "Acme renewal", Value: "12000"}}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	back, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(back) != 1 || back[0].Deal != "Acme renewal" {
		t.Errorf("back = %+v", back)
	}
}
