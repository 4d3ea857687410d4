package export

import (
	"testing"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"millisecond precision", "2023-07-03T17:41:04.193Z", "2023-07-03"},
		{"second precision", "2023-07-03T17:41:04Z", "2023-07-03"},
		{"empty", "", ""},
		{"date only passes through", "2023-07-03", "2023-07-03"},
		{"offset timestamp passes through", "2023-07-03T17:41:04+02:00", "2023-07-03T17:41:04+02:00"},
		{"garbage passes through", "not-a-date", "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.raw); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRow_Record(t *testing.T) {
	row := Row{
		Deal:           "Acme renewal",
		Value:          "12000",
		DealStage:      "contractsent",
		DealOwner:      "Jane Doe",
		ExpirationDate: "2026-06-30",
		CreatedAtDate:  "2026-02-10",
		CustomerName:   "Ada Lovelace",
		CompanyName:    "Acme",
	}

	record := row.Record()
	if len(record) != len(Header) {
		t.Fatalf("len(record) = %d, want %d", len(record), len(Header))
	}

	// Record order must match Header order, column by column.
	for i, column := range Header {
		if record[i] != row.Field(column) {
			t.Errorf("record[%d] = %q, want %q (column %s)", i, record[i], row.Field(column), column)
		}
	}
}

func TestRow_Field(t *testing.T) {
	row := Row{Deal: "Acme renewal", Value: "12000"}

	if got := row.Field("deal"); got != "Acme renewal" {
		t.Errorf("Field(deal) = %q, want Acme renewal", got)
	}
	if got := row.Field("nonexistent"); got != "" {
		t.Errorf("Field(nonexistent) = %q, want empty", got)
	}
}
