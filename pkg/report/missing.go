package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/salesops/hubspot-export/pkg/export"
)

// MissingRow is an exported row with at least one blank checked column.
type MissingRow struct {
	Row export.Row
	// MissingFields lists the blank column names, in checked order.
	MissingFields []string
}

// FindMissing returns the rows with a blank value in any of the given
// columns, annotated with the list of blank columns. An empty columns
// slice checks every output column.
func FindMissing(rows []export.Row, columns []string) []MissingRow {
	if len(columns) == 0 {
		columns = export.Header
	}

	var missing []MissingRow
	for _, r := range rows {
		var blank []string
		for _, col := range columns {
			if strings.TrimSpace(r.Field(col)) == "" {
				blank = append(blank, col)
			}
		}
		if len(blank) > 0 {
			missing = append(missing, MissingRow{Row: r, MissingFields: blank})
		}
	}
	return missing
}

// AffectedCompanies returns the sorted unique company names among the
// missing rows, skipping blanks.
func AffectedCompanies(missing []MissingRow) []string {
	seen := make(map[string]struct{})
	for _, m := range missing {
		if company := strings.TrimSpace(m.Row.CompanyName); company != "" {
			seen[company] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteMissing writes the missing rows as CSV: the full output columns
// plus a missing_fields helper column.
func WriteMissing(w io.Writer, missing []MissingRow) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, export.Header...), "missing_fields")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write missing header: %w", err)
	}

	for _, m := range missing {
		record := append(m.Row.Record(), strings.Join(m.MissingFields, ","))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write missing record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMissingCSV writes the missing rows to a file.
func WriteMissingCSV(path string, missing []MissingRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteMissing(f, missing); err != nil {
		return err
	}
	return f.Close()
}

// ReadMissingCSV reads a missing-deals CSV (as written by WriteMissing)
// back into annotated rows.
func ReadMissingCSV(path string) ([]MissingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}
	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	missing := make([]MissingRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := export.Row{
			Deal:           field(record, "deal"),
			Value:          field(record, "value"),
			DealStage:      field(record, "dealstage"),
			DealOwner:      field(record, "dealowner"),
			ExpirationDate: field(record, "expiration_date"),
			CreatedAtDate:  field(record, "created_at_date"),
			CustomerName:   field(record, "customer_name"),
			CompanyName:    field(record, "company_name"),
		}
		var fields []string
		for _, col := range strings.Split(field(record, "missing_fields"), ",") {
			if col = strings.TrimSpace(col); col != "" {
				fields = append(fields, col)
			}
		}
		missing = append(missing, MissingRow{Row: row, MissingFields: fields})
	}
	return missing, nil
}
