package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteRows writes the fixed header plus one record per row.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes rows to a file, creating or truncating it.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteRows(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// ReadRows parses an exported CSV back into rows. Columns are matched by
// header name, so column order and extra columns (such as a report's
// missing_fields helper column) are tolerated.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Deal:           field(record, "deal"),
			Value:          field(record, "value"),
			DealStage:      field(record, "dealstage"),
			DealOwner:      field(record, "dealowner"),
			ExpirationDate: field(record, "expiration_date"),
			CreatedAtDate:  field(record, "created_at_date"),
			CustomerName:   field(record, "customer_name"),
			CompanyName:    field(record, "company_name"),
		})
	}
	return rows, nil
}

// ReadCSV reads an exported CSV file into rows.
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadRows(f)
}
