package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names). Short rows are padded
// with empty values and extra cells are dropped.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV parses CSV rows from r. See LoadCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file (no header row)")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	rows := make([]Row, 0, len(records)-1)

	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for j, h := range headers {
			if j < len(record) {
				row[h] = record[j]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// CasesFromRows converts CSV rows into cases. Column names match case field
// names case-insensitively; missing columns leave the field empty.
func CasesFromRows(rows []Row) []models.RawCase {
	cases := make([]models.RawCase, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]any, len(row))
		for k, v := range row {
			record[k] = v
		}
		cases = append(cases, decodeRecord(record))
	}
	return cases
}
