package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
	"gopkg.in/yaml.v3"
)

// csvHeader is the column order Save writes.
var csvHeader = []string{"id", "name", "category", "inputLengthType", "input", "expected", "actual", "status"}

// Save writes cases to path in the format chosen by its extension, the
// same formats Load reads. Fields outside RawCase are not preserved.
func Save(path string, cases []models.RawCase) error {
	if cases == nil {
		cases = []models.RawCase{}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err = encodeCSV(cases)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cases)
	case ".json", "":
		data, err = encodeJSON(cases)
	default:
		return fmt.Errorf("cases: unsupported file type %q (want .json, .yaml or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("cases: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cases: write %s: %w", path, err)
	}
	return nil
}

func encodeJSON(cases []models.RawCase) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cases); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCSV(cases []models.RawCase) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, tc := range cases {
		record := []string{tc.ID, tc.Name, tc.Category, tc.InputLengthType, tc.Input, tc.Expected, tc.Actual, tc.Status}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
