// Package dataset loads the case files written by the capture pipeline.
//
// Loading is lenient: a record with missing or oddly typed fields still
// yields a case, with the bad fields left empty. Only a file that cannot be
// read or parsed at all is an error.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Load reads cases from a .json, .yaml or .csv file.
func Load(path string) ([]models.RawCase, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err := LoadCSV(path)
		if err != nil {
			return nil, err
		}
		return CasesFromRows(rows), nil
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".json", "":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("cases: unsupported file type %q (want .json, .yaml or .csv)", filepath.Ext(path))
	}
}

// LoadJSON reads a JSON array of case records from path.
func LoadJSON(path string) ([]models.RawCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cases: read %s: %w", path, err)
	}
	cases, err := ParseJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cases: parse %s: %w", path, err)
	}
	return cases, nil
}

// LoadYAML reads a YAML sequence of case records from path.
func LoadYAML(path string) ([]models.RawCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cases: read %s: %w", path, err)
	}
	var records []any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cases: parse %s: %w", path, err)
	}
	return fromRecords(records), nil
}

// ParseJSON decodes a JSON array of case records. Array elements that are
// not objects are skipped.
func ParseJSON(r io.Reader) ([]models.RawCase, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []any
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}

	return fromRecords(records), nil
}

func fromRecords(records []any) []models.RawCase {
	cases := make([]models.RawCase, 0, len(records))
	for i, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			slog.Warn("skipping case record that is not an object", "index", i)
			continue
		}
		cases = append(cases, decodeRecord(obj))
	}
	return cases
}

// decodeRecord decodes one record with weak typing so numbers and booleans
// become strings. Fields that still fail to decode stay empty.
func decodeRecord(record map[string]any) models.RawCase {
	var tc models.RawCase
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &tc,
	})
	if err != nil {
		return tc
	}
	if err := dec.Decode(record); err != nil {
		slog.Debug("case record decoded with errors", "id", tc.ID, "error", err)
	}
	return tc
}
