// Package validation lints capture case files. Findings are advisory: the
// loader accepts files that fail validation.
package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/dataset"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed caseset.schema.json
var caseSetSchemaJSON string

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// caseSetSchema is the compiled JSON Schema for case files.
var caseSetSchema *jsonschema.Schema

func init() {
	caseSetSchema = mustCompileSchema(caseSetSchemaJSON, "caseset.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateCaseFile lints the case file at path. JSON, YAML and CSV files are
// supported. The error is non-nil only when the file cannot be read.
func ValidateCaseFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err := dataset.LoadCSV(path)
		if err != nil {
			return nil, err
		}
		doc := make([]any, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]any, len(row))
			for k, v := range row {
				obj[k] = v
			}
			doc = append(doc, obj)
		}
		return validateDocument(doc), nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading case file: %w", err)
		}
		return ValidateCaseYAML(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading case file: %w", err)
		}
		return ValidateCaseBytes(data), nil
	}
}

// ValidateCaseBytes lints a JSON case file.
func ValidateCaseBytes(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	return validateDocument(doc)
}

// ValidateCaseYAML lints a YAML case file.
func ValidateCaseYAML(data []byte) []string {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	return validateDocument(convertToJSONCompatible(doc))
}

func validateDocument(doc any) []string {
	errs := validateAgainstSchema(caseSetSchema, doc)
	errs = append(errs, checkRecords(doc)...)
	return errs
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// checkRecords reports problems a schema cannot express: duplicate ids,
// which break the id-to-media join, and status tokens that will be shown
// as flaky.
func checkRecords(doc any) []string {
	records, ok := doc.([]any)
	if !ok {
		return nil
	}
	var errs []string
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := obj["id"].(string); ok && id != "" {
			if first, dup := seen[id]; dup {
				errs = append(errs, fmt.Sprintf("/%d/id: duplicate id %q (first at /%d)", i, id, first))
			} else {
				seen[id] = i
			}
		}
		if status, ok := obj["status"].(string); ok {
			switch strings.ToLower(strings.TrimSpace(status)) {
			case "pass", "fail":
			default:
				errs = append(errs, fmt.Sprintf("/%d/status: token %q is not pass or fail and will be shown as flaky", i, status))
			}
		}
	}
	return errs
}

// convertToJSONCompatible converts YAML-decoded values to JSON-compatible types.
// yaml.v3 decodes to map[string]any which is fine, but integers need to stay as-is.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
