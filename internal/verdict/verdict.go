// Package verdict judges captured translation output against the expected
// text, the same comparison the browser suite asserts.
package verdict

import (
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Status tokens written back into case files.
const (
	TokenPass = "pass"
	TokenFail = "fail"
)

// Normalize collapses every whitespace run to a single space and trims the
// result.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Judge compares normalized expected and actual text. It returns "" when
// there is no actual output to judge.
func Judge(expected, actual string) string {
	if strings.TrimSpace(actual) == "" {
		return ""
	}
	if Normalize(expected) == Normalize(actual) {
		return TokenPass
	}
	return TokenFail
}

// Change records a status token rewritten by Regrade.
type Change struct {
	ID     string
	Before string
	After  string
}

// Regrade recomputes the status token of every case that has actual output.
// Cases without actual output keep their token. The input is not modified.
func Regrade(cases []models.RawCase) ([]models.RawCase, []Change) {
	out := make([]models.RawCase, len(cases))
	var changes []Change
	for i, tc := range cases {
		out[i] = tc
		token := Judge(tc.Expected, tc.Actual)
		if token == "" || token == strings.ToLower(strings.TrimSpace(tc.Status)) {
			continue
		}
		changes = append(changes, Change{ID: tc.ID, Before: tc.Status, After: token})
		out[i].Status = token
	}
	return out, changes
}
