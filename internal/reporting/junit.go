package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite groups the artifacts recorded under one suite name.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one artifact.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure represents a test assertion failure.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError marks an artifact whose status token was not recognized.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts artifacts to JUnit XML, one testsuite per suite
// name in first-seen order. Failed artifacts carry a <failure>; flaky ones
// carry an <error>, since their raw status was neither pass nor fail.
func ConvertToJUnit(artifacts []models.Artifact) *JUnitTestSuites {
	out := &JUnitTestSuites{}
	index := make(map[string]int)
	earliest := make(map[string]time.Time)

	for _, a := range artifacts {
		i, ok := index[a.Suite]
		if !ok {
			i = len(out.TestSuites)
			index[a.Suite] = i
			out.TestSuites = append(out.TestSuites, JUnitTestSuite{
				Name: a.Suite,
				Properties: []JUnitProperty{
					{Name: "browser", Value: a.Browser},
					{Name: "spec", Value: a.SpecPath},
				},
			})
		}
		suite := &out.TestSuites[i]
		suite.TestCases = append(suite.TestCases, convertArtifact(a))
		suite.Tests++
		suite.Time += a.Duration
		switch a.Status {
		case models.StatusFailed:
			suite.Failures++
		case models.StatusFlaky:
			suite.Errors++
		}
		if t, seen := earliest[a.Suite]; !seen || a.RecordedAt.Before(t) {
			earliest[a.Suite] = a.RecordedAt
		}
	}

	for i := range out.TestSuites {
		s := &out.TestSuites[i]
		s.Timestamp = earliest[s.Name].Format(time.RFC3339)
		out.Tests += s.Tests
		out.Failures += s.Failures
		out.Errors += s.Errors
		out.Time += s.Time
	}
	return out
}

func convertArtifact(a models.Artifact) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      caseName(a),
		Classname: strings.TrimSuffix(a.SpecPath, ".js"),
		Time:      a.Duration,
	}

	switch a.Status {
	case models.StatusFailed:
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: output did not match expected", a.ID),
			Type:    "AssertionFailure",
			Body:    artifactDetails(a),
		}
	case models.StatusFlaky:
		tc.Error = &JUnitError{
			Message: fmt.Sprintf("%s: status token not recognized", a.ID),
			Type:    "UnrecognizedStatus",
			Body:    artifactDetails(a),
		}
	}

	return tc
}

func caseName(a models.Artifact) string {
	if a.Title == "" {
		return a.ID
	}
	return a.ID + ": " + a.Title
}

func artifactDetails(a models.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input: %s\n", a.Scenario)
	fmt.Fprintf(&b, "expected: %s\n", a.Summary)
	fmt.Fprintf(&b, "screenshot: %s\n", a.ImageSrc)
	if a.HasVideo {
		fmt.Fprintf(&b, "video: %s\n", a.VideoSrc)
	}
	return b.String()
}

// MarshalJUnitXML renders artifacts as an indented JUnit XML document.
func MarshalJUnitXML(artifacts []models.Artifact) ([]byte, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(artifacts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(artifacts []models.Artifact, path string) error {
	output, err := MarshalJUnitXML(artifacts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, output, 0644)
}
