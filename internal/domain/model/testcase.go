package model

import (
	"encoding/json"
	"errors"
	"time"
)

// TestCase is one entry in the editor's ordered test-case sequence.
// Identity is positional. Output, Passed, RuntimeMs and ExitCode are nil
// until a batch run populates them; a case's Passed stays nil whenever its
// Expected text is empty, because comparison is not attempted.
type TestCase struct {
	Input     string `json:"input"`
	Expected  string `json:"expected"`
	Output    *string `json:"output,omitempty"`
	Passed    *bool   `json:"passed,omitempty"`
	RuntimeMs *int    `json:"runtimeMs,omitempty"`
	ExitCode  *int    `json:"exitCode,omitempty"`
}

// ResetTransient clears the per-run fields while preserving input/expected.
func (tc *TestCase) ResetTransient() {
	tc.Output = nil
	tc.Passed = nil
	tc.RuntimeMs = nil
	tc.ExitCode = nil
}

// ErrInvalidTestCaseFile is returned when an imported document is neither a
// bare test-case array nor an object with a "testcases" array.
var ErrInvalidTestCaseFile = errors.New("invalid test case file")

// TestCaseSeed is the persistent half of a test case: the transient per-run
// fields are dropped on export.
type TestCaseSeed struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// TestCaseDocument is the export file format.
type TestCaseDocument struct {
	ProblemID *string        `json:"problemId"`
	TestCases []TestCaseSeed `json:"testcases"`
	Timestamp string         `json:"timestamp"`
}

// ImportTestCases parses an uploaded document into a fresh test-case
// sequence. It accepts either a bare array of seeds or an object carrying a
// "testcases" array; anything else fails with ErrInvalidTestCaseFile and the
// caller's existing sequence must be left untouched.
func ImportTestCases(data []byte) ([]TestCase, error) {
	var seeds []TestCaseSeed
	if err := json.Unmarshal(data, &seeds); err == nil {
		return seedsToCases(seeds), nil
	}

	var doc struct {
		TestCases json.RawMessage `json:"testcases"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.TestCases == nil {
		return nil, ErrInvalidTestCaseFile
	}
	if err := json.Unmarshal(doc.TestCases, &seeds); err != nil {
		return nil, ErrInvalidTestCaseFile
	}
	return seedsToCases(seeds), nil
}

func seedsToCases(seeds []TestCaseSeed) []TestCase {
	cases := make([]TestCase, len(seeds))
	for i, s := range seeds {
		cases[i] = TestCase{Input: s.Input, Expected: s.Expected}
	}
	return cases
}

// ExportTestCases serializes the sequence for download, dropping transient
// per-run fields.
func ExportTestCases(problemID *string, cases []TestCase, now time.Time) ([]byte, error) {
	doc := TestCaseDocument{
		ProblemID: problemID,
		TestCases: make([]TestCaseSeed, len(cases)),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	for i, tc := range cases {
		doc.TestCases[i] = TestCaseSeed{Input: tc.Input, Expected: tc.Expected}
	}
	return json.MarshalIndent(doc, "", "  ")
}
