package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"codearena/internal/domain/model"
)

func TestImportTestCasesBareArray(t *testing.T) {
	data := []byte(`[{"input":"2 3","expected":"5"},{"input":"1 1","expected":"2"}]`)
	cases, err := model.ImportTestCases(data)
	if err != nil {
		t.Fatalf("ImportTestCases: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if cases[0].Input != "2 3" || cases[0].Expected != "5" {
		t.Errorf("case 0 = %+v", cases[0])
	}
	if cases[0].Output != nil || cases[0].Passed != nil {
		t.Error("imported cases must start with clear transient fields")
	}
}

func TestImportTestCasesWrappedDocument(t *testing.T) {
	data := []byte(`{"problemId":"sum","testcases":[{"input":"a","expected":"b"}],"timestamp":"2026-01-01T00:00:00Z"}`)
	cases, err := model.ImportTestCases(data)
	if err != nil {
		t.Fatalf("ImportTestCases: %v", err)
	}
	if len(cases) != 1 || cases[0].Input != "a" || cases[0].Expected != "b" {
		t.Fatalf("cases = %+v", cases)
	}
}

func TestImportTestCasesRejectsUnrelatedShapes(t *testing.T) {
	for _, data := range []string{
		`{"foo":"bar"}`,
		`"just a string"`,
		`{"testcases":"not an array"}`,
		`not json at all`,
	} {
		if _, err := model.ImportTestCases([]byte(data)); !errors.Is(err, model.ErrInvalidTestCaseFile) {
			t.Errorf("%s: expected ErrInvalidTestCaseFile, got %v", data, err)
		}
	}
}

func TestExportTestCasesDropsTransientFields(t *testing.T) {
	output := "5\n"
	passed := true
	problemID := "sum"
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	raw, err := model.ExportTestCases(&problemID, []model.TestCase{
		{Input: "2 3", Expected: "5", Output: &output, Passed: &passed},
	}, now)
	if err != nil {
		t.Fatalf("ExportTestCases: %v", err)
	}

	var doc model.TestCaseDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("exported document must be valid JSON: %v", err)
	}
	if doc.ProblemID == nil || *doc.ProblemID != "sum" {
		t.Errorf("problemId = %v", doc.ProblemID)
	}
	if doc.Timestamp != "2026-08-28T12:00:00Z" {
		t.Errorf("timestamp = %q", doc.Timestamp)
	}
	if len(doc.TestCases) != 1 || doc.TestCases[0] != (model.TestCaseSeed{Input: "2 3", Expected: "5"}) {
		t.Errorf("testcases = %+v", doc.TestCases)
	}

	// The export round-trips through import.
	cases, err := model.ImportTestCases(raw)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(cases) != 1 || cases[0].Input != "2 3" {
		t.Errorf("re-imported cases = %+v", cases)
	}
}

func TestResetTransient(t *testing.T) {
	output := "x"
	passed := false
	ms := 10
	code := 1
	tc := model.TestCase{
		Input: "in", Expected: "out",
		Output: &output, Passed: &passed, RuntimeMs: &ms, ExitCode: &code,
	}
	tc.ResetTransient()
	if tc.Input != "in" || tc.Expected != "out" {
		t.Error("input and expected must survive a reset")
	}
	if tc.Output != nil || tc.Passed != nil || tc.RuntimeMs != nil || tc.ExitCode != nil {
		t.Errorf("transient fields must be cleared, got %+v", tc)
	}
}
