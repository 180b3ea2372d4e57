package diag_test

import (
	"testing"

	"codearena/internal/domain/model"
	"codearena/internal/judge/diag"
)

func TestParseJavaCompileError(t *testing.T) {
	text := "Main.java:7: error: ';' expected\n        int x = 5\n                 ^\n1 error\n"
	d := diag.Parse(model.LangJava, text)
	if d.Line == nil || *d.Line != 7 {
		t.Fatalf("expected line 7, got %v", d.Line)
	}
	if d.Summary == nil || *d.Summary != "Main.java:7: error: ';' expected" {
		t.Fatalf("unexpected summary %v", d.Summary)
	}
}

func TestParseJavaStackTrace(t *testing.T) {
	text := "Exception in thread \"main\" java.lang.ArithmeticException: / by zero\n" +
		"\tat Main.divide(Main.java:12)\n" +
		"\tat Main.main(Main.java:5)\n"
	d := diag.Parse(model.LangJava, text)
	if d.Line == nil || *d.Line != 12 {
		t.Fatalf("expected first frame line 12, got %v", d.Line)
	}
	if len(d.Lines) != 2 || d.Lines[0] != 12 || d.Lines[1] != 5 {
		t.Fatalf("expected lines [12 5], got %v", d.Lines)
	}
}

func TestParseCpp(t *testing.T) {
	text := "main.cpp:12:5: error: expected ';' before 'return'"
	d := diag.Parse(model.LangCpp, text)
	if d.Line == nil || *d.Line != 12 {
		t.Fatalf("expected line 12, got %v", d.Line)
	}
	if d.Summary == nil || *d.Summary != text {
		t.Fatalf("summary must be the first raw line, got %v", d.Summary)
	}
}

func TestParsePythonSummaryIsLastLine(t *testing.T) {
	text := "Traceback (most recent call last):\n" +
		"  File \"main.py\", line 3, in <module>\n" +
		"    print(1/0)\n" +
		"ZeroDivisionError: division by zero\n"
	d := diag.Parse(model.LangPython, text)
	if d.Line == nil || *d.Line != 3 {
		t.Fatalf("expected line 3, got %v", d.Line)
	}
	if d.Summary == nil || *d.Summary != "ZeroDivisionError: division by zero" {
		t.Fatalf("python summary must be the last non-empty line, got %v", d.Summary)
	}
}

func TestParsePythonEmptyTextDefaultsToError(t *testing.T) {
	d := diag.Parse(model.LangPython, "")
	if d.Summary == nil || *d.Summary != "Error" {
		t.Fatalf("expected literal Error summary, got %v", d.Summary)
	}
	if d.Line != nil || len(d.Lines) != 0 {
		t.Fatalf("expected no lines for empty text, got %v %v", d.Line, d.Lines)
	}
}

func TestParseJavaScript(t *testing.T) {
	text := "/sandbox/main.js:4\nundefined.foo();\n^\nTypeError: Cannot read properties of undefined\n    at Object.<anonymous> (/sandbox/main.js:4:11)\n"
	d := diag.Parse(model.LangJavaScript, text)
	if d.Line == nil || *d.Line != 4 {
		t.Fatalf("expected line 4, got %v", d.Line)
	}
}

func TestParseUnknownLanguage(t *testing.T) {
	d := diag.Parse(model.SourceLanguage("Rust"), "\n\nsomething broke\nmore detail")
	if len(d.Lines) != 0 || d.Line != nil {
		t.Fatalf("unknown language must extract no lines, got %v", d.Lines)
	}
	if d.Summary == nil || *d.Summary != "something broke" {
		t.Fatalf("expected first non-empty line, got %v", d.Summary)
	}
}

func TestParseNeverPanicsAndIsTotal(t *testing.T) {
	langs := append(model.Languages(), model.SourceLanguage("unknown"), model.SourceLanguage(""))
	texts := []string{
		"", " ", "\n\n\n", "no numbers here",
		":::::", "line :99999999999999999999: error",
		"Main.java:: error", "File \"x\", line ", "\x00\xff binary",
	}
	for _, lang := range langs {
		for _, text := range texts {
			d := diag.Parse(lang, text)
			// Lines may be empty but never nil semantics beyond that; the
			// struct itself must always come back usable.
			if d.Line != nil && len(d.Lines) == 0 {
				t.Errorf("%s/%q: Line set without Lines", lang, text)
			}
		}
	}
}

func TestDedupedLines(t *testing.T) {
	text := "main.cpp:3:1: error: a\nmain.cpp:3:9: error: b\nmain.cpp:8:2: error: c"
	d := diag.Parse(model.LangCpp, text)
	if len(d.Lines) != 2 || d.Lines[0] != 3 || d.Lines[1] != 8 {
		t.Fatalf("expected deduped [3 8], got %v", d.Lines)
	}
}

func TestLooksLikeCompileError(t *testing.T) {
	cases := []struct {
		lang model.SourceLanguage
		text string
		want bool
	}{
		{model.LangJava, "Main.java:7: error: ';' expected", true},
		{model.LangJava, "Exception in thread \"main\" at Main.main(Main.java:5)", false},
		{model.LangCpp, "main.cpp:12:5: error: expected ';'", true},
		{model.LangCpp, "Segmentation fault", false},
		{model.LangPython, "SyntaxError: invalid syntax", true},
		{model.LangPython, "ZeroDivisionError: division by zero", false},
		{model.LangJavaScript, "SyntaxError: Unexpected token", true},
		{model.LangJavaScript, "TypeError: x is not a function", false},
	}
	for _, c := range cases {
		if got := diag.LooksLikeCompileError(c.lang, c.text); got != c.want {
			t.Errorf("LooksLikeCompileError(%s, %q) = %v, want %v", c.lang, c.text, got, c.want)
		}
	}
}
