// Package diag extracts source line numbers and a one-line summary from
// toolchain diagnostic text. Each language carries its own grammar behind a
// common locator interface; adding a language is a new locator, not an edit
// to a shared function.
package diag

import (
	"strings"

	"codearena/internal/domain/model"
)

// Diagnostic is derived deterministically from raw diagnostic text. Lines
// holds every line number found for multi-error navigation; Line and
// Summary hold the first occurrence for primary display.
type Diagnostic struct {
	Line    *int    `json:"line"`
	Summary *string `json:"summary"`
	Lines   []int   `json:"lines"`
}

// locator is one language's diagnostic grammar.
type locator interface {
	parse(text string) Diagnostic
	// compileError reports whether the text looks like compiler output
	// rather than a runtime failure.
	compileError(text string) bool
}

var locators = map[model.SourceLanguage]locator{
	model.LangJava:       javaLocator{},
	model.LangCpp:        cppLocator{},
	model.LangPython:     pythonLocator{},
	model.LangJavaScript: jsLocator{},
}

// Parse runs the language's grammar over raw diagnostic text. It is purely
// textual, never panics, and degrades to the zero diagnostic on any
// failure. Callers decide when to invoke it (only on non-zero exit codes).
func Parse(lang model.SourceLanguage, text string) (d Diagnostic) {
	defer func() {
		if recover() != nil {
			d = Diagnostic{}
		}
	}()
	loc, ok := locators[lang]
	if !ok {
		return fallbackParse(text)
	}
	return loc.parse(text)
}

// LooksLikeCompileError reports whether failing output matches the
// language's compiler grammar. Used to split compilation_error from
// runtime_error verdicts.
func LooksLikeCompileError(lang model.SourceLanguage, text string) bool {
	loc, ok := locators[lang]
	if !ok {
		return false
	}
	return loc.compileError(text)
}

// fallbackParse handles unknown languages: no line numbers, first non-empty
// line as the summary.
func fallbackParse(text string) Diagnostic {
	return Diagnostic{Summary: firstNonEmptyLine(text)}
}

func firstLine(text string) *string {
	if text == "" {
		return nil
	}
	line, _, _ := strings.Cut(text, "\n")
	return &line
}

func firstNonEmptyLine(text string) *string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			trimmed := strings.TrimRight(line, "\r")
			return &trimmed
		}
	}
	return nil
}

func lastNonEmptyLine(text string) *string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			trimmed := strings.TrimRight(lines[i], "\r")
			return &trimmed
		}
	}
	return nil
}

// dedupe keeps the first occurrence of each line number, preserving order.
func dedupe(lines []int) []int {
	seen := make(map[int]bool, len(lines))
	out := lines[:0]
	for _, n := range lines {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func withLines(d Diagnostic, lines []int) Diagnostic {
	lines = dedupe(lines)
	if len(lines) > 0 {
		first := lines[0]
		d.Line = &first
		d.Lines = lines
	}
	return d
}
