package normalize_test

import (
	"regexp"
	"strings"
	"testing"

	"codearena/internal/judge/normalize"
)

func TestNormalizeWhitespaceCollapse(t *testing.T) {
	opts := normalize.Options{IgnoreWhitespace: true}

	cases := map[string]string{
		"hello  world":      "hello world",
		"  hello world  ":   "hello world",
		"hello\nworld\n":    "hello world",
		"a\t b\n\nc":        "a b c",
		"":                  "",
		"   \n\t ":          "",
		"single":            "single",
		"5\n":               "5",
	}
	for in, want := range cases {
		if got := normalize.Normalize(in, opts); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTrimOnly(t *testing.T) {
	opts := normalize.Options{}
	if got := normalize.Normalize("  a \n b  \n", opts); got != "a \n b" {
		t.Errorf("internal whitespace must be preserved, got %q", got)
	}
}

func TestNormalizeIgnoreCase(t *testing.T) {
	opts := normalize.Options{IgnoreWhitespace: true, IgnoreCase: true}
	if got := normalize.Normalize("Hello\nWorld \n", opts); got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
	if !normalize.Equal("Hello\nWorld \n", "hello world", opts) {
		t.Error("expected case/whitespace-insensitive equality")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "a b", "  A\n\nB ", "x\ty\nz", "MiXeD Case\n"}
	variants := []normalize.Options{
		{},
		{IgnoreWhitespace: true},
		{IgnoreCase: true},
		{IgnoreWhitespace: true, IgnoreCase: true},
	}
	for _, opts := range variants {
		for _, in := range inputs {
			once := normalize.Normalize(in, opts)
			twice := normalize.Normalize(once, opts)
			if once != twice {
				t.Errorf("not idempotent for %q with %+v: %q != %q", in, opts, once, twice)
			}
		}
	}
}

func TestNormalizeMatchesCollapsedInput(t *testing.T) {
	// Collapsing whitespace up front must not change the outcome.
	ws := regexp.MustCompile(`\s+`)
	opts := normalize.Options{IgnoreWhitespace: true}
	for _, in := range []string{"a  b\nc", "\n\nx\t\ty  ", "no change"} {
		pre := strings.TrimSpace(ws.ReplaceAllString(in, " "))
		if normalize.Normalize(in, opts) != normalize.Normalize(pre, opts) {
			t.Errorf("Normalize(%q) differs from Normalize of pre-collapsed input", in)
		}
	}
}

func TestEqualTrailingNewline(t *testing.T) {
	opts := normalize.Options{IgnoreWhitespace: true}
	if !normalize.Equal("5\n", "5", opts) {
		t.Error("trailing newline from sandbox stdout must not fail the comparison")
	}
}
