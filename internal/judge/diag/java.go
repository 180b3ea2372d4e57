package diag

import (
	"regexp"
	"strconv"
)

// javaCompileRe matches javac diagnostics: "Main.java:12: error: ...".
var javaCompileRe = regexp.MustCompile(`(?m)([A-Za-z_][A-Za-z0-9_]*)\.java:(\d+):\s*error`)

// javaFrameRe matches runtime stack-trace frames: "(Main.java:12)".
var javaFrameRe = regexp.MustCompile(`\(([A-Za-z_][A-Za-z0-9_]*)\.java:(\d+)\)`)

type javaLocator struct{}

func (javaLocator) parse(text string) Diagnostic {
	var lines []int
	compile := javaCompileRe.FindAllStringSubmatch(text, -1)
	for _, m := range compile {
		if n, err := strconv.Atoi(m[2]); err == nil {
			lines = append(lines, n)
		}
	}
	for _, m := range javaFrameRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[2]); err == nil {
			lines = append(lines, n)
		}
	}

	var d Diagnostic
	if len(compile) > 0 {
		d.Summary = firstLine(text)
	} else {
		d.Summary = firstNonEmptyLine(text)
	}
	return withLines(d, lines)
}

func (javaLocator) compileError(text string) bool {
	return javaCompileRe.MatchString(text)
}
