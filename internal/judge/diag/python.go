package diag

import (
	"regexp"
	"strconv"
)

// pythonFileRe matches traceback locations: `File "main.py", line 3`.
var pythonFileRe = regexp.MustCompile(`File "[^"]*", line (\d+)`)

type pythonLocator struct{}

func (pythonLocator) parse(text string) Diagnostic {
	var lines []int
	for _, m := range pythonFileRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			lines = append(lines, n)
		}
	}

	// Python prints the exception message last.
	summary := lastNonEmptyLine(text)
	if summary == nil {
		fallback := "Error"
		summary = &fallback
	}
	return withLines(Diagnostic{Summary: summary}, lines)
}

func (pythonLocator) compileError(text string) bool {
	// Python has no separate compile phase; syntax failures are the
	// closest equivalent.
	return pythonSyntaxRe.MatchString(text)
}

var pythonSyntaxRe = regexp.MustCompile(`(?m)^\s*(SyntaxError|IndentationError|TabError)\b`)
