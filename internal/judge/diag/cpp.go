package diag

import (
	"regexp"
	"strconv"
)

// cppErrorRe matches GCC-style diagnostics ":12:5: error: ..." with an
// optional column.
var cppErrorRe = regexp.MustCompile(`:(\d+)(?::\d+)?:[^\n]*error`)

type cppLocator struct{}

func (cppLocator) parse(text string) Diagnostic {
	var lines []int
	for _, m := range cppErrorRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			lines = append(lines, n)
		}
	}
	d := Diagnostic{Summary: firstLine(text)}
	return withLines(d, lines)
}

func (cppLocator) compileError(text string) bool {
	return cppErrorRe.MatchString(text)
}
