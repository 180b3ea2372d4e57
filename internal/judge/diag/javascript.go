package diag

import (
	"regexp"
	"strconv"
)

// jsFrameRe matches V8 stack-trace locations ":12:34".
var jsFrameRe = regexp.MustCompile(`:(\d+):(\d+)`)

type jsLocator struct{}

func (jsLocator) parse(text string) Diagnostic {
	var lines []int
	for _, m := range jsFrameRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			lines = append(lines, n)
		}
	}
	d := Diagnostic{Summary: firstLine(text)}
	return withLines(d, lines)
}

func (jsLocator) compileError(text string) bool {
	return jsSyntaxRe.MatchString(text)
}

var jsSyntaxRe = regexp.MustCompile(`\bSyntaxError\b`)
