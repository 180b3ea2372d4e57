package model

import "strings"

// SourceLanguage is the closed set of languages the editor can execute.
type SourceLanguage string

const (
	LangJava       SourceLanguage = "Java"
	LangCpp        SourceLanguage = "Cpp"
	LangPython     SourceLanguage = "Python"
	LangJavaScript SourceLanguage = "JavaScript"
)

// Languages returns every supported language in a stable order.
func Languages() []SourceLanguage {
	return []SourceLanguage{LangJava, LangCpp, LangPython, LangJavaScript}
}

// languageAliases maps the open string identifiers used by the contest API
// (and by problem starter-code maps) onto the closed variant.
var languageAliases = map[string]SourceLanguage{
	"java":       LangJava,
	"cpp":        LangCpp,
	"c++":        LangCpp,
	"python":     LangPython,
	"py":         LangPython,
	"javascript": LangJavaScript,
	"js":         LangJavaScript,
	"node":       LangJavaScript,
}

// ParseLanguage resolves a case-insensitive language identifier or alias.
func ParseLanguage(s string) (SourceLanguage, bool) {
	lang, ok := languageAliases[strings.ToLower(strings.TrimSpace(s))]
	return lang, ok
}

// Slug is the open string form used on the wire by the contest endpoints.
func (l SourceLanguage) Slug() string {
	switch l {
	case LangJava:
		return "java"
	case LangCpp:
		return "cpp"
	case LangPython:
		return "python"
	case LangJavaScript:
		return "javascript"
	}
	return ""
}

// HighlightHint is the syntax-highlighting mode name for the editor.
func (l SourceLanguage) HighlightHint() string {
	switch l {
	case LangJava:
		return "text/x-java"
	case LangCpp:
		return "text/x-c++src"
	case LangPython:
		return "python"
	case LangJavaScript:
		return "javascript"
	}
	return "text/plain"
}

// defaultTemplates is the immutable starter-code table, loaded once.
// Buffers still equal to their template may be replaced by problem-specific
// starter code; user-edited buffers never are.
var defaultTemplates = map[SourceLanguage]string{
	LangJava: `import java.util.*;

public class Main {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);
        // Write your code here
    }
}
`,
	LangCpp: `#include <bits/stdc++.h>
using namespace std;

int main() {
    // Write your code here
    return 0;
}
`,
	LangPython: `import sys

def main():
    data = sys.stdin.read().split()
    # Write your code here

main()
`,
	LangJavaScript: `const lines = require("fs").readFileSync(0, "utf8").split("\n");
// Write your code here
`,
}

// DefaultTemplate returns the built-in starter code for a language.
func DefaultTemplate(l SourceLanguage) string {
	return defaultTemplates[l]
}

// IsDefaultTemplate reports whether a buffer is still the unmodified
// built-in template for the language.
func IsDefaultTemplate(l SourceLanguage, buffer string) bool {
	return strings.TrimSpace(buffer) == strings.TrimSpace(defaultTemplates[l])
}
