package sandbox

import (
	"fmt"
	"regexp"
)

var (
	javaPublicMainRe  = regexp.MustCompile(`public\s+class\s+Main\b`)
	javaPublicClassRe = regexp.MustCompile(`public\s+class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	javaAnyClassRe    = regexp.MustCompile(`\bclass\s+([A-Za-z_][A-Za-z0-9_]*)`)
	javaMainMethodRe  = regexp.MustCompile(`public\s+static\s+void\s+main\s*\(`)
)

// WrapJavaSource makes user source runnable by a sandbox that expects a
// public class Main entry point. A public class carrying main is renamed to
// package-private and a delegating Main is appended; with no public class
// but some class defining main, only the delegating wrapper is appended.
// Source with no main method at all passes through unmodified: there is
// nothing safe to delegate to, and that is a known limitation, not an
// error. Runs before every Java execution, single-run and batch alike.
func WrapJavaSource(src string) string {
	if javaPublicMainRe.MatchString(src) {
		return src
	}
	if !javaMainMethodRe.MatchString(src) {
		return src
	}

	if m := javaPublicClassRe.FindStringSubmatch(src); m != nil {
		original := m[1]
		demoted := javaPublicClassRe.ReplaceAllString(src, "class $1")
		return demoted + delegatingMain(original)
	}

	if m := javaAnyClassRe.FindStringSubmatch(src); m != nil {
		return src + delegatingMain(m[1])
	}

	return src
}

func delegatingMain(class string) string {
	return fmt.Sprintf(`

public class Main {
    public static void main(String[] args) throws Exception {
        %s.main(args);
    }
}
`, class)
}
