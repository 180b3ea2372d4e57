// Package judge derives grading verdicts from raw execution results.
package judge

import (
	"codearena/internal/domain/model"
	"codearena/internal/judge/diag"
	"codearena/internal/judge/normalize"
)

// timeoutExitCode is the conventional exit code the sandbox reports when a
// program is killed for exceeding its time limit.
const timeoutExitCode = 124

// CaseStatus grades a single executed case. A nil exit code means the
// transport itself failed, which is a system error, never a verdict.
func CaseStatus(lang model.SourceLanguage, exitCode *int, output, expected string, opts normalize.Options) model.Status {
	if exitCode == nil {
		return model.StatusError
	}
	switch {
	case *exitCode == timeoutExitCode:
		return model.StatusTimeLimitExceeded
	case *exitCode != 0:
		if diag.LooksLikeCompileError(lang, output) {
			return model.StatusCompilationError
		}
		return model.StatusRuntimeError
	}
	if expected == "" || normalize.Equal(output, expected, opts) {
		return model.StatusAccepted
	}
	return model.StatusWrongAnswer
}

// Aggregate folds per-case statuses into an overall verdict: the first
// non-accepted case in order decides, accepted only when every case passed.
func Aggregate(results []model.TestCaseResult) model.Status {
	for _, r := range results {
		if r.Status != model.StatusAccepted {
			return r.Status
		}
	}
	return model.StatusAccepted
}
