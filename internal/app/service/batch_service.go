package service

import (
	"context"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/judge/diag"
	"codearena/internal/judge/normalize"
	"codearena/internal/sandbox"
)

// batchCaseFailure is the output recorded for a case whose transport call
// failed; the failure stays isolated to that case.
const batchCaseFailure = "Error: Failed to run test case"

// BatchService runs an ordered test-case sequence strictly sequentially
// against the sandbox. Cases are never parallelized: sequencing bounds load
// on the shared sandbox and keeps the inter-case delay meaningful.
type BatchService struct {
	sandbox *sandbox.Client
	guard   *SessionGuard
	delay   time.Duration
	log     *zap.Logger
}

func NewBatchService(sb *sandbox.Client, guard *SessionGuard, delay time.Duration, log *zap.Logger) *BatchService {
	return &BatchService{sandbox: sb, guard: guard, delay: delay, log: log}
}

type BatchRequest struct {
	SessionID string
	Language  model.SourceLanguage
	Code      string
	Cases     []model.TestCase
	Opts      normalize.Options
}

// BatchOutcome aggregates a finished batch. Diagnostic belongs to the first
// case that reported a non-zero exit code; later failures do not overwrite
// it.
type BatchOutcome struct {
	Cases      []model.TestCase `json:"testcases"`
	Diagnostic *diag.Diagnostic `json:"diagnostic,omitempty"`
	FailedCase *int             `json:"failedCase,omitempty"`
}

// Run executes every case in order. onCase, when non-nil, observes each
// case's result the moment it completes so the UI can render incrementally.
// A per-case transport failure is converted into that case's result and the
// batch continues; an empty sequence is a no-op.
func (s *BatchService) Run(ctx context.Context, req BatchRequest, onCase func(index int, tc model.TestCase)) (*BatchOutcome, error) {
	if len(req.Cases) == 0 {
		return &BatchOutcome{Cases: req.Cases}, nil
	}
	if !s.guard.acquire(req.SessionID) {
		return nil, common.ErrRunInProgress
	}
	defer s.guard.release(req.SessionID)

	outcome := &BatchOutcome{Cases: req.Cases}
	for i := range outcome.Cases {
		outcome.Cases[i].ResetTransient()
	}

	for i := range outcome.Cases {
		tc := &outcome.Cases[i]

		start := time.Now()
		res, execErr := s.sandbox.Execute(ctx, sandbox.Request{
			Code:  req.Code,
			Input: tc.Input,
			Lang:  req.Language,
		})
		// Wall clock measured here is authoritative for batch runs; the
		// sandbox's own figure is not used.
		elapsed := int(time.Since(start).Milliseconds())
		tc.RuntimeMs = &elapsed

		if execErr != nil {
			output := batchCaseFailure
			failed := false
			exit := -1
			tc.Output = &output
			tc.Passed = &failed
			tc.ExitCode = &exit
			s.log.Warn("batch case transport failure",
				zap.Int("case", i), zap.Error(execErr))
		} else {
			output := res.Output
			tc.Output = &output
			tc.ExitCode = res.ExitCode

			if res.ExitCode != nil && *res.ExitCode != 0 && outcome.Diagnostic == nil {
				d := diag.Parse(req.Language, res.Output)
				idx := i
				outcome.Diagnostic = &d
				outcome.FailedCase = &idx
			}
			if tc.Expected != "" {
				passed := normalize.Equal(res.Output, tc.Expected, req.Opts)
				tc.Passed = &passed
			}
		}

		if onCase != nil {
			onCase(i, *tc)
		}
		if s.delay > 0 && i < len(outcome.Cases)-1 {
			time.Sleep(s.delay)
		}
	}

	return outcome, nil
}

// ExportFilename suggests a download name for an exported test-case file.
func ExportFilename(problemID *string) string {
	if problemID == nil || *problemID == "" {
		return "testcases.json"
	}
	return "testcases-" + slug.Make(*problemID) + ".json"
}
