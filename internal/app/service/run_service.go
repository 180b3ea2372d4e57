package service

import (
	"context"

	"go.uber.org/zap"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/judge/diag"
	"codearena/internal/judge/normalize"
	"codearena/internal/sandbox"
	"codearena/internal/scratch"
)

// RunService drives a single editor execution: one sandbox call, diagnostic
// extraction on failure, and pass/fail against an optional expected output.
type RunService struct {
	sandbox *sandbox.Client
	guard   *SessionGuard
	scratch scratch.Store
	log     *zap.Logger
}

func NewRunService(sb *sandbox.Client, guard *SessionGuard, store scratch.Store, log *zap.Logger) *RunService {
	return &RunService{sandbox: sb, guard: guard, scratch: store, log: log}
}

type RunRequest struct {
	SessionID string               `json:"sessionId"`
	Language  model.SourceLanguage `json:"-"`
	Code      string               `json:"code"`
	Input     string               `json:"input"`
	Expected  string               `json:"expected"`
	Opts      normalize.Options    `json:"-"`
}

// RunResult is the UI-facing outcome of one run. Passed is nil when no
// expected output was given: comparison is not applicable, neither pass nor
// fail. Diagnostic is recomputed from scratch on every failing run, never
// merged with a prior one.
type RunResult struct {
	Output     string           `json:"output"`
	Stdout     string           `json:"stdout"`
	Stderr     string           `json:"stderr"`
	ExitCode   *int             `json:"exitCode,omitempty"`
	RuntimeMs  *int             `json:"runtimeMs,omitempty"`
	MemoryKb   *int             `json:"memoryKb,omitempty"`
	Passed     *bool            `json:"passed,omitempty"`
	Diagnostic *diag.Diagnostic `json:"diagnostic,omitempty"`
	// ShowLog tells the UI to reveal the diagnostic log panel.
	ShowLog bool `json:"showLog"`
}

// Run executes the session's buffer once. Rejects with ErrRunInProgress
// while the session's slot is taken; the slot is always released, whatever
// the outcome.
func (s *RunService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if !s.guard.acquire(req.SessionID) {
		return nil, common.ErrRunInProgress
	}
	defer s.guard.release(req.SessionID)

	// Convenience cache only; a write failure must not block the run.
	if err := s.SaveScratch(ctx, req.SessionID, Scratchpad{Input: req.Input, Expected: req.Expected}); err != nil {
		s.log.Warn("failed to persist scratch fields", zap.String("session", req.SessionID), zap.Error(err))
	}

	res, execErr := s.sandbox.Execute(ctx, sandbox.Request{
		Code:  req.Code,
		Input: req.Input,
		Lang:  req.Language,
	})

	out := &RunResult{
		Output:    res.Output,
		Stdout:    res.Output,
		Stderr:    res.Output,
		ExitCode:  res.ExitCode,
		RuntimeMs: res.RuntimeMs,
		MemoryKb:  res.MemoryKb,
	}
	if res.Stdout != nil {
		out.Stdout = *res.Stdout
	}
	if res.Stderr != nil {
		out.Stderr = *res.Stderr
	}

	if execErr != nil {
		failed := false
		out.Passed = &failed
		out.ShowLog = true
		return out, nil
	}

	if res.ExitCode != nil && *res.ExitCode != 0 {
		d := diag.Parse(req.Language, res.Output)
		out.Diagnostic = &d
		out.ShowLog = true
	}

	if req.Expected != "" {
		passed := normalize.Equal(res.Output, req.Expected, req.Opts)
		out.Passed = &passed
	}

	return out, nil
}

// Scratchpad is the locally persisted pair of single-run text fields.
type Scratchpad struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

const (
	scratchInputKey    = ":run:input"
	scratchExpectedKey = ":run:expected"
)

func (s *RunService) LoadScratch(ctx context.Context, session string) (Scratchpad, error) {
	var pad Scratchpad
	input, _, err := s.scratch.Get(ctx, session+scratchInputKey)
	if err != nil {
		return pad, common.Errorf("failed to load scratch input: %w", err)
	}
	expected, _, err := s.scratch.Get(ctx, session+scratchExpectedKey)
	if err != nil {
		return pad, common.Errorf("failed to load scratch expected output: %w", err)
	}
	pad.Input = input
	pad.Expected = expected
	return pad, nil
}

func (s *RunService) SaveScratch(ctx context.Context, session string, pad Scratchpad) error {
	if err := s.scratch.Set(ctx, session+scratchInputKey, pad.Input); err != nil {
		return common.Errorf("failed to save scratch input: %w", err)
	}
	if err := s.scratch.Set(ctx, session+scratchExpectedKey, pad.Expected); err != nil {
		return common.Errorf("failed to save scratch expected output: %w", err)
	}
	return nil
}
