package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
	"codearena/internal/judge"
	"codearena/internal/judge/normalize"
	"codearena/internal/sandbox"
)

// ContestService grades contest code against a problem's judging cases.
// "Run" gives feedback only; "Submit" persists a Submission with a graded
// verdict and refreshes the contest's submission history.
type ContestService struct {
	sandbox  *sandbox.Client
	problems *ProblemService
	subs     repository.SubmissionRepository
	rdb      *redis.Client
	db       *sql.DB
	lockTTL  time.Duration
	log      *zap.Logger
}

func NewContestService(
	sb *sandbox.Client,
	problems *ProblemService,
	subs repository.SubmissionRepository,
	rdb *redis.Client,
	db *sql.DB,
	lockTTL time.Duration,
	log *zap.Logger,
) *ContestService {
	return &ContestService{
		sandbox:  sb,
		problems: problems,
		subs:     subs,
		rdb:      rdb,
		db:       db,
		lockTTL:  lockTTL,
		log:      log,
	}
}

type ContestRequest struct {
	UserID    string `json:"userId"`
	ProblemID string `json:"problemId"`
	ContestID string `json:"contestId,omitempty"`
	Language  string `json:"language"`
	Code      string `json:"code"`
}

// SubmitOutcome pairs the graded result with the freshly refetched
// submission history. The history is re-read in full after every submit to
// stay consistent with stored state; there is no incremental merge.
type SubmitOutcome struct {
	Result      *model.CodeExecutionResult `json:"result"`
	Submissions []model.Submission         `json:"submissions"`
}

// Run grades the code for feedback without persisting anything.
func (s *ContestService) Run(ctx context.Context, req ContestRequest) (*model.CodeExecutionResult, error) {
	lang, ok := model.ParseLanguage(req.Language)
	if !ok {
		return nil, common.Errorf("unknown language %q: %w", req.Language, common.ErrBadRequest)
	}

	cases, err := s.problems.GetTestCases(ctx, req.ProblemID)
	if err != nil {
		return nil, err
	}

	result := s.grade(ctx, lang, req.Code, cases)
	result.IsSubmission = false
	return result, nil
}

// Submit grades the code and persists a Submission record. Exactly one
// graded submission may be in flight per user and problem: the slot is a
// redis SetNX lock, and a second submit while it is held is rejected, never
// queued.
func (s *ContestService) Submit(ctx context.Context, req ContestRequest) (*SubmitOutcome, error) {
	lang, ok := model.ParseLanguage(req.Language)
	if !ok {
		return nil, common.Errorf("unknown language %q: %w", req.Language, common.ErrBadRequest)
	}

	lockKey := "submit_lock:" + req.UserID + ":" + req.ProblemID
	lockValue := uuid.NewString()
	acquired, err := s.rdb.SetNX(ctx, lockKey, lockValue, s.lockTTL).Result()
	if err != nil {
		return nil, common.Errorf("failed to acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, common.ErrSubmitInFlight
	}
	defer s.releaseLock(lockKey, lockValue)

	problem, err := s.problems.GetProblem(ctx, req.ProblemID)
	if err != nil {
		return nil, err
	}
	cases, err := s.problems.GetTestCases(ctx, req.ProblemID)
	if err != nil {
		return nil, err
	}

	result := s.grade(ctx, lang, req.Code, cases)
	result.IsSubmission = true
	result.CodecoinReward = problem.CodecoinReward

	submission := &model.Submission{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		ProblemID:   req.ProblemID,
		Language:    lang.Slug(),
		Code:        req.Code,
		Status:      result.Status,
		RuntimeMs:   result.RuntimeMs,
		TestResults: result.TestCases,
		CreatedAt:   time.Now().UTC(),
	}
	if req.ContestID != "" {
		contestID := req.ContestID
		submission.ContestID = &contestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.subs.CreateSubmission(ctx, tx, submission); err != nil {
		return nil, err
	}
	if result.Status == model.StatusAccepted {
		firstSolve, err := s.subs.MarkProblemSolved(ctx, tx, req.UserID, req.ProblemID, submission.ID)
		if err != nil {
			return nil, err
		}
		if firstSolve && problem.CodecoinReward != nil {
			earned := *problem.CodecoinReward
			result.EarnedCodecoin = &earned
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit submission: %w", err)
	}

	s.log.Info("submission graded",
		zap.String("submission", submission.ID),
		zap.String("problem", req.ProblemID),
		zap.String("status", string(result.Status)))

	history, err := s.ListSubmissions(ctx, req.ContestID, req.UserID)
	if err != nil {
		// The submission is committed; a stale history list is the lesser
		// failure.
		s.log.Warn("failed to refresh submission history", zap.Error(err))
		history = nil
	}

	return &SubmitOutcome{Result: result, Submissions: history}, nil
}

// ListSubmissions returns the full submission history for a contest.
func (s *ContestService) ListSubmissions(ctx context.Context, contestID, userID string) ([]model.Submission, error) {
	return s.subs.ListSubmissions(ctx, contestID, userID)
}

// GetSubmission loads one submission snapshot. Selecting it from history
// replaces the caller's code buffer, language and displayed result
// wholesale.
func (s *ContestService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.subs.GetSubmissionByID(ctx, id)
}

// grade runs every judging case sequentially and folds the per-case
// statuses into one verdict. Grading always compares under collapsed
// whitespace: sandbox stdout carries a trailing newline the stored expected
// output lacks.
func (s *ContestService) grade(ctx context.Context, lang model.SourceLanguage, code string, cases []model.TestCase) *model.CodeExecutionResult {
	opts := normalize.Options{IgnoreWhitespace: true}

	results := make([]model.TestCaseResult, 0, len(cases))
	passed := 0
	var maxRuntime, maxMemory int
	var haveRuntime, haveMemory bool

	for _, tc := range cases {
		start := time.Now()
		res, execErr := s.sandbox.Execute(ctx, sandbox.Request{
			Code:  code,
			Input: tc.Input,
			Lang:  lang,
		})
		elapsed := int(time.Since(start).Milliseconds())

		exitCode := res.ExitCode
		if execErr != nil {
			exitCode = nil
		}
		status := judge.CaseStatus(lang, exitCode, res.Output, tc.Expected, opts)

		runtime := elapsed
		if res.RuntimeMs != nil {
			runtime = *res.RuntimeMs
		}
		if runtime > maxRuntime {
			maxRuntime = runtime
		}
		haveRuntime = true
		if res.MemoryKb != nil && *res.MemoryKb > maxMemory {
			maxMemory = *res.MemoryKb
			haveMemory = true
		}

		caseResult := model.TestCaseResult{
			Input:     tc.Input,
			Expected:  tc.Expected,
			Output:    res.Output,
			Passed:    status == model.StatusAccepted,
			Status:    status,
			RuntimeMs: runtime,
		}
		if caseResult.Passed {
			passed++
		}
		results = append(results, caseResult)
	}

	overall := judge.Aggregate(results)
	total := len(results)
	result := &model.CodeExecutionResult{
		Status:      overall,
		TestCases:   results,
		TestsPassed: &passed,
		TotalTests:  &total,
	}
	if haveRuntime {
		runtime := maxRuntime
		result.RuntimeMs = &runtime
	}
	if haveMemory {
		memory := maxMemory
		result.MemoryKb = &memory
	}

	switch overall {
	case model.StatusAccepted:
		msg := "All test cases passed"
		result.Message = &msg
	case model.StatusError:
		errMsg := "Execution service unavailable"
		result.Error = &errMsg
	default:
		for _, r := range results {
			if r.Status != model.StatusAccepted {
				errMsg := r.Output
				result.Error = &errMsg
				break
			}
		}
	}
	return result
}

// releaseLock frees the submit slot only if this request still holds it,
// via the same compare-and-delete script used for any distributed lock
// here.
func (s *ContestService) releaseLock(key, value string) {
	script := redis.NewScript(`
        if redis.call("get", KEYS[1]) == ARGV[1] then
            return redis.call("del", KEYS[1])
        else
            return 0
        end
    `)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := script.Run(ctx, s.rdb, []string{key}, value).Result(); err != nil {
		s.log.Error("failed to release submit lock", zap.String("key", key), zap.Error(err))
	}
}
