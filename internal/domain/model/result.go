package model

// Status is the graded verdict of a judged run, distinct from the raw
// process exit code: a compilation_error is a successful transport call
// carrying a negative verdict, not a network failure.
type Status string

const (
	StatusRunning           Status = "running"
	StatusAccepted          Status = "accepted"
	StatusWrongAnswer       Status = "wrong_answer"
	StatusRuntimeError      Status = "runtime_error"
	StatusCompilationError  Status = "compilation_error"
	StatusTimeLimitExceeded Status = "time_limit_exceeded"
	StatusError             Status = "error"
)

// Terminal reports whether the status can no longer transition.
func (s Status) Terminal() bool {
	return s != StatusRunning && s != ""
}

// TestCaseResult is the graded outcome of a single case inside a contest
// run or submission.
type TestCaseResult struct {
	Input     string `json:"input"`
	Expected  string `json:"expected,omitempty"`
	Output    string `json:"output"`
	Passed    bool   `json:"passed"`
	Status    Status `json:"status"`
	RuntimeMs int    `json:"runtimeMs"`
}

// CodeExecutionResult is the response shape shared by contest "run" and
// "submit" requests. Never mutated after the response is built; a new result
// replaces the old one wholesale.
type CodeExecutionResult struct {
	Status         Status           `json:"status"`
	Message        *string          `json:"message,omitempty"`
	Error          *string          `json:"error,omitempty"`
	TestCases      []TestCaseResult `json:"testCases,omitempty"`
	TestsPassed    *int             `json:"testsPassed,omitempty"`
	TotalTests     *int             `json:"totalTests,omitempty"`
	RuntimeMs      *int             `json:"runtimeMs,omitempty"`
	MemoryKb       *int             `json:"memoryKb,omitempty"`
	IsSubmission   bool             `json:"isSubmission"`
	EarnedCodecoin *int             `json:"earnedCodecoin,omitempty"`
	CodecoinReward *int             `json:"codecoinReward,omitempty"`
}
