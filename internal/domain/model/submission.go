package model

import "time"

// Submission is a persisted graded attempt. Resubmission creates a new
// record; rows are never mutated after grading completes.
type Submission struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	ProblemID   string           `json:"problemId"`
	ContestID   *string          `json:"contestId,omitempty"`
	Language    string           `json:"language"`
	Code        string           `json:"code"`
	Status      Status           `json:"status"`
	RuntimeMs   *int             `json:"runtime,omitempty"`
	TestResults []TestCaseResult `json:"testCases,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}
