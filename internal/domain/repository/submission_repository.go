package repository

import (
	"context"
	"database/sql"

	"codearena/internal/domain/model"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	// ListSubmissions returns the full history for a contest (optionally
	// narrowed to one user), newest first. Callers refetch in full after a
	// submit; there is no incremental merge.
	ListSubmissions(ctx context.Context, contestID string, userID string) ([]model.Submission, error)
	// MarkProblemSolved records a first accepted solve. Returns true only
	// the first time a user solves the problem.
	MarkProblemSolved(ctx context.Context, tx *sql.Tx, userID, problemID, submissionID string) (bool, error)
}
