package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type PgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) *PgSubmissionRepository {
	return &PgSubmissionRepository{db: db}
}

var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// execer lets the same query run inside or outside a transaction.
func (r *PgSubmissionRepository) execer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *PgSubmissionRepository) CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	results, err := json.Marshal(sub.TestResults)
	if err != nil {
		return common.Errorf("failed to marshal test results: %w", err)
	}

	query := `INSERT INTO submissions
		(id, user_id, problem_id, contest_id, language, code, status, runtime_ms, test_results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.execer(tx).ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.ProblemID, sub.ContestID, sub.Language,
		sub.Code, sub.Status, sub.RuntimeMs, results, sub.CreatedAt)
	if err != nil {
		return common.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (r *PgSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT id, user_id, problem_id, contest_id, language, code, status, runtime_ms, test_results, created_at
		FROM submissions WHERE id = $1`
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.Errorf("submission %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.Errorf("failed to fetch submission %s: %w", id, err)
	}
	return sub, nil
}

func (r *PgSubmissionRepository) ListSubmissions(ctx context.Context, contestID string, userID string) ([]model.Submission, error) {
	query := `SELECT id, user_id, problem_id, contest_id, language, code, status, runtime_ms, test_results, created_at
		FROM submissions WHERE contest_id = $1`
	args := []any{contestID}
	if userID != "" {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.Errorf("failed to list submissions for contest %s: %w", contestID, err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, common.Errorf("failed to scan submission row: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (r *PgSubmissionRepository) MarkProblemSolved(ctx context.Context, tx *sql.Tx, userID, problemID, submissionID string) (bool, error) {
	query := `INSERT INTO user_solved_problems (user_id, problem_id, submission_id, solved_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, problem_id) DO NOTHING`
	res, err := r.execer(tx).ExecContext(ctx, query, userID, problemID, submissionID)
	if err != nil {
		return false, common.Errorf("failed to mark problem %s solved: %w", problemID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, common.Errorf("failed to read solve insert result: %w", err)
	}
	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*model.Submission, error) {
	var (
		sub     model.Submission
		results []byte
	)
	err := row.Scan(&sub.ID, &sub.UserID, &sub.ProblemID, &sub.ContestID, &sub.Language,
		&sub.Code, &sub.Status, &sub.RuntimeMs, &results, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &sub.TestResults); err != nil {
			return nil, err
		}
	}
	return &sub, nil
}
