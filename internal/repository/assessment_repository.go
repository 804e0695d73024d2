package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepmind/prepmind-backend/internal/model"
)

// ErrAlreadyCompleted is returned when a completion is attempted on an
// assessment that is no longer active. The losing side of a concurrent
// double submission sees this error.
var ErrAlreadyCompleted = errors.New("assessment already completed")

// Completion carries everything written during the single grading
// transition.
type Completion struct {
	Answers      map[string]string
	Results      []model.GradingResult
	Score        int
	Percentage   int
	CorrectCount int
	Grade        string
	CompletedAt  time.Time
}

// AssessmentRepository handles assessment data access. Question sets,
// submitted answers, and grading results are stored as JSONB.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Create persists a new assessment in active state.
func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	questionsJSON, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO assessments (id, user_id, document_id, questions, total_points, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		a.ID, a.UserID, a.DocumentID, questionsJSON, a.TotalPoints, a.Status,
	).Scan(&a.CreatedAt)
}

// GetByID retrieves a full assessment, including grading fields when
// it has been completed.
func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	a := &model.Assessment{}
	var questionsJSON, answersJSON, resultsJSON []byte

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, document_id, questions, total_points, status,
		        submitted_answers, results, score, percentage, correct_count, grade,
		        created_at, completed_at
		 FROM assessments WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.UserID, &a.DocumentID, &questionsJSON, &a.TotalPoints, &a.Status,
		&answersJSON, &resultsJSON, &a.Score, &a.Percentage, &a.CorrectCount, &a.Grade,
		&a.CreatedAt, &a.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionsJSON, &a.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if answersJSON != nil {
		if err := json.Unmarshal(answersJSON, &a.SubmittedAnswers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	if resultsJSON != nil {
		if err := json.Unmarshal(resultsJSON, &a.Results); err != nil {
			return nil, fmt.Errorf("unmarshal results: %w", err)
		}
	}
	return a, nil
}

// ListByUser retrieves assessment summaries for a user, newest first.
func (r *AssessmentRepository) ListByUser(ctx context.Context, userID int) ([]model.AssessmentSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, document_id, jsonb_array_length(questions), total_points, status,
		        score, percentage, grade, created_at, completed_at
		 FROM assessments
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.AssessmentSummary
	for rows.Next() {
		var s model.AssessmentSummary
		if err := rows.Scan(
			&s.ID, &s.DocumentID, &s.QuestionCount, &s.TotalPoints, &s.Status,
			&s.Score, &s.Percentage, &s.Grade, &s.CreatedAt, &s.CompletedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Complete performs the single active -> completed transition as an
// atomic conditional update. When the row exists but is no longer
// active (a concurrent submission won the race, or the assessment was
// graded earlier) it returns ErrAlreadyCompleted; a missing row returns
// ErrNotFound. Nothing is ever overwritten.
func (r *AssessmentRepository) Complete(ctx context.Context, id uuid.UUID, c Completion) error {
	answersJSON, err := json.Marshal(c.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	resultsJSON, err := json.Marshal(c.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE assessments
		 SET status = $1,
		     submitted_answers = $2,
		     results = $3,
		     score = $4,
		     percentage = $5,
		     correct_count = $6,
		     grade = $7,
		     completed_at = $8
		 WHERE id = $9 AND status = $10`,
		model.AssessmentStatusCompleted, answersJSON, resultsJSON,
		c.Score, c.Percentage, c.CorrectCount, c.Grade, c.CompletedAt,
		id, model.AssessmentStatusActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row transitioned: distinguish missing from already completed.
	var status model.AssessmentStatus
	err = r.pool.QueryRow(ctx,
		`SELECT status FROM assessments WHERE id = $1`, id,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyCompleted
}
