package model

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentStatus enumerates assessment lifecycle states.
type AssessmentStatus string

const (
	AssessmentStatusActive    AssessmentStatus = "active"
	AssessmentStatusCompleted AssessmentStatus = "completed"
)

// Assessment is one generated question set tied to a learner.
// It is created in active state and transitions exactly once to
// completed when the learner submits; it is immutable afterwards.
type Assessment struct {
	ID               uuid.UUID         `json:"id"`
	UserID           int               `json:"user_id"`
	DocumentID       uuid.UUID         `json:"document_id"`
	Questions        []Question        `json:"questions"`
	TotalPoints      int               `json:"total_points"`
	Status           AssessmentStatus  `json:"status"`
	SubmittedAnswers map[string]string `json:"submitted_answers,omitempty"`
	Results          []GradingResult   `json:"results,omitempty"`
	Score            *int              `json:"score,omitempty"`
	Percentage       *int              `json:"percentage,omitempty"`
	CorrectCount     *int              `json:"correct_count,omitempty"`
	Grade            *string           `json:"grade,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
}

// Sanitized returns a copy safe to hand out while the assessment is
// active: questions without answer keys, no grading fields.
func (a Assessment) Sanitized() Assessment {
	questions := make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		questions[i] = q.Sanitized()
	}
	a.Questions = questions
	a.SubmittedAnswers = nil
	a.Results = nil
	return a
}

// AssessmentSummary is a listing row without question payloads.
type AssessmentSummary struct {
	ID            uuid.UUID        `json:"id"`
	DocumentID    uuid.UUID        `json:"document_id"`
	QuestionCount int              `json:"question_count"`
	TotalPoints   int              `json:"total_points"`
	Status        AssessmentStatus `json:"status"`
	Score         *int             `json:"score,omitempty"`
	Percentage    *int             `json:"percentage,omitempty"`
	Grade         *string          `json:"grade,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}

// GradingResult is the per-question outcome produced during the single
// grading transition. It is never recomputed.
type GradingResult struct {
	QuestionID    uuid.UUID `json:"question_id"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	PointsAwarded int       `json:"points_awarded"`
	Explanation   string    `json:"explanation,omitempty"`
}

// GenerateAssessmentRequest is the payload for compiling a new assessment.
type GenerateAssessmentRequest struct {
	DocumentID    string   `json:"document_id" binding:"required,uuid"`
	QuestionCount int      `json:"question_count" binding:"omitempty,min=1,max=50"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	QuestionTypes []string `json:"question_types" binding:"omitempty,dive,oneof=multiple-choice true-false short-answer fill-blank"`
}

// SubmitAnswersRequest is the payload for submitting learner answers.
// An empty map is valid: every question grades as incorrect.
type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}
