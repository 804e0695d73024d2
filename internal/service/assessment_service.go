package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/prepmind/prepmind-backend/internal/config"
	"github.com/prepmind/prepmind-backend/internal/grading"
	"github.com/prepmind/prepmind-backend/internal/model"
	"github.com/prepmind/prepmind-backend/internal/quizgen"
	"github.com/prepmind/prepmind-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrAlreadySubmitted is returned when grading is attempted on a
// completed assessment. The first grading result stands; nothing is
// overwritten.
var ErrAlreadySubmitted = errors.New("assessment has already been submitted")

// AssessmentStore is the persistence contract for assessments.
// Complete must be an atomic conditional transition: it returns
// repository.ErrAlreadyCompleted when the row is no longer active, so
// concurrent submissions cannot double-grade.
type AssessmentStore interface {
	Create(ctx context.Context, a *model.Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	ListByUser(ctx context.Context, userID int) ([]model.AssessmentSummary, error)
	Complete(ctx context.Context, id uuid.UUID, c repository.Completion) error
}

// AssessmentService owns the assessment lifecycle: compilation,
// retrieval, and the single grading transition.
type AssessmentService struct {
	store   AssessmentStore
	docs    DocumentStore
	rdb     *redis.Client
	log     zerolog.Logger
	newRand func() *rand.Rand
}

// NewAssessmentService creates a new AssessmentService. newRand
// supplies the random source for each compilation; pass nil for the
// time-seeded default (tests inject a fixed seed for deterministic
// generation).
func NewAssessmentService(
	store AssessmentStore,
	docs DocumentStore,
	rdb *redis.Client,
	log zerolog.Logger,
	newRand func() *rand.Rand,
) *AssessmentService {
	if newRand == nil {
		newRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &AssessmentService{
		store:   store,
		docs:    docs,
		rdb:     rdb,
		log:     log.With().Str("component", "assessment_service").Logger(),
		newRand: newRand,
	}
}

// Generate compiles a question set from the user's document and
// persists it as an active assessment. The returned assessment is
// sanitized: answer keys never leave the server while the assessment
// is active. Compilation either persists a complete question set once
// or fails before any persistence call.
func (s *AssessmentService) Generate(ctx context.Context, userID int, documentID uuid.UUID, opts quizgen.CompileOptions) (*model.Assessment, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, repository.ErrNotFound
	}

	questions, err := quizgen.Compile(doc, opts, s.newRand())
	if err != nil {
		return nil, err
	}

	a := &model.Assessment{
		ID:          uuid.New(),
		UserID:      userID,
		DocumentID:  doc.ID,
		Questions:   questions,
		TotalPoints: quizgen.TotalPoints(questions),
		Status:      model.AssessmentStatusActive,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	sanitized := a.Sanitized()
	s.cachePayload(ctx, &sanitized)

	s.log.Info().
		Str("assessment_id", a.ID.String()).
		Int("questions", len(questions)).
		Int("total_points", a.TotalPoints).
		Msg("Assessment compiled")
	return &sanitized, nil
}

// GetByID retrieves an assessment owned by the given user: sanitized
// while active (Redis fast path with DB fallback and self-heal), full
// results once completed.
func (s *AssessmentService) GetByID(ctx context.Context, userID int, id uuid.UUID) (*model.Assessment, error) {
	if cached := s.cachedPayload(ctx, id); cached != nil && cached.UserID == userID {
		return cached, nil
	}

	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, repository.ErrNotFound
	}

	if a.Status == model.AssessmentStatusActive {
		sanitized := a.Sanitized()
		s.cachePayload(ctx, &sanitized)
		return &sanitized, nil
	}
	return a, nil
}

// ListByUser retrieves assessment summaries for a user.
func (s *AssessmentService) ListByUser(ctx context.Context, userID int) ([]model.AssessmentSummary, error) {
	summaries, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []model.AssessmentSummary{}
	}
	return summaries, nil
}

// Submit grades the learner's answers and transitions the assessment
// to completed exactly once. Questions missing from the answer map
// grade as incorrect. A second submission, including one that loses a
// concurrent race, fails with ErrAlreadySubmitted.
func (s *AssessmentService) Submit(ctx context.Context, userID int, id uuid.UUID, answers map[string]string) (*model.Assessment, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if a.Status == model.AssessmentStatusCompleted {
		return nil, ErrAlreadySubmitted
	}

	if answers == nil {
		answers = map[string]string{}
	}
	summary := grading.GradeAll(a.Questions, answers)
	now := time.Now()

	err = s.store.Complete(ctx, id, repository.Completion{
		Answers:      answers,
		Results:      summary.Results,
		Score:        summary.Score,
		Percentage:   summary.Percentage,
		CorrectCount: summary.CorrectCount,
		Grade:        summary.Grade,
		CompletedAt:  now,
	})
	if errors.Is(err, repository.ErrAlreadyCompleted) {
		return nil, ErrAlreadySubmitted
	}
	if err != nil {
		return nil, fmt.Errorf("complete assessment: %w", err)
	}

	s.invalidatePayload(ctx, id)

	a.Status = model.AssessmentStatusCompleted
	a.SubmittedAnswers = answers
	a.Results = summary.Results
	a.Score = &summary.Score
	a.Percentage = &summary.Percentage
	a.CorrectCount = &summary.CorrectCount
	a.Grade = &summary.Grade
	a.CompletedAt = &now

	s.log.Info().
		Str("assessment_id", id.String()).
		Int("score", summary.Score).
		Int("percentage", summary.Percentage).
		Str("grade", summary.Grade).
		Msg("Assessment graded")
	return a, nil
}

// cachePayload stores a sanitized active-assessment payload in Redis.
// The cache is an optimization; failures are logged, never fatal.
func (s *AssessmentService) cachePayload(ctx context.Context, a *model.Assessment) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return
	}
	key := config.CacheKey.AssessmentPayloadKey(a.ID.String())
	if err := s.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("assessment_id", a.ID.String()).Msg("Failed to cache payload")
	}
}

// cachedPayload returns the sanitized payload from Redis, or nil on
// any miss or error (the caller falls back to the database).
func (s *AssessmentService) cachedPayload(ctx context.Context, id uuid.UUID) *model.Assessment {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, config.CacheKey.AssessmentPayloadKey(id.String())).Bytes()
	if err != nil {
		return nil
	}
	var a model.Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	return &a
}

func (s *AssessmentService) invalidatePayload(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.AssessmentPayloadKey(id.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("assessment_id", id.String()).Msg("Failed to invalidate payload cache")
	}
}
