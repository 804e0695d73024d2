package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/prepmind/prepmind-backend/internal/model"
	"github.com/prepmind/prepmind-backend/internal/quizgen"
	"github.com/prepmind/prepmind-backend/internal/repository"
	"github.com/rs/zerolog"
)

const testContent = "The mitochondria is the powerhouse of the cell because it produces chemical energy. " +
	"Cellular respiration takes place in three distinct stages inside the cell. " +
	"Glycolysis happens in the cytoplasm and breaks glucose into pyruvate molecules. " +
	"The citric acid cycle oxidizes pyruvate inside the mitochondrial matrix. " +
	"Oxidative phosphorylation produces the bulk of the adenosine triphosphate."

// ─── In-memory fakes ────────────────────────────────────────────────────────

type fakeDocStore struct {
	docs map[uuid.UUID]*model.StudyDocument
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[uuid.UUID]*model.StudyDocument)}
}

func (f *fakeDocStore) Create(_ context.Context, d *model.StudyDocument) error {
	f.docs[d.ID] = d
	return nil
}

func (f *fakeDocStore) GetByID(_ context.Context, id uuid.UUID) (*model.StudyDocument, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDocStore) ListByUser(_ context.Context, userID int) ([]model.DocumentSummary, error) {
	var out []model.DocumentSummary
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, model.DocumentSummary{ID: d.ID, Title: d.Title, ByteLength: d.ByteLength})
		}
	}
	return out, nil
}

func (f *fakeDocStore) Delete(_ context.Context, id uuid.UUID, userID int) error {
	d, ok := f.docs[id]
	if !ok || d.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeAssessmentStore struct {
	items map[uuid.UUID]*model.Assessment
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{items: make(map[uuid.UUID]*model.Assessment)}
}

func (f *fakeAssessmentStore) Create(_ context.Context, a *model.Assessment) error {
	copied := *a
	f.items[a.ID] = &copied
	return nil
}

func (f *fakeAssessmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssessmentStore) ListByUser(_ context.Context, userID int) ([]model.AssessmentSummary, error) {
	var out []model.AssessmentSummary
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, model.AssessmentSummary{ID: a.ID, Status: a.Status, TotalPoints: a.TotalPoints})
		}
	}
	return out, nil
}

func (f *fakeAssessmentStore) Complete(_ context.Context, id uuid.UUID, c repository.Completion) error {
	a, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if a.Status != model.AssessmentStatusActive {
		return repository.ErrAlreadyCompleted
	}
	a.Status = model.AssessmentStatusCompleted
	a.SubmittedAnswers = c.Answers
	a.Results = c.Results
	a.Score = &c.Score
	a.Percentage = &c.Percentage
	a.CorrectCount = &c.CorrectCount
	a.Grade = &c.Grade
	a.CompletedAt = &c.CompletedAt
	return nil
}

// ─── Fixtures ───────────────────────────────────────────────────────────────

func newTestService(t *testing.T) (*AssessmentService, *fakeAssessmentStore, uuid.UUID) {
	t.Helper()

	docs := newFakeDocStore()
	doc := &model.StudyDocument{
		ID:      uuid.New(),
		UserID:  1,
		Title:   "Cell Biology",
		Content: testContent,
	}
	if err := docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}

	store := newFakeAssessmentStore()
	svc := NewAssessmentService(store, docs, nil, zerolog.Nop(), func() *rand.Rand {
		return rand.New(rand.NewSource(42))
	})
	return svc, store, doc.ID
}

// answerKey reads the stored (unsanitized) record and answers every
// question correctly.
func answerKey(t *testing.T, store *fakeAssessmentStore, id uuid.UUID) map[string]string {
	t.Helper()
	stored, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("read stored assessment: %v", err)
	}
	answers := make(map[string]string, len(stored.Questions))
	for _, q := range stored.Questions {
		answers[q.ID.String()] = q.CorrectAnswer
	}
	return answers
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestGenerateStripsAnswerKey(t *testing.T) {
	svc, store, docID := newTestService(t)
	ctx := context.Background()

	a, err := svc.Generate(ctx, 1, docID, quizgen.CompileOptions{QuestionCount: 4})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if a.Status != model.AssessmentStatusActive {
		t.Errorf("status = %s, want active", a.Status)
	}
	for _, q := range a.Questions {
		if q.CorrectAnswer != "" || q.Explanation != "" {
			t.Errorf("answer key leaked for question %s", q.ID)
		}
	}

	// The stored record keeps the key for grading.
	stored, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("read stored assessment: %v", err)
	}
	for _, q := range stored.Questions {
		if q.CorrectAnswer == "" {
			t.Errorf("stored question %s lost its answer key", q.ID)
		}
	}
}

func TestGenerateUnknownDocument(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Generate(context.Background(), 1, uuid.New(), quizgen.CompileOptions{})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateForeignDocumentHidden(t *testing.T) {
	svc, _, docID := newTestService(t)

	_, err := svc.Generate(context.Background(), 99, docID, quizgen.CompileOptions{})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's document, got %v", err)
	}
}

func TestSubmitGradesAndCompletes(t *testing.T) {
	svc, store, docID := newTestService(t)
	ctx := context.Background()

	a, err := svc.Generate(ctx, 1, docID, quizgen.CompileOptions{QuestionCount: 4})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	graded, err := svc.Submit(ctx, 1, a.ID, answerKey(t, store, a.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if graded.Status != model.AssessmentStatusCompleted {
		t.Errorf("status = %s, want completed", graded.Status)
	}
	if graded.Score == nil || *graded.Score != graded.TotalPoints {
		t.Errorf("perfect submission scored %v of %d", graded.Score, graded.TotalPoints)
	}
	if graded.Percentage == nil || *graded.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", graded.Percentage)
	}
	if graded.Grade == nil || *graded.Grade != "A" {
		t.Errorf("Grade = %v, want A", graded.Grade)
	}
	if graded.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if len(graded.Results) != len(graded.Questions) {
		t.Errorf("got %d results for %d questions", len(graded.Results), len(graded.Questions))
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	svc, store, docID := newTestService(t)
	ctx := context.Background()

	a, err := svc.Generate(ctx, 1, docID, quizgen.CompileOptions{QuestionCount: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	answers := answerKey(t, store, a.ID)

	if _, err := svc.Submit(ctx, 1, a.ID, answers); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, 1, a.ID, answers); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestSubmitEmptyAnswers(t *testing.T) {
	svc, _, docID := newTestService(t)
	ctx := context.Background()

	a, err := svc.Generate(ctx, 1, docID, quizgen.CompileOptions{QuestionCount: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	graded, err := svc.Submit(ctx, 1, a.ID, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if graded.Score == nil || *graded.Score != 0 {
		t.Errorf("Score = %v, want 0", graded.Score)
	}
	if graded.Grade == nil || *graded.Grade != "F" {
		t.Errorf("Grade = %v, want F", graded.Grade)
	}
	for _, r := range graded.Results {
		if r.IsCorrect {
			t.Errorf("question %s graded correct without an answer", r.QuestionID)
		}
	}
}

func TestGetByIDSanitizedWhileActive(t *testing.T) {
	svc, store, docID := newTestService(t)
	ctx := context.Background()

	a, err := svc.Generate(ctx, 1, docID, quizgen.CompileOptions{QuestionCount: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	fetched, err := svc.GetByID(ctx, 1, a.ID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	for _, q := range fetched.Questions {
		if q.CorrectAnswer != "" {
			t.Errorf("active assessment leaked answer key for question %s", q.ID)
		}
	}

	if _, err := svc.Submit(ctx, 1, a.ID, answerKey(t, store, a.ID)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	completed, err := svc.GetByID(ctx, 1, a.ID)
	if err != nil {
		t.Fatalf("get completed: %v", err)
	}
	if completed.Status != model.AssessmentStatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
	if len(completed.Results) == 0 {
		t.Error("completed assessment has no results")
	}
	for _, q := range completed.Questions {
		if q.CorrectAnswer == "" {
			t.Errorf("completed assessment hides answer key for question %s", q.ID)
		}
	}
}

func TestGetByIDForeignAssessmentHidden(t *testing.T) {
	svc, _, docID := newTestService(t)
	ctx := context.Background()

	a, err := svc.Generate(ctx, 1, docID, quizgen.CompileOptions{QuestionCount: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.GetByID(ctx, 99, a.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's assessment, got %v", err)
	}
}
