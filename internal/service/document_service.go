package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prepmind/prepmind-backend/internal/model"
	"github.com/prepmind/prepmind-backend/internal/quizgen"
	"github.com/prepmind/prepmind-backend/internal/repository"
)

// DocumentStore is the persistence contract for study documents.
// Implementations return repository.ErrNotFound for missing rows.
type DocumentStore interface {
	Create(ctx context.Context, d *model.StudyDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.StudyDocument, error)
	ListByUser(ctx context.Context, userID int) ([]model.DocumentSummary, error)
	Delete(ctx context.Context, id uuid.UUID, userID int) error
}

// DocumentService handles study document ingestion and retrieval.
type DocumentService struct {
	docs DocumentStore
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docs DocumentStore) *DocumentService {
	return &DocumentService{docs: docs}
}

// Ingest stores a new immutable study document. Text whose trimmed
// length is under the engine minimum fails with
// quizgen.ErrInputTooShort before anything is persisted.
func (s *DocumentService) Ingest(ctx context.Context, userID int, title, content string) (*model.StudyDocument, error) {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < quizgen.MinTextLength {
		return nil, quizgen.ErrInputTooShort
	}

	if strings.TrimSpace(title) == "" {
		title = defaultTitle(trimmed)
	}

	d := &model.StudyDocument{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Content:    content,
		ByteLength: len(content),
	}
	if err := s.docs.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

// GetByID retrieves a document owned by the given user. Documents
// belonging to other users are reported as not found.
func (s *DocumentService) GetByID(ctx context.Context, userID int, id uuid.UUID) (*model.StudyDocument, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

// ListByUser retrieves document summaries for a user.
func (s *DocumentService) ListByUser(ctx context.Context, userID int) ([]model.DocumentSummary, error) {
	docs, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []model.DocumentSummary{}
	}
	return docs, nil
}

// Delete removes a document owned by the given user. Assessments keep
// a non-owning reference, so existing assessments survive the delete.
func (s *DocumentService) Delete(ctx context.Context, userID int, id uuid.UUID) error {
	return s.docs.Delete(ctx, id, userID)
}

// defaultTitle derives a title from the opening words of the text.
func defaultTitle(text string) string {
	words := strings.Fields(text)
	if len(words) > 8 {
		words = words[:8]
	}
	title := strings.Join(words, " ")
	if len(title) > 60 {
		title = title[:60]
	}
	return title
}
