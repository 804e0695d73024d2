package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepmind/prepmind-backend/internal/model"
)

// DocumentRepository handles study document data access.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create inserts a new study document. Documents are immutable after
// ingestion; there is no update path.
func (r *DocumentRepository) Create(ctx context.Context, d *model.StudyDocument) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO study_documents (id, user_id, title, content, byte_length)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		d.ID, d.UserID, d.Title, d.Content, d.ByteLength,
	).Scan(&d.CreatedAt)
}

// GetByID retrieves a document by its UUID.
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StudyDocument, error) {
	d := &model.StudyDocument{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, byte_length, created_at
		 FROM study_documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.ByteLength, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByUser retrieves document summaries for a user, newest first.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID int) ([]model.DocumentSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, byte_length, created_at
		 FROM study_documents
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.DocumentSummary
	for rows.Next() {
		var d model.DocumentSummary
		if err := rows.Scan(&d.ID, &d.Title, &d.ByteLength, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes a document owned by the given user.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM study_documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
