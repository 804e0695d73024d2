package model

import (
	"time"

	"github.com/google/uuid"
)

// StudyDocument is an immutable block of study text owned by a user.
// Assessments reference it but do not own it; a document may back any
// number of assessments.
type StudyDocument struct {
	ID         uuid.UUID `json:"id"`
	UserID     int       `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ByteLength int       `json:"byte_length"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentSummary is a listing row without the full text content.
type DocumentSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	ByteLength int       `json:"byte_length"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateDocumentRequest is the payload for ingesting study text.
// The minimum-length rule lives in the engine (trimmed length >= 100);
// the binding tag only rejects the obviously empty case early.
type CreateDocumentRequest struct {
	Title   string `json:"title" binding:"omitempty,max=255"`
	Content string `json:"content" binding:"required"`
}
