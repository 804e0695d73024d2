package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepmind/prepmind-backend/internal/middleware"
	"github.com/prepmind/prepmind-backend/internal/model"
	"github.com/prepmind/prepmind-backend/internal/quizgen"
	"github.com/prepmind/prepmind-backend/internal/repository"
	"github.com/prepmind/prepmind-backend/internal/response"
	"github.com/prepmind/prepmind-backend/internal/service"
	"github.com/prepmind/prepmind-backend/internal/validator"
)

// DocumentHandler handles study-document endpoints.
type DocumentHandler struct {
	docService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// Create godoc
// POST /api/v1/documents
// Ingests a block of study text. The text must be long enough to
// generate assessments from.
func (h *DocumentHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateDocumentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	doc, err := h.docService.Ingest(c.Request.Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, quizgen.ErrInputTooShort) {
			response.Fail(c, http.StatusBadRequest, response.ErrInputTooShort)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

// List godoc
// GET /api/v1/documents
// Lists the caller's documents, newest first, without full text.
func (h *DocumentHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	docs, err := h.docService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

// Get godoc
// GET /api/v1/documents/:id
// Returns a single document including its full text content.
func (h *DocumentHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// Delete godoc
// DELETE /api/v1/documents/:id
// Removes a document. Existing assessments keep their compiled questions.
func (h *DocumentHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.docService.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
