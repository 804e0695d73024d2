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

// AssessmentHandler handles assessment generation, retrieval and submission.
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// Generate godoc
// POST /api/v1/assessments
// Compiles a new assessment from one of the caller's documents. Answer
// keys are stripped from the response.
func (h *AssessmentHandler) Generate(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.GenerateAssessmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	types := make([]model.QuestionType, 0, len(req.QuestionTypes))
	for _, t := range req.QuestionTypes {
		types = append(types, model.QuestionType(t))
	}

	assessment, err := h.assessmentService.Generate(c.Request.Context(), claims.UserID, documentID, quizgen.CompileOptions{
		QuestionCount: req.QuestionCount,
		Difficulty:    model.Difficulty(req.Difficulty),
		QuestionTypes: types,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, quizgen.ErrInputTooShort):
			response.Fail(c, http.StatusBadRequest, response.ErrInputTooShort)
		case errors.Is(err, quizgen.ErrInsufficientMaterial):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrInsufficientMaterial)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"assessment": assessment})
}

// List godoc
// GET /api/v1/assessments
// Lists the caller's assessments without question payloads.
func (h *AssessmentHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	assessments, err := h.assessmentService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assessments": assessments})
}

// Get godoc
// GET /api/v1/assessments/:id
// Returns an assessment. Active assessments are sanitized; completed
// ones include answers, results and the score breakdown.
func (h *AssessmentHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	assessment, err := h.assessmentService.GetByID(c.Request.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assessment": assessment})
}

// Submit godoc
// POST /api/v1/assessments/:id/submit
// Grades the submitted answers and completes the assessment. Exactly one
// submission is accepted per assessment.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assessment, err := h.assessmentService.Submit(c.Request.Context(), claims.UserID, id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assessment": assessment})
}
