package handler

import (
	"net/http"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/edutrack/edutrack-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// SubmissionHandler handles submission endpoints.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
	formMemory        int64
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService, formMemory int64) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, formMemory: formMemory}
}

// Create godoc
// POST /api/v1/submissions
// Multipart: assignment_id, file, optional notes. One submission per assignment.
func (h *SubmissionHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	if !parseMultipart(c, h.formMemory) {
		return
	}

	var req model.CreateSubmissionRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	file, closeFile, err := formFile(c, "file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	defer closeFile()

	sub, err := h.submissionService.Submit(c.Request.Context(), user, req.AssignmentID, req.Notes, file)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

// My godoc
// GET /api/v1/submissions/my
func (h *SubmissionHandler) My(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.submissionService.ListForStudent(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// Teacher godoc
// GET /api/v1/submissions/teacher
// Submissions across all of the caller's assignments, newest first.
func (h *SubmissionHandler) Teacher(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.submissionService.ListForTeacher(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// ForAssignment godoc
// GET /api/v1/submissions/assignment/:id
func (h *SubmissionHandler) ForAssignment(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	out, err := h.submissionService.ListForAssignment(c.Request.Context(), user, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
