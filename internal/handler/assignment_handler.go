package handler

import (
	"net/http"
	"time"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/edutrack/edutrack-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// Accepted due_date layouts: RFC 3339, an HTML datetime-local value, or a bare date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// AssignmentHandler handles assignment endpoints.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	submissionService *service.SubmissionService
	formMemory        int64
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(
	assignmentService *service.AssignmentService,
	submissionService *service.SubmissionService,
	formMemory int64,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		submissionService: submissionService,
		formMemory:        formMemory,
	}
}

// Create godoc
// POST /api/v1/assignments
// Multipart: title, description, due_date, optional file.
func (h *AssignmentHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	if !parseMultipart(c, h.formMemory) {
		return
	}

	var req model.CreateAssignmentRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	due, ok := parseDueDate(req.DueDate)
	if !ok {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"due_date": "due_date must be a date (YYYY-MM-DD) or date-time",
		})
		return
	}

	file, closeFile, err := formFile(c, "file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	defer closeFile()

	a, err := h.assignmentService.Create(c.Request.Context(), user, service.NewAssignment{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		File:        file,
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// List godoc
// GET /api/v1/assignments
// Teachers get their own assignments; students get every assignment with
// their submission status.
func (h *AssignmentHandler) List(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var (
		out interface{}
		err error
	)
	switch user.Role {
	case model.RoleTeacher:
		out, err = h.assignmentService.ListForTeacher(c.Request.Context(), user)
	case model.RoleStudent:
		out, err = h.assignmentService.ListForStudent(c.Request.Context(), user)
	default:
		err = service.ErrForbidden
	}
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// ListTeacher godoc
// GET /api/v1/assignments/teacher
func (h *AssignmentHandler) ListTeacher(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.assignmentService.ListForTeacher(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// Delete godoc
// DELETE /api/v1/assignments/:id
// Deletes an assignment owned by the caller together with its submissions.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), user, id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Assignment deleted")
}

// Submissions godoc
// GET /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) Submissions(c *gin.Context) {
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

func parseDueDate(raw string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
