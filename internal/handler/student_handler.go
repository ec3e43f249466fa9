package handler

import (
	"net/http"

	"github.com/edutrack/edutrack-backend/internal/response"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student-only endpoints.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Profile godoc
// GET /api/v1/students/profile
// Progress counts plus assignments grouped by teacher.
func (h *StudentHandler) Profile(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	profile, err := h.studentService.Profile(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}
