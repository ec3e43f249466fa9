package model

import "time"

// Assignment is owned by exactly one teacher.
type Assignment struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	TeacherID   int       `json:"teacher_id"`
	FilePath    *string   `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeacherAssignment is the owning teacher's view with a submission count.
type TeacherAssignment struct {
	Assignment
	SubmissionCount int `json:"submission_count"`
}

// StudentAssignment is the student view, annotated with the submission status
// of the requesting student.
type StudentAssignment struct {
	Assignment
	TeacherName  string `json:"teacher_name"`
	HasSubmitted bool   `json:"has_submitted"`
}

// CreateAssignmentRequest is the multipart form for a new assignment.
// The optional attachment is read separately from the "file" field.
type CreateAssignmentRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=255"`
	Description string `form:"description" binding:"required"`
	DueDate     string `form:"due_date" binding:"required"`
}
