package model

import "time"

// Submission belongs to one (assignment, student) pair and is never updated.
type Submission struct {
	ID           int       `json:"id"`
	AssignmentID int       `json:"assignment_id"`
	StudentID    int       `json:"student_id"`
	FilePath     string    `json:"file_path"`
	Notes        *string   `json:"notes"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// SubmissionWithStudent is what a teacher sees when reviewing work.
type SubmissionWithStudent struct {
	Submission
	AssignmentTitle string `json:"assignment_title"`
	StudentName     string `json:"student_name"`
	StudentEmail    string `json:"student_email"`
}

// StudentSubmission is a student's own submission with assignment context.
type StudentSubmission struct {
	Submission
	AssignmentTitle   string    `json:"assignment_title"`
	AssignmentDueDate time.Time `json:"assignment_due_date"`
	TeacherName       string    `json:"teacher_name"`
}

// CreateSubmissionRequest is the multipart form for handing in work.
// The file itself is read from the "file" field.
type CreateSubmissionRequest struct {
	AssignmentID int    `form:"assignment_id" binding:"required,min=1"`
	Notes        string `form:"notes" binding:"max=2000"`
}
