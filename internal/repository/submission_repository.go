package repository

import (
	"context"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a submission in a single statement. The UNIQUE (assignment_id, student_id)
// constraint rejects a second submission even under concurrent requests.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (assignment_id, student_id, file_path, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, submitted_at`,
		s.AssignmentID, s.StudentID, s.FilePath, s.Notes,
	).Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		return submissionInsertError(err)
	}
	return nil
}

const teacherSubmissionColumns = `s.id, s.assignment_id, s.student_id, s.file_path, s.notes, s.submitted_at,
		        a.title, u.name, u.email`

// ListByAssignment retrieves all submissions for one assignment with student details.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID int) ([]model.SubmissionWithStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teacherSubmissionColumns+`
		 FROM submissions s
		 JOIN assignments a ON a.id = s.assignment_id
		 JOIN users u ON u.id = s.student_id
		 WHERE s.assignment_id = $1
		 ORDER BY s.submitted_at DESC, s.id DESC`, assignmentID)
	if err != nil {
		return nil, err
	}
	return scanSubmissionsWithStudent(rows)
}

// ListByTeacher retrieves submissions across every assignment owned by teacherID.
func (r *SubmissionRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.SubmissionWithStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teacherSubmissionColumns+`
		 FROM submissions s
		 JOIN assignments a ON a.id = s.assignment_id
		 JOIN users u ON u.id = s.student_id
		 WHERE a.teacher_id = $1
		 ORDER BY s.submitted_at DESC, s.id DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	return scanSubmissionsWithStudent(rows)
}

// ListByStudent retrieves a student's own submissions with assignment details.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int) ([]model.StudentSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.assignment_id, s.student_id, s.file_path, s.notes, s.submitted_at,
		        a.title, a.due_date, u.name
		 FROM submissions s
		 JOIN assignments a ON a.id = s.assignment_id
		 JOIN users u ON u.id = a.teacher_id
		 WHERE s.student_id = $1
		 ORDER BY s.submitted_at DESC, s.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StudentSubmission
	for rows.Next() {
		var ss model.StudentSubmission
		s := &ss.Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FilePath, &s.Notes, &s.SubmittedAt,
			&ss.AssignmentTitle, &ss.AssignmentDueDate, &ss.TeacherName); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

func scanSubmissionsWithStudent(rows pgx.Rows) ([]model.SubmissionWithStudent, error) {
	defer rows.Close()

	var out []model.SubmissionWithStudent
	for rows.Next() {
		var sw model.SubmissionWithStudent
		s := &sw.Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FilePath, &s.Notes, &s.SubmittedAt,
			&sw.AssignmentTitle, &sw.StudentName, &sw.StudentEmail); err != nil {
			return nil, err
		}
		out = append(out, sw)
	}
	return out, rows.Err()
}
