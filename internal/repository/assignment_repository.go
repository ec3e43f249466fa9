package repository

import (
	"context"
	"errors"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssignmentRepository handles assignment data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignments (title, description, due_date, teacher_id, file_path)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.Title, a.Description, a.DueDate, a.TeacherID, a.FilePath,
	).Scan(&a.ID, &a.CreatedAt)
}

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, due_date, teacher_id, file_path, created_at
		 FROM assignments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Description, &a.DueDate, &a.TeacherID, &a.FilePath, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListByTeacher retrieves a teacher's assignments with submission counts, newest first.
func (r *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.TeacherAssignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.title, a.description, a.due_date, a.teacher_id, a.file_path, a.created_at,
		        COUNT(s.id)
		 FROM assignments a
		 LEFT JOIN submissions s ON s.assignment_id = a.id
		 WHERE a.teacher_id = $1
		 GROUP BY a.id
		 ORDER BY a.created_at DESC, a.id DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TeacherAssignment
	for rows.Next() {
		var ta model.TeacherAssignment
		a := &ta.Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.DueDate, &a.TeacherID, &a.FilePath, &a.CreatedAt,
			&ta.SubmissionCount); err != nil {
			return nil, err
		}
		out = append(out, ta)
	}
	return out, rows.Err()
}

// ListForStudent retrieves every assignment with its teacher's name and whether
// the given student has submitted, earliest due date first.
func (r *AssignmentRepository) ListForStudent(ctx context.Context, studentID int) ([]model.StudentAssignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.title, a.description, a.due_date, a.teacher_id, a.file_path, a.created_at,
		        u.name, s.id IS NOT NULL
		 FROM assignments a
		 JOIN users u ON u.id = a.teacher_id
		 LEFT JOIN submissions s ON s.assignment_id = a.id AND s.student_id = $1
		 ORDER BY a.due_date ASC, a.id ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StudentAssignment
	for rows.Next() {
		var sa model.StudentAssignment
		a := &sa.Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.DueDate, &a.TeacherID, &a.FilePath, &a.CreatedAt,
			&sa.TeacherName, &sa.HasSubmitted); err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}

// DeleteOwned removes an assignment only when it belongs to teacherID.
// Submissions go with it through ON DELETE CASCADE. Returns false when no row matched.
func (r *AssignmentRepository) DeleteOwned(ctx context.Context, id, teacherID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM assignments WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
