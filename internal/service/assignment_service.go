package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/storage"
	"github.com/rs/zerolog"
)

// AssignmentStore persists assignments.
type AssignmentStore interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id int) (*model.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.TeacherAssignment, error)
	ListForStudent(ctx context.Context, studentID int) ([]model.StudentAssignment, error)
	DeleteOwned(ctx context.Context, id, teacherID int) (bool, error)
}

// NewAssignment is the input for creating an assignment.
type NewAssignment struct {
	Title       string
	Description string
	DueDate     time.Time
	File        *FileUpload
}

// AssignmentService enforces who may create, see and delete assignments.
type AssignmentService struct {
	assignments AssignmentStore
	files       fileSaver
	log         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignments AssignmentStore, store storage.Store, maxUploadBytes int64, log zerolog.Logger) *AssignmentService {
	log = log.With().Str("component", "assignment_service").Logger()
	return &AssignmentService{
		assignments: assignments,
		files:       fileSaver{store: store, maxBytes: maxUploadBytes, log: log},
		log:         log,
	}
}

// Create stores a new assignment owned by the acting teacher.
func (s *AssignmentService) Create(ctx context.Context, actor *model.User, in NewAssignment) (*model.Assignment, error) {
	if err := requireRole(actor, model.RoleTeacher); err != nil {
		return nil, err
	}

	a := &model.Assignment{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		TeacherID:   actor.ID,
	}

	if in.File != nil {
		name, err := s.files.save(ctx, "assignment", in.File)
		if err != nil {
			return nil, err
		}
		a.FilePath = &name
	}

	if err := s.assignments.Create(ctx, a); err != nil {
		if a.FilePath != nil {
			s.files.discard(ctx, *a.FilePath)
		}
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	s.log.Info().Int("assignment_id", a.ID).Int("teacher_id", actor.ID).Msg("Assignment created")
	return a, nil
}

// ListForTeacher returns only the acting teacher's assignments.
func (s *AssignmentService) ListForTeacher(ctx context.Context, actor *model.User) ([]model.TeacherAssignment, error) {
	if err := requireRole(actor, model.RoleTeacher); err != nil {
		return nil, err
	}

	out, err := s.assignments.ListByTeacher(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.TeacherAssignment{}
	}
	return out, nil
}

// ListForStudent returns every assignment, marked with whether the acting student submitted.
func (s *AssignmentService) ListForStudent(ctx context.Context, actor *model.User) ([]model.StudentAssignment, error) {
	if err := requireRole(actor, model.RoleStudent); err != nil {
		return nil, err
	}

	out, err := s.assignments.ListForStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.StudentAssignment{}
	}
	return out, nil
}

// Delete removes an assignment owned by the acting teacher, cascading to its
// submissions. A missing assignment and someone else's assignment both yield
// ErrNotFoundOrForbidden.
func (s *AssignmentService) Delete(ctx context.Context, actor *model.User, id int) error {
	if err := requireRole(actor, model.RoleTeacher); err != nil {
		return err
	}

	deleted, err := s.assignments.DeleteOwned(ctx, id, actor.ID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if !deleted {
		return ErrNotFoundOrForbidden
	}

	s.log.Info().Int("assignment_id", id).Int("teacher_id", actor.ID).Msg("Assignment deleted")
	return nil
}
