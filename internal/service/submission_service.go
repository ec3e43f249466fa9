package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/storage"
	"github.com/rs/zerolog"
)

// SubmissionStore persists submissions.
type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	ListByAssignment(ctx context.Context, assignmentID int) ([]model.SubmissionWithStudent, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.SubmissionWithStudent, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.StudentSubmission, error)
}

// SubmissionService enforces who may hand in and review work.
type SubmissionService struct {
	submissions SubmissionStore
	assignments AssignmentStore
	files       fileSaver
	log         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissions SubmissionStore,
	assignments AssignmentStore,
	store storage.Store,
	maxUploadBytes int64,
	log zerolog.Logger,
) *SubmissionService {
	log = log.With().Str("component", "submission_service").Logger()
	return &SubmissionService{
		submissions: submissions,
		assignments: assignments,
		files:       fileSaver{store: store, maxBytes: maxUploadBytes, log: log},
		log:         log,
	}
}

// Submit stores the acting student's single submission for an assignment.
// A second attempt fails with ErrAlreadySubmitted and leaves the first intact.
func (s *SubmissionService) Submit(ctx context.Context, actor *model.User, assignmentID int, notes string, file *FileUpload) (*model.Submission, error) {
	if err := requireRole(actor, model.RoleStudent); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileRequired
	}

	prefix := fmt.Sprintf("submission_s%d_a%d", actor.ID, assignmentID)
	name, err := s.files.save(ctx, prefix, file)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    actor.ID,
		FilePath:     name,
	}
	if notes != "" {
		sub.Notes = &notes
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		s.files.discard(ctx, name)
		if errors.Is(err, ErrAlreadySubmitted) || errors.Is(err, ErrAssignmentNotFound) || errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.log.Info().
		Int("submission_id", sub.ID).
		Int("assignment_id", assignmentID).
		Int("student_id", actor.ID).
		Msg("Submission created")
	return sub, nil
}

// ListForAssignment returns the submissions of one assignment, only when the
// acting teacher owns it. Missing and foreign assignments both yield
// ErrNotFoundOrForbidden.
func (s *SubmissionService) ListForAssignment(ctx context.Context, actor *model.User, assignmentID int) ([]model.SubmissionWithStudent, error) {
	if err := requireRole(actor, model.RoleTeacher); err != nil {
		return nil, err
	}

	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	if a.TeacherID != actor.ID {
		return nil, ErrNotFoundOrForbidden
	}

	out, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.SubmissionWithStudent{}
	}
	return out, nil
}

// ListForTeacher returns submissions across all of the acting teacher's assignments.
func (s *SubmissionService) ListForTeacher(ctx context.Context, actor *model.User) ([]model.SubmissionWithStudent, error) {
	if err := requireRole(actor, model.RoleTeacher); err != nil {
		return nil, err
	}

	out, err := s.submissions.ListByTeacher(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.SubmissionWithStudent{}
	}
	return out, nil
}

// ListForStudent returns the acting student's own submissions.
func (s *SubmissionService) ListForStudent(ctx context.Context, actor *model.User) ([]model.StudentSubmission, error) {
	if err := requireRole(actor, model.RoleStudent); err != nil {
		return nil, err
	}

	out, err := s.submissions.ListByStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.StudentSubmission{}
	}
	return out, nil
}
