package service

import (
	"context"
	"fmt"

	"github.com/edutrack/edutrack-backend/internal/model"
)

// ProfileStore reads student statistics.
type ProfileStore interface {
	StudentStats(ctx context.Context, studentID int) (total, completed int, rows []model.ProfileRow, err error)
}

// StudentService handles student-only read models.
type StudentService struct {
	profiles ProfileStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(profiles ProfileStore) *StudentService {
	return &StudentService{profiles: profiles}
}

// Profile returns the acting student's progress. The totals span every
// assignment in the system, including those of teachers the student never
// worked with.
func (s *StudentService) Profile(ctx context.Context, actor *model.User) (*model.StudentProfile, error) {
	if err := requireRole(actor, model.RoleStudent); err != nil {
		return nil, err
	}

	total, completed, rows, err := s.profiles.StudentStats(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("student stats: %w", err)
	}

	return &model.StudentProfile{
		TotalAssignments:     total,
		CompletedAssignments: completed,
		PendingAssignments:   total - completed,
		TeachersAssignments:  groupByTeacher(rows),
	}, nil
}

// groupByTeacher keeps teachers in the order they first appear.
func groupByTeacher(rows []model.ProfileRow) []model.TeacherProgress {
	groups := []model.TeacherProgress{}
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.TeacherName]
		if !ok {
			i = len(groups)
			index[row.TeacherName] = i
			groups = append(groups, model.TeacherProgress{
				TeacherName: row.TeacherName,
				Assignments: []model.AssignmentProgress{},
			})
		}
		groups[i].Assignments = append(groups[i].Assignments, model.AssignmentProgress{
			Title:     row.AssignmentTitle,
			Completed: row.Completed,
		})
	}
	return groups
}
