// Package repotest provides an in-memory database that mirrors the PostgreSQL
// constraints the repositories rely on: unique emails, one submission per
// (assignment, student), foreign keys and cascading deletes.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/repository"
)

// DB holds all three tables behind one mutex.
type DB struct {
	mu          sync.Mutex
	now         func() time.Time
	nextID      int
	users       map[int]model.User
	assignments map[int]model.Assignment
	submissions map[int]model.Submission
}

// NewDB creates an empty database. Timestamps advance one second per insert so
// ordering by time is deterministic.
func NewDB() *DB {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &DB{
		users:       make(map[int]model.User),
		assignments: make(map[int]model.Assignment),
		submissions: make(map[int]model.Submission),
	}
	db.now = func() time.Time { return base.Add(time.Duration(db.nextID) * time.Second) }
	return db
}

func (db *DB) id() int {
	db.nextID++
	return db.nextID
}

// Users returns the users table.
func (db *DB) Users() *Users { return &Users{db: db} }

// Assignments returns the assignments table.
func (db *DB) Assignments() *Assignments { return &Assignments{db: db} }

// Submissions returns the submissions table.
func (db *DB) Submissions() *Submissions { return &Submissions{db: db} }

// Profiles returns the profile read model.
func (db *DB) Profiles() *Profiles { return &Profiles{db: db} }

// DeleteUser removes a user and everything cascading from it.
func (db *DB) DeleteUser(id int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.users, id)
	for aid, a := range db.assignments {
		if a.TeacherID == id {
			db.deleteAssignmentLocked(aid)
		}
	}
	for sid, s := range db.submissions {
		if s.StudentID == id {
			delete(db.submissions, sid)
		}
	}
}

// SubmissionCount returns the number of stored submissions.
func (db *DB) SubmissionCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.submissions)
}

func (db *DB) deleteAssignmentLocked(id int) {
	delete(db.assignments, id)
	for sid, s := range db.submissions {
		if s.AssignmentID == id {
			delete(db.submissions, sid)
		}
	}
}

// Users implements the user store.
type Users struct{ db *DB }

func (r *Users) Create(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = r.db.id()
	u.CreatedAt = r.db.now()
	r.db.users[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id int) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// Assignments implements the assignment store.
type Assignments struct{ db *DB }

func (r *Assignments) Create(_ context.Context, a *model.Assignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[a.TeacherID]; !ok {
		return repository.ErrUserNotFound
	}
	a.ID = r.db.id()
	a.CreatedAt = r.db.now()
	r.db.assignments[a.ID] = *a
	return nil
}

func (r *Assignments) GetByID(_ context.Context, id int) (*model.Assignment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.assignments[id]
	if !ok {
		return nil, repository.ErrAssignmentNotFound
	}
	return &a, nil
}

func (r *Assignments) ListByTeacher(_ context.Context, teacherID int) ([]model.TeacherAssignment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []model.TeacherAssignment
	for _, a := range r.db.assignments {
		if a.TeacherID != teacherID {
			continue
		}
		count := 0
		for _, s := range r.db.submissions {
			if s.AssignmentID == a.ID {
				count++
			}
		}
		out = append(out, model.TeacherAssignment{Assignment: a, SubmissionCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Assignments) ListForStudent(_ context.Context, studentID int) ([]model.StudentAssignment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []model.StudentAssignment
	for _, a := range r.db.assignments {
		submitted := false
		for _, s := range r.db.submissions {
			if s.AssignmentID == a.ID && s.StudentID == studentID {
				submitted = true
				break
			}
		}
		out = append(out, model.StudentAssignment{
			Assignment:   a,
			TeacherName:  r.db.users[a.TeacherID].Name,
			HasSubmitted: submitted,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Assignments) DeleteOwned(_ context.Context, id, teacherID int) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.assignments[id]
	if !ok || a.TeacherID != teacherID {
		return false, nil
	}
	r.db.deleteAssignmentLocked(id)
	return true, nil
}

// Submissions implements the submission store.
type Submissions struct{ db *DB }

func (r *Submissions) Create(_ context.Context, s *model.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.assignments[s.AssignmentID]; !ok {
		return repository.ErrAssignmentNotFound
	}
	if _, ok := r.db.users[s.StudentID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, existing := range r.db.submissions {
		if existing.AssignmentID == s.AssignmentID && existing.StudentID == s.StudentID {
			return repository.ErrAlreadySubmitted
		}
	}
	s.ID = r.db.id()
	s.SubmittedAt = r.db.now()
	r.db.submissions[s.ID] = *s
	return nil
}

func (r *Submissions) ListByAssignment(_ context.Context, assignmentID int) ([]model.SubmissionWithStudent, error) {
	return r.withStudent(func(s model.Submission, _ model.Assignment) bool {
		return s.AssignmentID == assignmentID
	}), nil
}

func (r *Submissions) ListByTeacher(_ context.Context, teacherID int) ([]model.SubmissionWithStudent, error) {
	return r.withStudent(func(_ model.Submission, a model.Assignment) bool {
		return a.TeacherID == teacherID
	}), nil
}

func (r *Submissions) ListByStudent(_ context.Context, studentID int) ([]model.StudentSubmission, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []model.StudentSubmission
	for _, s := range r.db.submissions {
		if s.StudentID != studentID {
			continue
		}
		a := r.db.assignments[s.AssignmentID]
		out = append(out, model.StudentSubmission{
			Submission:        s,
			AssignmentTitle:   a.Title,
			AssignmentDueDate: a.DueDate,
			TeacherName:       r.db.users[a.TeacherID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Submissions) withStudent(match func(model.Submission, model.Assignment) bool) []model.SubmissionWithStudent {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []model.SubmissionWithStudent
	for _, s := range r.db.submissions {
		a := r.db.assignments[s.AssignmentID]
		if !match(s, a) {
			continue
		}
		student := r.db.users[s.StudentID]
		out = append(out, model.SubmissionWithStudent{
			Submission:      s,
			AssignmentTitle: a.Title,
			StudentName:     student.Name,
			StudentEmail:    student.Email,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Profiles implements the profile store.
type Profiles struct{ db *DB }

func (r *Profiles) StudentStats(_ context.Context, studentID int) (int, int, []model.ProfileRow, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	completed := 0
	for _, s := range r.db.submissions {
		if s.StudentID == studentID {
			completed++
		}
	}

	var rows []model.ProfileRow
	for _, a := range r.db.assignments {
		teacher := r.db.users[a.TeacherID]
		if teacher.Role != model.RoleTeacher {
			continue
		}
		done := false
		for _, s := range r.db.submissions {
			if s.AssignmentID == a.ID && s.StudentID == studentID {
				done = true
				break
			}
		}
		rows = append(rows, model.ProfileRow{TeacherName: teacher.Name, AssignmentTitle: a.Title, Completed: done})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TeacherName != rows[j].TeacherName {
			return rows[i].TeacherName < rows[j].TeacherName
		}
		return rows[i].AssignmentTitle < rows[j].AssignmentTitle
	})

	return len(r.db.assignments), completed, rows, nil
}
