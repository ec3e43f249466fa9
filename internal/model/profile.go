package model

// StudentProfile aggregates a student's progress. Totals count every
// assignment in the system, not only those of the student's teachers.
type StudentProfile struct {
	TotalAssignments     int               `json:"total_assignments"`
	CompletedAssignments int               `json:"completed_assignments"`
	PendingAssignments   int               `json:"pending_assignments"`
	TeachersAssignments  []TeacherProgress `json:"teachers_assignments"`
}

// TeacherProgress groups assignments by teacher name.
type TeacherProgress struct {
	TeacherName string               `json:"teacher_name"`
	Assignments []AssignmentProgress `json:"assignments"`
}

// AssignmentProgress marks whether the student has handed in an assignment.
type AssignmentProgress struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ProfileRow is one (teacher, assignment, completed) row used to build a profile.
type ProfileRow struct {
	TeacherName     string
	AssignmentTitle string
	Completed       bool
}
