package repository

import (
	"context"

	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository reads the aggregates behind the student profile page.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// StudentStats returns the system-wide assignment total, the student's submission
// count, and one row per assignment ordered by teacher name then title.
// All three reads share one repeatable-read snapshot.
func (r *ProfileRepository) StudentStats(ctx context.Context, studentID int) (total, completed int, rows []model.ProfileRow, err error) {
	err = pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM assignments`).Scan(&total); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM submissions WHERE student_id = $1`, studentID,
		).Scan(&completed); err != nil {
			return err
		}

		q, err := tx.Query(ctx,
			`SELECT u.name, a.title, s.id IS NOT NULL
			 FROM users u
			 JOIN assignments a ON a.teacher_id = u.id
			 LEFT JOIN submissions s ON s.assignment_id = a.id AND s.student_id = $1
			 WHERE u.role = 'teacher'
			 ORDER BY u.name, a.title`, studentID)
		if err != nil {
			return err
		}
		defer q.Close()

		for q.Next() {
			var row model.ProfileRow
			if err := q.Scan(&row.TeacherName, &row.AssignmentTitle, &row.Completed); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return q.Err()
	})
	return total, completed, rows, err
}
