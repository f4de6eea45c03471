package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// Seed loads the sample roster. With reset false it only seeds an empty
// database and reports 0 otherwise. It returns the number of students inserted.
func (g *Gateway) Seed(ctx context.Context, reset bool) (int, error) {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if reset {
		for _, stmt := range []string{
			"DELETE FROM student_details",
			"DELETE FROM students",
			"DELETE FROM sqlite_sequence WHERE name IN ('students', 'student_details')",
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return 0, fmt.Errorf("seed: reset: %w", err)
			}
		}
	} else {
		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM students"); err != nil {
			return 0, fmt.Errorf("seed: count: %w", err)
		}
		if count > 0 {
			return 0, nil
		}
	}

	students := gateway.SampleStudents()
	const insertStudent = `INSERT INTO students (student_id, school_id, first_name, last_name, email)
        VALUES (:student_id, :school_id, :first_name, :last_name, :email)`
	for _, s := range students {
		if _, err := tx.NamedExecContext(ctx, insertStudent, s); err != nil {
			return 0, fmt.Errorf("seed: insert student %s: %w", s.SchoolID, err)
		}
	}

	const insertDetail = `INSERT INTO student_details (detail_id, student_id, term, course, grade, term_created_date)
        VALUES (:detail_id, :student_id, :term, :course, :grade, :term_created_date)`
	for _, d := range gateway.SampleDetails() {
		row := detailRow{
			ID:              d.ID,
			StudentID:       d.StudentID,
			Term:            d.Term,
			Course:          d.Course,
			Grade:           d.Grade,
			TermCreatedDate: d.TermCreatedDate.UTC().Format(time.RFC3339),
		}
		if _, err := tx.NamedExecContext(ctx, insertDetail, row); err != nil {
			return 0, fmt.Errorf("seed: insert detail %d: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed: commit: %w", err)
	}
	g.logger.Info("database seeded", "students", len(students))
	return len(students), nil
}
