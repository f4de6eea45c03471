// Package sqlite implements the students gateway on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/logging"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const selectStudents = "SELECT student_id, school_id, first_name, last_name, email FROM students"

// Gateway serves the students list from SQLite.
type Gateway struct {
	db     *sqlx.DB
	logger logging.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for query tracing.
func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// detailRow stores the creation date as RFC3339 text so ordering is lexical.
type detailRow struct {
	ID              int    `db:"detail_id"`
	StudentID       int    `db:"student_id"`
	Term            string `db:"term"`
	Course          string `db:"course"`
	Grade           string `db:"grade"`
	TermCreatedDate string `db:"term_created_date"`
}

// Open opens or creates the database at dbPath and ensures the schema exists.
func Open(dbPath string, opts ...Option) (*Gateway, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite gateway: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite gateway: create db directory: %w", err)
	}
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite gateway: open db: %w", err)
	}
	g := New(db, opts...)
	if err := g.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return g, nil
}

// New wraps an open database without touching the schema.
func New(db *sqlx.DB, opts ...Option) *Gateway {
	g := &Gateway{db: db, logger: logging.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) init() error {
	if _, err := g.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite gateway: set busy timeout: %w", err)
	}
	if _, err := g.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite gateway: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (g *Gateway) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}

// FetchPage runs the filtered, ordered and windowed query plus its count.
func (g *Gateway) FetchPage(ctx context.Context, q domain.Query) (domain.Page[domain.Student], error) {
	if !q.Window.IsValid() {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, fmt.Errorf("invalid page window %+v", q.Window))
	}
	where, args, err := buildWhere(q.Filters)
	if err != nil {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, err)
	}
	order, err := buildOrder(q.Sort, studentColumns, "student_id")
	if err != nil {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, err)
	}

	query := fmt.Sprintf("%s%s%s LIMIT %d OFFSET %d", selectStudents, where, order, q.Window.Size, q.Window.Offset())
	rows := []domain.Student{}
	if err := g.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, fmt.Errorf("list students: %w", err))
	}
	var total int
	if err := g.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students"+where, args...); err != nil {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, fmt.Errorf("count students: %w", err))
	}
	g.logger.Debug("fetch page", "page", q.Window.Index, "size", q.Window.Size, "filters", q.Filters.Len(), "total", total)
	return domain.Page[domain.Student]{Rows: rows, Total: total}, nil
}

// FetchDetails returns one page of a student's term records.
func (g *Gateway) FetchDetails(ctx context.Context, studentID int, sort domain.SortSpec, window domain.PageWindow) (domain.Page[domain.StudentDetail], error) {
	if !window.IsValid() {
		return domain.Page[domain.StudentDetail]{}, gateway.Transport(gateway.OpFetchDetails, fmt.Errorf("invalid page window %+v", window))
	}
	order, err := buildOrder(sort, detailColumns, "detail_id")
	if err != nil {
		return domain.Page[domain.StudentDetail]{}, gateway.Transport(gateway.OpFetchDetails, err)
	}
	query := fmt.Sprintf(`SELECT detail_id, student_id, term, course, grade, term_created_date
        FROM student_details WHERE student_id = ?%s LIMIT %d OFFSET %d`, order, window.Size, window.Offset())
	var rows []detailRow
	if err := g.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return domain.Page[domain.StudentDetail]{}, gateway.Transport(gateway.OpFetchDetails, fmt.Errorf("list details: %w", err))
	}
	var total int
	if err := g.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM student_details WHERE student_id = ?", studentID); err != nil {
		return domain.Page[domain.StudentDetail]{}, gateway.Transport(gateway.OpFetchDetails, fmt.Errorf("count details: %w", err))
	}

	details := make([]domain.StudentDetail, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(time.RFC3339, r.TermCreatedDate)
		if err != nil {
			return domain.Page[domain.StudentDetail]{}, gateway.Transport(gateway.OpFetchDetails, fmt.Errorf("detail %d: %w", r.ID, err))
		}
		details = append(details, domain.StudentDetail{
			ID:              r.ID,
			StudentID:       r.StudentID,
			Term:            r.Term,
			Course:          r.Course,
			Grade:           r.Grade,
			TermCreatedDate: created,
		})
	}
	return domain.Page[domain.StudentDetail]{Rows: details, Total: total}, nil
}

// Create inserts a student; the database assigns the ID.
func (g *Gateway) Create(ctx context.Context, s domain.Student) (gateway.Result, error) {
	taken, err := g.schoolIDTaken(ctx, domain.NewStudentID, s.SchoolID)
	if err != nil {
		return gateway.Result{}, gateway.Transport(gateway.OpCreate, err)
	}
	if taken {
		return g.fail(gateway.OpCreate, gateway.MsgSchoolIDInUse)
	}
	const query = `INSERT INTO students (school_id, first_name, last_name, email)
        VALUES (:school_id, :first_name, :last_name, :email)`
	if _, err := g.db.NamedExecContext(ctx, query, s); err != nil {
		if isUniqueViolation(err) {
			return g.fail(gateway.OpCreate, gateway.MsgSchoolIDInUse)
		}
		return gateway.Result{}, gateway.Transport(gateway.OpCreate, fmt.Errorf("create student: %w", err))
	}
	return gateway.OK(), nil
}

// Update rewrites every field of the student with s.ID.
func (g *Gateway) Update(ctx context.Context, s domain.Student) (gateway.Result, error) {
	taken, err := g.schoolIDTaken(ctx, s.ID, s.SchoolID)
	if err != nil {
		return gateway.Result{}, gateway.Transport(gateway.OpUpdate, err)
	}
	if taken {
		return g.fail(gateway.OpUpdate, gateway.MsgSchoolIDInUse)
	}
	const query = `UPDATE students SET school_id = :school_id, first_name = :first_name, last_name = :last_name,
        email = :email, updated_at = CURRENT_TIMESTAMP WHERE student_id = :student_id`
	res, err := g.db.NamedExecContext(ctx, query, s)
	if err != nil {
		if isUniqueViolation(err) {
			return g.fail(gateway.OpUpdate, gateway.MsgSchoolIDInUse)
		}
		return gateway.Result{}, gateway.Transport(gateway.OpUpdate, fmt.Errorf("update student: %w", err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return g.fail(gateway.OpUpdate, gateway.MsgStudentNotFound)
	}
	return gateway.OK(), nil
}

// Delete removes one student and its details.
func (g *Gateway) Delete(ctx context.Context, id int) (gateway.Result, error) {
	return g.deleteIDs(ctx, gateway.OpDelete, []int{id})
}

// DeleteMany removes every listed student, or none when one is unknown.
func (g *Gateway) DeleteMany(ctx context.Context, ids []int) (gateway.Result, error) {
	if len(ids) == 0 {
		return g.fail(gateway.OpDeleteMany, gateway.MsgNothingToDelete)
	}
	return g.deleteIDs(ctx, gateway.OpDeleteMany, ids)
}

func (g *Gateway) deleteIDs(ctx context.Context, op string, ids []int) (gateway.Result, error) {
	unique := make(map[int]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}

	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return gateway.Result{}, gateway.Transport(op, fmt.Errorf("begin delete: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	countQuery, args, err := sqlx.In("SELECT COUNT(*) FROM students WHERE student_id IN (?)", ids)
	if err != nil {
		return gateway.Result{}, gateway.Transport(op, err)
	}
	var found int
	if err := tx.GetContext(ctx, &found, tx.Rebind(countQuery), args...); err != nil {
		return gateway.Result{}, gateway.Transport(op, fmt.Errorf("count students: %w", err))
	}
	if found != len(unique) {
		return g.fail(op, gateway.MsgStudentNotFound)
	}

	for _, stmt := range []string{
		"DELETE FROM student_details WHERE student_id IN (?)",
		"DELETE FROM students WHERE student_id IN (?)",
	} {
		query, args, err := sqlx.In(stmt, ids)
		if err != nil {
			return gateway.Result{}, gateway.Transport(op, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return gateway.Result{}, gateway.Transport(op, fmt.Errorf("delete students: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return gateway.Result{}, gateway.Transport(op, fmt.Errorf("commit delete: %w", err))
	}
	g.logger.Debug("students deleted", "op", op, "count", found)
	return gateway.OK(), nil
}

// CheckUniqueSchoolID fails when another student already uses candidate.
func (g *Gateway) CheckUniqueSchoolID(ctx context.Context, excludingID int, candidate string) (gateway.Result, error) {
	taken, err := g.schoolIDTaken(ctx, excludingID, candidate)
	if err != nil {
		return gateway.Result{}, gateway.Transport(gateway.OpCheckSchoolID, err)
	}
	if taken {
		return g.fail(gateway.OpCheckSchoolID, gateway.MsgSchoolIDInUse)
	}
	return gateway.OK(), nil
}

func (g *Gateway) schoolIDTaken(ctx context.Context, excludingID int, schoolID string) (bool, error) {
	var exists int
	err := g.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE school_id = ? AND student_id <> ? LIMIT 1", schoolID, excludingID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check school id: %w", err)
	}
	return true, nil
}

func (g *Gateway) fail(op, msg string) (gateway.Result, error) {
	g.logger.Info("business rule failure", "op", op, "message", msg)
	return gateway.Fail(msg), nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
