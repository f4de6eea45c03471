// Package memory provides an in-process students source with the same
// business rules as the remote API. Tests and demos use it.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/logging"
)

// Gateway keeps students and details in memory. It is safe for concurrent use.
type Gateway struct {
	mu       sync.Mutex
	students []domain.Student
	details  []domain.StudentDetail
	nextID   int
	failures map[string][]error
	calls    map[string]int
	logger   logging.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for call tracing.
func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithStudents replaces the initial roster.
func WithStudents(students ...domain.Student) Option {
	return func(g *Gateway) {
		g.students = append([]domain.Student(nil), students...)
	}
}

// WithDetails replaces the initial detail records.
func WithDetails(details ...domain.StudentDetail) Option {
	return func(g *Gateway) {
		g.details = append([]domain.StudentDetail(nil), details...)
	}
}

// New returns an empty gateway.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		failures: make(map[string][]error),
		calls:    make(map[string]int),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, s := range g.students {
		if s.ID >= g.nextID {
			g.nextID = s.ID
		}
	}
	g.nextID++
	return g
}

// NewSeeded returns a gateway holding the sample roster.
func NewSeeded(opts ...Option) *Gateway {
	seed := []Option{WithStudents(gateway.SampleStudents()...), WithDetails(gateway.SampleDetails()...)}
	return New(append(seed, opts...)...)
}

// FailNext makes the next call of op fail with err wrapped as a transport error.
// Calls queue up: FailNext twice fails the next two calls.
func (g *Gateway) FailNext(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[op] = append(g.failures[op], err)
}

// Calls returns how many times op was invoked, failures included.
func (g *Gateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

// Students returns a copy of every stored student in insertion order.
func (g *Gateway) Students() []domain.Student {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Student(nil), g.students...)
}

// begin records the call and pops an injected failure. Callers hold g.mu.
func (g *Gateway) begin(ctx context.Context, op string) error {
	g.calls[op]++
	if err := ctx.Err(); err != nil {
		return gateway.Transport(op, err)
	}
	if queue := g.failures[op]; len(queue) > 0 {
		g.failures[op] = queue[1:]
		g.logger.Debug("injected failure", "op", op, "error", queue[0])
		return gateway.Transport(op, queue[0])
	}
	return nil
}

func (g *Gateway) result(op string, r gateway.Result) (gateway.Result, error) {
	if !r.Success {
		g.logger.Info("business rule failure", "op", op, "message", r.Error)
	}
	return r, nil
}

// FetchPage filters, sorts and slices the roster.
func (g *Gateway) FetchPage(ctx context.Context, q domain.Query) (domain.Page[domain.Student], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpFetchPage); err != nil {
		return domain.Page[domain.Student]{}, err
	}
	if !q.Window.IsValid() {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, fmt.Errorf("invalid page window %+v", q.Window))
	}
	if q.Sort.IsActive() && !domain.IsStudentColumn(q.Sort.Column) {
		return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, fmt.Errorf("invalid sort column %q", q.Sort.Column))
	}
	matched := domain.SortRows(domain.FilterRows(g.students, q.Filters), q.Sort)
	g.logger.Debug("fetch page", "page", q.Window.Index, "size", q.Window.Size, "total", len(matched))
	return domain.Page[domain.Student]{Rows: domain.Slice(matched, q.Window), Total: len(matched)}, nil
}

// FetchDetails returns one page of the student's term records.
func (g *Gateway) FetchDetails(ctx context.Context, studentID int, sort domain.SortSpec, window domain.PageWindow) (domain.Page[domain.StudentDetail], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpFetchDetails); err != nil {
		return domain.Page[domain.StudentDetail]{}, err
	}
	if !window.IsValid() {
		return domain.Page[domain.StudentDetail]{}, gateway.Transport(gateway.OpFetchDetails, fmt.Errorf("invalid page window %+v", window))
	}
	var own []domain.StudentDetail
	for _, d := range g.details {
		if d.StudentID == studentID {
			own = append(own, d)
		}
	}
	own = domain.SortRows(own, sort)
	return domain.Page[domain.StudentDetail]{Rows: domain.Slice(own, window), Total: len(own)}, nil
}

// Create stores a new student and assigns its ID.
func (g *Gateway) Create(ctx context.Context, s domain.Student) (gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpCreate); err != nil {
		return gateway.Result{}, err
	}
	if g.schoolIDTaken(domain.NewStudentID, s.SchoolID) {
		return g.result(gateway.OpCreate, gateway.Fail(gateway.MsgSchoolIDInUse))
	}
	s.ID = g.nextID
	g.nextID++
	g.students = append(g.students, s)
	g.logger.Debug("student created", "id", s.ID)
	return gateway.OK(), nil
}

// Update replaces the stored student with the same ID.
func (g *Gateway) Update(ctx context.Context, s domain.Student) (gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpUpdate); err != nil {
		return gateway.Result{}, err
	}
	i := g.indexOf(s.ID)
	if i < 0 {
		return g.result(gateway.OpUpdate, gateway.Fail(gateway.MsgStudentNotFound))
	}
	if g.schoolIDTaken(s.ID, s.SchoolID) {
		return g.result(gateway.OpUpdate, gateway.Fail(gateway.MsgSchoolIDInUse))
	}
	g.students[i] = s
	return gateway.OK(), nil
}

// Delete removes one student and its details.
func (g *Gateway) Delete(ctx context.Context, id int) (gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpDelete); err != nil {
		return gateway.Result{}, err
	}
	if g.indexOf(id) < 0 {
		return g.result(gateway.OpDelete, gateway.Fail(gateway.MsgStudentNotFound))
	}
	g.remove(map[int]bool{id: true})
	return gateway.OK(), nil
}

// DeleteMany removes every listed student, or none when one is unknown.
func (g *Gateway) DeleteMany(ctx context.Context, ids []int) (gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpDeleteMany); err != nil {
		return gateway.Result{}, err
	}
	if len(ids) == 0 {
		return g.result(gateway.OpDeleteMany, gateway.Fail(gateway.MsgNothingToDelete))
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		if g.indexOf(id) < 0 {
			return g.result(gateway.OpDeleteMany, gateway.Fail(gateway.MsgStudentNotFound))
		}
		set[id] = true
	}
	g.remove(set)
	return gateway.OK(), nil
}

// CheckUniqueSchoolID fails when another student already uses candidate.
func (g *Gateway) CheckUniqueSchoolID(ctx context.Context, excludingID int, candidate string) (gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(ctx, gateway.OpCheckSchoolID); err != nil {
		return gateway.Result{}, err
	}
	if g.schoolIDTaken(excludingID, candidate) {
		return g.result(gateway.OpCheckSchoolID, gateway.Fail(gateway.MsgSchoolIDInUse))
	}
	return gateway.OK(), nil
}

func (g *Gateway) indexOf(id int) int {
	for i, s := range g.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (g *Gateway) schoolIDTaken(excludingID int, schoolID string) bool {
	for _, s := range g.students {
		if s.ID != excludingID && s.SchoolID == schoolID {
			return true
		}
	}
	return false
}

func (g *Gateway) remove(ids map[int]bool) {
	kept := g.students[:0]
	for _, s := range g.students {
		if !ids[s.ID] {
			kept = append(kept, s)
		}
	}
	g.students = kept
	details := g.details[:0]
	for _, d := range g.details {
		if !ids[d.StudentID] {
			details = append(details, d)
		}
	}
	g.details = details
}

// ErrUnavailable is a ready-made transport cause for FailNext.
var ErrUnavailable = errors.New("service unavailable")
