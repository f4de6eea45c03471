// Package gateway defines the contract between the list view and the remote
// source of students, and selects an implementation from configuration.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/student-roster/internal/domain"
)

// Gateway is the remote source of the students list.
//
// Every method returns a *TransportError when the source cannot be reached or
// answers with something that is not a valid response. Business rule outcomes
// travel in Result and are never returned as errors.
type Gateway interface {
	FetchPage(ctx context.Context, q domain.Query) (domain.Page[domain.Student], error)
	FetchDetails(ctx context.Context, studentID int, sort domain.SortSpec, window domain.PageWindow) (domain.Page[domain.StudentDetail], error)
	Create(ctx context.Context, s domain.Student) (Result, error)
	Update(ctx context.Context, s domain.Student) (Result, error)
	Delete(ctx context.Context, id int) (Result, error)
	DeleteMany(ctx context.Context, ids []int) (Result, error)
	// CheckUniqueSchoolID reports whether candidate is unused by every student
	// other than excludingID. domain.NewStudentID excludes nobody.
	CheckUniqueSchoolID(ctx context.Context, excludingID int, candidate string) (Result, error)
}

// Closer is implemented by gateways holding resources such as connections.
type Closer interface {
	Close() error
}

// Operation names used in errors and logs.
const (
	OpFetchPage     = "fetch_page"
	OpFetchDetails  = "fetch_details"
	OpCreate        = "create"
	OpUpdate        = "update"
	OpDelete        = "delete"
	OpDeleteMany    = "delete_many"
	OpCheckSchoolID = "check_school_id"
)

// Result is the outcome of a mutation or check. Success false is a business
// rule failure and Error carries the message to show.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK returns a successful result.
func OK() Result {
	return Result{Success: true}
}

// Fail returns a business rule failure with msg.
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Business rule messages shared by the local implementations.
const (
	MsgSchoolIDInUse   = "ID already in use"
	MsgStudentNotFound = "Student not found"
	MsgNothingToDelete = "No students are selected."
)

// TransportError wraps a failure to reach the source or decode its answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transport wraps err as a *TransportError for op. A nil err stays nil and an
// existing TransportError is returned unchanged.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
