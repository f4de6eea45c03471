// Package errors routes user facing failures to the console or the TUI status
// line and turns gateway errors into readable messages.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// ErrorHandler receives messages of each severity.
// Different implementations can handle them differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console writer used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput.
type CLIHandler struct {
	colors ColorOutput
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler returns a handler writing to out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{colors: out}
}

func (h *CLIHandler) Error(msg string)   { h.colors.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.colors.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.colors.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.colors.Success(msg) }

// console writes through the colors package: errors and warnings to stderr,
// the rest to stdout.
type console struct{}

func (console) Error(msgs ...string)   { colors.Error(msgs...) }
func (console) Warning(msgs ...string) { colors.Warning(msgs...) }
func (console) Info(msgs ...string)    { colors.Info(msgs...) }
func (console) Success(msgs ...string) { colors.Success(msgs...) }

// NewDefaultCLIHandler returns the handler used by the commands.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(console{})
}

// ErrValidation marks input rejected before reaching the source.
var ErrValidation = stderrors.New("invalid input")

// Validation returns an ErrValidation for field.
func Validation(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, msg)
}

// Rejected is a business rule failure reported by the source.
type Rejected struct {
	Op     string
	Reason string
}

func (e *Rejected) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Reason)
}

// FromResult turns a failed gateway result into a *Rejected error.
func FromResult(op string, res gateway.Result) error {
	if res.Success {
		return nil
	}
	return &Rejected{Op: op, Reason: res.Error}
}

var opDescriptions = map[string]string{
	gateway.OpFetchPage:     "load students",
	gateway.OpFetchDetails:  "load student details",
	gateway.OpCreate:        "add the student",
	gateway.OpUpdate:        "update the student",
	gateway.OpDelete:        "delete the student",
	gateway.OpDeleteMany:    "delete the selected students",
	gateway.OpCheckSchoolID: "check the school ID",
}

// Describe returns the message shown to the user for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var te *gateway.TransportError
	if stderrors.As(err, &te) {
		what, ok := opDescriptions[te.Op]
		if !ok {
			what = te.Op
		}
		return fmt.Sprintf("Could not %s: %v", what, te.Err)
	}
	var rejected *Rejected
	if stderrors.As(err, &rejected) {
		return rejected.Reason
	}
	return err.Error()
}

// Report sends err to h at the severity its kind deserves. Business rule
// failures are warnings; everything else is an error.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	var rejected *Rejected
	if stderrors.As(err, &rejected) || stderrors.Is(err, ErrValidation) {
		h.Warning(Describe(err))
		return
	}
	h.Error(Describe(err))
}
