package listview

import (
	"errors"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Field identifies one input of the inline form.
type Field int

const (
	FieldSchoolID Field = iota
	FieldFirstName
	FieldLastName
	FieldEmail
)

// Fields lists the form inputs in tab order.
var Fields = []Field{FieldSchoolID, FieldFirstName, FieldLastName, FieldEmail}

// Validation messages.
const (
	MsgRequired     = "You must enter a value"
	MsgInvalidEmail = "Not a valid email"
)

// Label returns the input's caption.
func (f Field) Label() string {
	switch f {
	case FieldSchoolID:
		return "School ID"
	case FieldFirstName:
		return "First name"
	case FieldLastName:
		return "Last name"
	case FieldEmail:
		return "Email"
	default:
		return ""
	}
}

// Column returns the list column the field edits.
func (f Field) Column() string {
	switch f {
	case FieldSchoolID:
		return domain.ColumnSchoolID
	case FieldFirstName:
		return domain.ColumnFirstName
	case FieldLastName:
		return domain.ColumnLastName
	case FieldEmail:
		return domain.ColumnEmail
	default:
		return ""
	}
}

// Next returns the following field in tab order, wrapping around.
func (f Field) Next() Field {
	return Fields[(int(f)+1)%len(Fields)]
}

// studentInput is the validated shape of the form.
type studentInput struct {
	SchoolID  string `validate:"required"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

var structFields = map[Field]string{
	FieldSchoolID:  "SchoolID",
	FieldFirstName: "FirstName",
	FieldLastName:  "LastName",
	FieldEmail:     "Email",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form holds the inline add/edit inputs and their errors.
//
// The school id is only validated on blur: local rules first, then the
// asynchronous uniqueness check. The form can be submitted once every field is
// locally valid and the current school id has been confirmed unique.
type Form struct {
	values [4]string
	errs   [4]string

	// checkedSchoolID is the school id the source last confirmed unique.
	checkedSchoolID string
	checked         bool
	// pendingSchoolID is the value of the uniqueness check in flight.
	pendingSchoolID string
	pending         bool

	// generation changes on every reset so late check results are discarded.
	generation int
}

func newForm() *Form {
	return &Form{}
}

// Value returns the raw input of f.
func (fm *Form) Value(f Field) string {
	return fm.values[f]
}

// Error returns the message shown under f, or "".
func (fm *Form) Error(f Field) string {
	return fm.errs[f]
}

// IsChecking reports whether a school id check is in flight.
func (fm *Form) IsChecking() bool {
	return fm.pending
}

// IsSchoolIDChecked reports whether the current school id was confirmed unique.
func (fm *Form) IsSchoolIDChecked() bool {
	return fm.checked && fm.checkedSchoolID == fm.trimmed(FieldSchoolID) && fm.errs[FieldSchoolID] == ""
}

func (fm *Form) reset() {
	gen := fm.generation + 1
	*fm = Form{generation: gen}
}

// load fills the form from an existing student whose school id is known to
// belong to it.
func (fm *Form) load(s domain.Student) {
	fm.reset()
	fm.values = [4]string{s.SchoolID, s.FirstName, s.LastName, s.Email}
	fm.checkedSchoolID = s.SchoolID
	fm.checked = true
}

func (fm *Form) trimmed(f Field) string {
	return strings.TrimSpace(fm.values[f])
}

func (fm *Form) input() studentInput {
	return studentInput{
		SchoolID:  fm.trimmed(FieldSchoolID),
		FirstName: fm.trimmed(FieldFirstName),
		LastName:  fm.trimmed(FieldLastName),
		Email:     fm.trimmed(FieldEmail),
	}
}

// student returns the form content as a student with the given id.
func (fm *Form) student(id int) domain.Student {
	in := fm.input()
	return domain.Student{ID: id, SchoolID: in.SchoolID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
}

// localError runs the local rules of f and returns the message to show.
func (fm *Form) localError(f Field) string {
	err := validate.StructPartial(fm.input(), structFields[f])
	return validationMessage(err)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}
	switch verrs[0].Tag() {
	case "email":
		return MsgInvalidEmail
	default:
		return MsgRequired
	}
}

// LocallyValid reports whether every field passes the local rules.
func (fm *Form) LocallyValid() bool {
	return validate.Struct(fm.input()) == nil
}

// validateAll shows the local error of every field.
func (fm *Form) validateAll() {
	for _, f := range Fields {
		if f == FieldSchoolID && fm.errs[f] != "" && fm.localError(f) == "" {
			// Keep a server message for the school id.
			continue
		}
		fm.errs[f] = fm.localError(f)
	}
}

// CanSubmit reports whether Add or Update may be pressed.
func (fm *Form) CanSubmit() bool {
	return fm.LocallyValid() && fm.IsSchoolIDChecked() && !fm.pending
}

// SetField updates an input. Every field except the school id is validated
// immediately; changing the school id invalidates its previous check.
func (c *Controller) SetField(f Field, value string) {
	fm := c.form
	if fm.values[f] == value {
		return
	}
	fm.values[f] = value
	if f == FieldSchoolID {
		fm.errs[f] = ""
		return
	}
	fm.errs[f] = fm.localError(f)
}
