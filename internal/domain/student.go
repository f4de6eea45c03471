// Package domain provides the domain layer for the student roster.
// It contains the entities and the value objects used to query them.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// NewStudentID marks a student that has not been created by the source yet.
// It is also the "no student" value for edit mode and uniqueness exclusion.
const NewStudentID = -1

// Student is one row of the managed roster.
type Student struct {
	ID        int    `json:"studentId" db:"student_id"`
	SchoolID  string `json:"studentSchoolId" db:"school_id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"studentEmail" db:"email"`
}

// IsNew reports whether the student still carries the NewStudentID sentinel.
func (s Student) IsNew() bool {
	return s.ID == NewStudentID
}

// FullName returns "First Last" trimmed of surrounding spaces.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Value returns the string value of the given student column.
// Unknown columns yield an empty string.
func (s Student) Value(column string) string {
	switch column {
	case ColumnSchoolID:
		return s.SchoolID
	case ColumnFirstName:
		return s.FirstName
	case ColumnLastName:
		return s.LastName
	case ColumnEmail:
		return s.Email
	default:
		return ""
	}
}

// String returns a short human readable representation.
func (s Student) String() string {
	return fmt.Sprintf("#%d %s (%s)", s.ID, s.FullName(), s.SchoolID)
}

// StudentDetail is one term/course record shown in a student's detail view.
type StudentDetail struct {
	ID              int       `json:"detailId" db:"detail_id"`
	StudentID       int       `json:"studentId" db:"student_id"`
	Term            string    `json:"term" db:"term"`
	Course          string    `json:"course" db:"course"`
	Grade           string    `json:"grade" db:"grade"`
	TermCreatedDate time.Time `json:"termCreatedDate" db:"term_created_date"`
}

// Value returns the sortable string value of the given detail column.
// Dates use RFC3339 so lexical order matches chronological order.
func (d StudentDetail) Value(column string) string {
	switch column {
	case ColumnTerm:
		return d.Term
	case ColumnCourse:
		return d.Course
	case ColumnGrade:
		return d.Grade
	case ColumnTermCreatedDate:
		return d.TermCreatedDate.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
