package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/student-roster/internal/domain"
)

var sampleNames = [][2]string{
	{"Ana", "Almeida"},
	{"Bruno", "Barros"},
	{"Carla", "Castro"},
	{"Daniel", "Duarte"},
	{"Elena", "Esteves"},
	{"Fabio", "Ferreira"},
	{"Gina", "Gomes"},
	{"Hugo", "Henriques"},
	{"Ines", "Ibarra"},
	{"Joana", "Jardim"},
	{"Kevin", "Klein"},
	{"Luana", "Lopes"},
}

var sampleCourses = []string{"Mathematics", "Physics", "Chemistry", "History", "Literature"}

var sampleGrades = []string{"A", "B+", "B", "C", "A-"}

// SampleStudents returns a deterministic roster used to seed local sources.
// IDs start at 1 and school ids at S100.
func SampleStudents() []domain.Student {
	students := make([]domain.Student, 0, len(sampleNames))
	for i, n := range sampleNames {
		students = append(students, domain.Student{
			ID:        i + 1,
			SchoolID:  fmt.Sprintf("S%d", 100+i),
			FirstName: n[0],
			LastName:  n[1],
			Email:     fmt.Sprintf("%s.%s@school.example", strings.ToLower(n[0]), strings.ToLower(n[1])),
		})
	}
	return students
}

// SampleDetails returns term records for the students of SampleStudents.
// Student n gets (n mod 4)+3 records so some detail lists span several pages.
func SampleDetails() []domain.StudentDetail {
	base := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	var details []domain.StudentDetail
	id := 1
	for s := 1; s <= len(sampleNames); s++ {
		for t := 0; t < s%4+3; t++ {
			created := base.AddDate(0, 6*t, s)
			details = append(details, domain.StudentDetail{
				ID:              id,
				StudentID:       s,
				Term:            fmt.Sprintf("%d-%d", created.Year(), t%2+1),
				Course:          sampleCourses[(s+t)%len(sampleCourses)],
				Grade:           sampleGrades[(s*t)%len(sampleGrades)],
				TermCreatedDate: created,
			})
			id++
		}
	}
	return details
}
