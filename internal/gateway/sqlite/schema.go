package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS students (
    student_id INTEGER PRIMARY KEY AUTOINCREMENT,
    school_id  TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    email      TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_students_school_id ON students(school_id);
CREATE INDEX IF NOT EXISTS idx_students_last_name ON students(last_name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS student_details (
    detail_id         INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id        INTEGER NOT NULL,
    term              TEXT NOT NULL,
    course            TEXT NOT NULL,
    grade             TEXT NOT NULL,
    term_created_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_student_details_student ON student_details(student_id, term_created_date);
`

// studentColumns maps wire column names to SQL columns. Only these may appear
// in ORDER BY or WHERE clauses.
var studentColumns = map[string]string{
	"studentSchoolId": "school_id",
	"firstName":       "first_name",
	"lastName":        "last_name",
	"studentEmail":    "email",
}

var detailColumns = map[string]string{
	"termCreatedDate": "term_created_date",
	"term":            "term",
	"course":          "course",
	"grade":           "grade",
}
