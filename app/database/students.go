package database

import "database/sql"

// CanonicalStudent is one active student row joined with class, section and
// guardian phone.
type CanonicalStudent struct {
	USN         string
	Name        string
	Grade       string
	Section     string
	ParentPhone sql.NullString
}

// ActiveStudents returns the full active roster from the canonical store.
func ActiveStudents(db *sql.DB) ([]CanonicalStudent, error) {
	if !Available(db) {
		return nil, ErrUnavailable
	}
	ctx, cancel := queryCtx()
	defer cancel()

	query := `SELECT s.usn, s.name, c.name AS grade, sec.name AS section, p.phone AS parent_phone
			  FROM students s
			  JOIN classes c ON c.id = s.class_id
			  JOIN sections sec ON sec.id = s.section_id
			  LEFT JOIN parents p ON p.id = s.guardian_id
			  WHERE s.status = 'active'
			  ORDER BY c.name, sec.name, s.usn`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []CanonicalStudent
	for rows.Next() {
		var s CanonicalStudent
		if err := rows.Scan(&s.USN, &s.Name, &s.Grade, &s.Section, &s.ParentPhone); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
