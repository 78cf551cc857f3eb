package database

import (
	"database/sql"
	"time"
)

// CanonicalApplication is one admissions application row from the canonical
// store. ID is the external identifier reconciliation keys on.
type CanonicalApplication struct {
	ID            string
	ApplicantName string
	ParentPhone   string
	Grade         string
	Section       string
	Status        string
	CreatedAt     time.Time
}

// SubmittedApplications returns newly submitted applications ordered by
// creation time.
func SubmittedApplications(db *sql.DB) ([]CanonicalApplication, error) {
	if !Available(db) {
		return nil, ErrUnavailable
	}
	ctx, cancel := queryCtx()
	defer cancel()

	query := `SELECT id::text, applicant_name, COALESCE(parent_phone, ''), COALESCE(grade_applied, ''),
			  COALESCE(section_pref, ''), status, created_at
			  FROM applications
			  WHERE status = 'submitted'
			  ORDER BY created_at ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []CanonicalApplication
	for rows.Next() {
		var a CanonicalApplication
		if err := rows.Scan(&a.ID, &a.ApplicantName, &a.ParentPhone, &a.Grade, &a.Section, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
