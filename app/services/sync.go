package services

import (
	"database/sql"
	"errors"
	"log"

	"sas-admin/app/database"
	"sas-admin/app/models"
	"sas-admin/app/roster"
	"sas-admin/app/store"
)

// SyncIncomingApplications pulls newly submitted canonical applications into
// the local cache. Existing cached entries are never updated or removed, so
// the operation is idempotent and safe to run on every read. When the
// canonical store is unreachable it silently no-ops; the next call is the
// retry path. Returns the number of applications added.
func SyncIncomingApplications(db *sql.DB, st *store.Store) (int, error) {
	incoming, err := database.SubmittedApplications(db)
	if err != nil {
		if !errors.Is(err, database.ErrUnavailable) {
			log.Printf("Application sync skipped: %v", err)
		}
		return 0, nil
	}

	doc, err := st.Read()
	if err != nil {
		return 0, err
	}
	if len(missingApplications(doc.Applications, incoming)) == 0 {
		return 0, nil
	}

	// Recompute inside the write so a concurrent sync cannot double-insert.
	var added int
	err = st.Write(func(d *models.Document) {
		missing := missingApplications(d.Applications, incoming)
		d.Applications = append(d.Applications, missing...)
		added = len(missing)
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// missingApplications converts the canonical rows whose external id is not
// yet cached.
func missingApplications(existing []models.Application, incoming []database.CanonicalApplication) []models.Application {
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.ID] = true
	}

	var missing []models.Application
	for _, row := range incoming {
		if row.ID == "" || seen[row.ID] {
			continue
		}
		seen[row.ID] = true
		missing = append(missing, models.Application{
			ID:            row.ID,
			ApplicantName: row.ApplicantName,
			ParentPhone:   row.ParentPhone,
			Grade:         roster.CanonicalGrade(row.Grade),
			Section:       row.Section,
			Status:        models.ApplicationSubmitted,
			CreatedAt:     row.CreatedAt,
		})
	}
	return missing
}
