package services

import (
	"database/sql"
	"log"
	"time"

	"sas-admin/app/store"
)

// StartScheduler starts the background task scheduler. The periodic sync is
// the recovery path after a canonical-store outage: requests never retry
// within themselves, they just serve the cache until this catches up.
func StartScheduler(db *sql.DB, st *store.Store) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			added, err := SyncIncomingApplications(db, st)
			if err != nil {
				log.Printf("Error syncing applications: %v", err)
				continue
			}
			if added > 0 {
				log.Printf("Synced %d new applications from canonical store", added)
			}
		}
	}()
}
