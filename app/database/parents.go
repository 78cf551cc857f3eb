package database

import "database/sql"

// UpsertParent creates or refreshes the canonical parent record keyed by
// phone. Used best-effort by parent signup; the cached profile is the
// fallback when the canonical store is down.
func UpsertParent(db *sql.DB, name, phone, email string) error {
	if !Available(db) {
		return ErrUnavailable
	}
	ctx, cancel := queryCtx()
	defer cancel()

	query := `INSERT INTO parents (name, phone, email)
			  VALUES ($1, $2, NULLIF($3, ''))
			  ON CONFLICT (phone) DO UPDATE
			  SET name = EXCLUDED.name, email = COALESCE(EXCLUDED.email, parents.email)`
	_, err := db.ExecContext(ctx, query, name, phone, email)
	return err
}
