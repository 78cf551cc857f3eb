// Package database is the I/O boundary to the canonical relational store.
// It holds parameterized queries only; business rules live with the callers.
// Every call carries a short timeout so a database outage degrades to
// serving cached data instead of hanging the request.
package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// QueryTimeout bounds a single canonical-store round trip.
const QueryTimeout = 3 * time.Second

// ErrUnavailable is returned when no canonical connection is configured.
var ErrUnavailable = errors.New("canonical database unavailable")

// Available reports whether a canonical connection exists at all. The
// connection may still fail at query time; callers handle both the same way.
func Available(db *sql.DB) bool {
	return db != nil
}

func queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), QueryTimeout)
}
