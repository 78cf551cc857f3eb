package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDatabaseURL(t *testing.T) {
	dsn := parseDatabaseURL("postgres://sas_app:pw@db.example.com:5433/sas")
	assert.Equal(t, "host=db.example.com port=5433 user=sas_app password=pw dbname=sas sslmode=disable connect_timeout=3", dsn)

	// Defaults fill in whatever the URL omits
	dsn = parseDatabaseURL("postgres://db.example.com")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "user=sas_app")
	assert.Contains(t, dsn, "dbname=sas")

	assert.Empty(t, parseDatabaseURL("mysql://db.example.com/sas"))
	assert.Empty(t, parseDatabaseURL("://bad"))
}

func TestBuildDSNPrecedence(t *testing.T) {
	t.Setenv("DB_SOCKET", "/var/run/postgresql")
	t.Setenv("DATABASE_URL", "postgres://ignored.example.com/other")
	t.Setenv("DB_NAME", "sas")

	dsn := buildDSN()
	assert.Contains(t, dsn, "host=/var/run/postgresql")

	t.Setenv("DB_SOCKET", "")
	dsn = buildDSN()
	assert.Contains(t, dsn, "host=ignored.example.com")

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "10.0.0.5")
	dsn = buildDSN()
	assert.Contains(t, dsn, "host=10.0.0.5")
}
