package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	_ "github.com/lib/pq"

	"sas-admin/app/store"
)

type Config struct {
	DB       *sql.DB
	Store    *store.Store
	DataFile string
	Port     string
}

var AppConfig *Config

// InitDB connects to the canonical store and loads the rest of the
// configuration from the environment. A connection failure is not fatal:
// the server keeps running against the local document store and the next
// sync picks the database up once it is reachable again.
func InitDB() {
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "./data/local-db.json"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := sql.Open("postgres", buildDSN())
	if err != nil {
		log.Printf("Failed to open database connection: %v", err)
		db = nil
	}

	if db != nil {
		// Connection pool settings
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Printf("Canonical database unreachable, serving from local cache: %v", err)
		} else {
			log.Println("Database connected successfully")
		}
	}

	AppConfig = &Config{
		DB:       db,
		Store:    store.New(dataFile),
		DataFile: dataFile,
		Port:     port,
	}
}

// buildDSN resolves connection settings in order of precedence:
// DB_SOCKET, then DATABASE_URL, then discrete DB_* variables.
func buildDSN() string {
	if socket := os.Getenv("DB_SOCKET"); socket != "" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=3",
			socket, envOr("DB_USER", "sas_app"), os.Getenv("DB_PASSWORD"), envOr("DB_NAME", "sas"))
	}

	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		if dsn := parseDatabaseURL(raw); dsn != "" {
			return dsn
		}
		log.Printf("Ignoring malformed DATABASE_URL")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=3",
		envOr("DB_HOST", "127.0.0.1"), envOr("DB_PORT", "5432"),
		envOr("DB_USER", "sas_app"), os.Getenv("DB_PASSWORD"), envOr("DB_NAME", "sas"))
}

func parseDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return ""
	}
	host := u.Hostname()
	if host == "" {
		host = "127.0.0.1"
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	user := u.User.Username()
	if user == "" {
		user = "sas_app"
	}
	password, _ := u.User.Password()
	dbname := "sas"
	if len(u.Path) > 1 {
		dbname = u.Path[1:]
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=3",
		host, port, user, password, dbname)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDB returns the canonical store handle. It may be nil or unreachable;
// callers are expected to fall back to the local document store.
func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetStore returns the local document store.
func GetStore() *store.Store {
	return AppConfig.Store
}
