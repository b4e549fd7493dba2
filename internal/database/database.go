package database

import (
	"database/sql"
	"fmt"
	"strings"

	"pilot_logbook/internal/logbook"

	_ "github.com/mattn/go-sqlite3"
)

// Repository defines the archive operations used by the CLI and the watch daemon
type Repository interface {
	SaveLogbook(source string, lb *logbook.Logbook) (*Import, error)
	LoadLogbook() (*logbook.Logbook, error)
	LatestImport() (*Import, error)
	Close() error
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so repositories can run inside a transaction
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Prepare(query string) (*sql.Stmt, error)
}

// DB implements the Repository interface using SQLite
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite applies the pragmas the archive relies on
func optimizeSQLite(db *sql.DB) error {
	pragmas := []struct {
		stmt string
		desc string
	}{
		// WAL lets the summary command read while the watch daemon writes
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		{"PRAGMA synchronous=NORMAL", "set synchronous mode"},
		{"PRAGMA temp_store=MEMORY", "set temp_store"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// AircraftRepository returns a repository over the archived aircraft
func (d *DB) AircraftRepository() AircraftRepository {
	return NewAircraftRepository(d.db)
}

// FlightRepository returns a repository over the archived flights
func (d *DB) FlightRepository() FlightRepository {
	return NewFlightRepository(d.db)
}

// ImportRepository returns a repository over the import history
func (d *DB) ImportRepository() ImportRepository {
	return NewImportRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	tables := []struct {
		name   string
		schema string
	}{
		{"imports", `CREATE TABLE IF NOT EXISTS imports (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			imported_at TIMESTAMP NOT NULL,
			aircraft_count INTEGER NOT NULL,
			flight_count INTEGER NOT NULL
		);`},
		{"aircraft", `CREATE TABLE IF NOT EXISTS aircraft (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			type_code TEXT NOT NULL,
			year INTEGER NOT NULL,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			category TEXT NOT NULL,
			class TEXT NOT NULL,
			gear_type TEXT NOT NULL,
			engine_type TEXT NOT NULL,
			complex INTEGER NOT NULL,
			high_performance INTEGER NOT NULL,
			pressurized INTEGER NOT NULL
		);`},
		{"flights", `CREATE TABLE IF NOT EXISTS flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			` + strings.Join(flightColumnDefs, ",\n\t\t\t") + `
		);`},
		{"flight_people", `CREATE TABLE IF NOT EXISTS flight_people (
			flight_id INTEGER NOT NULL REFERENCES flights(id),
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			email TEXT NOT NULL,
			PRIMARY KEY (flight_id, position)
		);`},
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_flights_date ON flights(date)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_aircraft_id ON flights(aircraft_id)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at)`,
	}

	for _, t := range tables {
		if _, err := d.db.Exec(t.schema); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// placeholders returns n comma-separated bind parameters
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
