package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoImports is returned when the archive has never been written
var ErrNoImports = errors.New("no logbook has been imported")

// Import records one archived snapshot of a logbook export
type Import struct {
	ID            string
	Source        string
	ImportedAt    time.Time
	AircraftCount int
	FlightCount   int
}

type ImportRepository interface {
	Insert(imp *Import) error
	Latest() (*Import, error)
}

type importRepository struct {
	db dbtx
}

func NewImportRepository(db dbtx) ImportRepository {
	return &importRepository{db: db}
}

func (r *importRepository) Insert(imp *Import) error {
	_, err := r.db.Exec(`INSERT INTO imports (
		id, source, imported_at, aircraft_count, flight_count
	) VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.ImportedAt.UTC(), imp.AircraftCount, imp.FlightCount)
	if err != nil {
		return fmt.Errorf("failed to insert import %s: %w", imp.ID, err)
	}
	return nil
}

// Latest returns the most recent import or ErrNoImports
func (r *importRepository) Latest() (*Import, error) {
	var imp Import
	err := r.db.QueryRow(`SELECT id, source, imported_at, aircraft_count, flight_count
		FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`).
		Scan(&imp.ID, &imp.Source, &imp.ImportedAt, &imp.AircraftCount, &imp.FlightCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoImports
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest import: %w", err)
	}
	return &imp, nil
}
