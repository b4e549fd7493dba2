package database

import (
	"fmt"
	"log/slog"
	"time"

	"pilot_logbook/internal/logbook"

	"github.com/google/uuid"
)

// SaveLogbook replaces the archived logbook with lb in a single transaction
func (d *DB) SaveLogbook(source string, lb *logbook.Logbook) (*Import, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	aircraft := NewAircraftRepository(tx)
	flights := NewFlightRepository(tx)

	if err := flights.DeleteAll(); err != nil {
		return nil, err
	}
	if err := aircraft.DeleteAll(); err != nil {
		return nil, err
	}
	if err := aircraft.InsertBatch(lb.AircraftList()); err != nil {
		return nil, err
	}
	if err := flights.InsertBatch(lb.Flights()); err != nil {
		return nil, err
	}

	imp := &Import{
		ID:            uuid.NewString(),
		Source:        source,
		ImportedAt:    time.Now().UTC(),
		AircraftCount: lb.AircraftCount(),
		FlightCount:   lb.FlightCount(),
	}
	if err := NewImportRepository(tx).Insert(imp); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Archived logbook",
		"import_id", imp.ID,
		"source", source,
		"aircraft", imp.AircraftCount,
		"flights", imp.FlightCount,
	)
	return imp, nil
}

// LoadLogbook rebuilds the most recently archived logbook
func (d *DB) LoadLogbook() (*logbook.Logbook, error) {
	if _, err := d.LatestImport(); err != nil {
		return nil, err
	}

	aircraft, err := d.AircraftRepository().List()
	if err != nil {
		return nil, err
	}
	flights, err := d.FlightRepository().List()
	if err != nil {
		return nil, err
	}

	return logbook.New(aircraft, flights), nil
}

func (d *DB) LatestImport() (*Import, error) {
	return d.ImportRepository().Latest()
}
