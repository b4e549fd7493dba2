package database

import (
	"fmt"

	"pilot_logbook/internal/models"
)

type AircraftRepository interface {
	InsertBatch(aircraft []*models.Aircraft) error
	List() ([]*models.Aircraft, error)
	DeleteAll() error
}

type aircraftRepository struct {
	db dbtx
}

func NewAircraftRepository(db dbtx) AircraftRepository {
	return &aircraftRepository{db: db}
}

// InsertBatch inserts aircraft with one prepared statement, preserving their order
func (r *aircraftRepository) InsertBatch(aircraft []*models.Aircraft) error {
	if len(aircraft) == 0 {
		return nil
	}

	stmt, err := r.db.Prepare(`INSERT OR REPLACE INTO aircraft (
		id, position, type_code, year, make, model, category, class,
		gear_type, engine_type, complex, high_performance, pressurized
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, ac := range aircraft {
		if _, err := stmt.Exec(
			ac.ID, i, ac.TypeCode, ac.Year, ac.Make, ac.Model, ac.Category, ac.Class,
			string(ac.GearType), string(ac.EngineType), ac.Complex, ac.HighPerformance, ac.Pressurized,
		); err != nil {
			return fmt.Errorf("failed to insert aircraft %s: %w", ac.ID, err)
		}
	}

	return nil
}

// List returns the archived aircraft in their original order
func (r *aircraftRepository) List() ([]*models.Aircraft, error) {
	rows, err := r.db.Query(`SELECT
		id, type_code, year, make, model, category, class,
		gear_type, engine_type, complex, high_performance, pressurized
	FROM aircraft ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft: %w", err)
	}
	defer rows.Close()

	var aircraft []*models.Aircraft
	for rows.Next() {
		var ac models.Aircraft
		var gear, engine string
		if err := rows.Scan(
			&ac.ID, &ac.TypeCode, &ac.Year, &ac.Make, &ac.Model, &ac.Category, &ac.Class,
			&gear, &engine, &ac.Complex, &ac.HighPerformance, &ac.Pressurized,
		); err != nil {
			return nil, fmt.Errorf("failed to scan aircraft: %w", err)
		}
		ac.GearType = models.GearType(gear)
		ac.EngineType = models.EngineType(engine)
		aircraft = append(aircraft, &ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aircraft: %w", err)
	}

	return aircraft, nil
}

func (r *aircraftRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM aircraft`); err != nil {
		return fmt.Errorf("failed to delete aircraft: %w", err)
	}
	return nil
}
