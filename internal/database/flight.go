package database

import (
	"fmt"
	"strings"

	"pilot_logbook/internal/models"
)

// flightColumnDefs lists the flights table columns after the id, in bind order
var flightColumnDefs = []string{
	"position INTEGER NOT NULL",
	"date TEXT NOT NULL",
	"aircraft_id TEXT NOT NULL",
	"from_airport TEXT NOT NULL",
	"to_airport TEXT NOT NULL",
	"route TEXT NOT NULL",
	"time_out TEXT NOT NULL",
	"time_in TEXT NOT NULL",
	"on_duty TEXT NOT NULL",
	"off_duty TEXT NOT NULL",
	"total_time REAL NOT NULL",
	"pic REAL NOT NULL",
	"sic REAL NOT NULL",
	"night REAL NOT NULL",
	"solo REAL NOT NULL",
	"cross_country REAL NOT NULL",
	"distance REAL NOT NULL",
	"day_takeoffs INTEGER NOT NULL",
	"day_landings_full_stop INTEGER NOT NULL",
	"night_takeoffs INTEGER NOT NULL",
	"night_landings_full_stop INTEGER NOT NULL",
	"all_landings INTEGER NOT NULL",
	"actual_instrument REAL NOT NULL",
	"simulated_instrument REAL NOT NULL",
	"hobbs_start REAL NOT NULL",
	"hobbs_end REAL NOT NULL",
	"tach_start REAL NOT NULL",
	"tach_end REAL NOT NULL",
	"holds INTEGER NOT NULL",
	"dual_given REAL NOT NULL",
	"dual_received REAL NOT NULL",
	"simulated_flight REAL NOT NULL",
	"ground_training REAL NOT NULL",
	"instructor_name TEXT NOT NULL",
	"instructor_comments TEXT NOT NULL",
	"flight_review INTEGER NOT NULL",
	"checkride INTEGER NOT NULL",
	"ipc INTEGER NOT NULL",
	"comments TEXT NOT NULL",
}

var flightColumnNames = columnNames(flightColumnDefs)

func columnNames(defs []string) []string {
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = strings.Fields(def)[0]
	}
	return names
}

// flightArgs returns the bind values for a flight in flightColumnDefs order
func flightArgs(position int, f *models.Flight) []any {
	return []any{
		position,
		f.Date.Format(models.DateLayout),
		f.AircraftID, f.From, f.To, f.Route,
		f.TimeOut, f.TimeIn, f.OnDuty, f.OffDuty,
		f.TotalTime, f.PIC, f.SIC, f.Night, f.Solo, f.CrossCountry, f.Distance,
		f.DayTakeoffs, f.DayLandingsFullStop, f.NightTakeoffs, f.NightLandingsFullStop, f.AllLandings,
		f.ActualInstrument, f.SimulatedInstrument,
		f.HobbsStart, f.HobbsEnd, f.TachStart, f.TachEnd,
		f.Holds,
		f.DualGiven, f.DualReceived, f.SimulatedFlight, f.GroundTraining,
		f.InstructorName, f.InstructorComments,
		f.FlightReview, f.Checkride, f.IPC,
		f.Comments,
	}
}

// flightDests returns scan destinations matching flightArgs, with the date scanned as text
func flightDests(position *int, date *string, f *models.Flight) []any {
	return []any{
		position,
		date,
		&f.AircraftID, &f.From, &f.To, &f.Route,
		&f.TimeOut, &f.TimeIn, &f.OnDuty, &f.OffDuty,
		&f.TotalTime, &f.PIC, &f.SIC, &f.Night, &f.Solo, &f.CrossCountry, &f.Distance,
		&f.DayTakeoffs, &f.DayLandingsFullStop, &f.NightTakeoffs, &f.NightLandingsFullStop, &f.AllLandings,
		&f.ActualInstrument, &f.SimulatedInstrument,
		&f.HobbsStart, &f.HobbsEnd, &f.TachStart, &f.TachEnd,
		&f.Holds,
		&f.DualGiven, &f.DualReceived, &f.SimulatedFlight, &f.GroundTraining,
		&f.InstructorName, &f.InstructorComments,
		&f.FlightReview, &f.Checkride, &f.IPC,
		&f.Comments,
	}
}

type FlightRepository interface {
	InsertBatch(flights []*models.Flight) error
	List() ([]*models.Flight, error)
	DeleteAll() error
}

type flightRepository struct {
	db dbtx
}

func NewFlightRepository(db dbtx) FlightRepository {
	return &flightRepository{db: db}
}

// InsertBatch inserts flights and the people on them, recording each flight's position in the slice
func (r *flightRepository) InsertBatch(flights []*models.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	flightStmt, err := r.db.Prepare(fmt.Sprintf(`INSERT INTO flights (%s) VALUES (%s)`,
		strings.Join(flightColumnNames, ", "), placeholders(len(flightColumnNames))))
	if err != nil {
		return fmt.Errorf("failed to prepare flight statement: %w", err)
	}
	defer flightStmt.Close()

	personStmt, err := r.db.Prepare(`INSERT INTO flight_people (
		flight_id, position, name, role, email
	) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare person statement: %w", err)
	}
	defer personStmt.Close()

	for i, f := range flights {
		res, err := flightStmt.Exec(flightArgs(i, f)...)
		if err != nil {
			return fmt.Errorf("failed to insert flight: %w", err)
		}
		if len(f.People) == 0 {
			continue
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get flight id: %w", err)
		}
		for j, p := range f.People {
			if _, err := personStmt.Exec(id, j, p.Name, string(p.Role), p.Email); err != nil {
				return fmt.Errorf("failed to insert person: %w", err)
			}
		}
	}

	return nil
}

// List returns the archived flights in their archived order
func (r *flightRepository) List() ([]*models.Flight, error) {
	people, err := r.listPeople()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(fmt.Sprintf(`SELECT id, %s FROM flights ORDER BY position`,
		strings.Join(flightColumnNames, ", ")))
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []*models.Flight
	for rows.Next() {
		var (
			id       int64
			position int
			date     string
			f        models.Flight
		)
		dests := append([]any{&id}, flightDests(&position, &date, &f)...)
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}

		f.Date, err = models.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse flight date %q: %w", date, err)
		}
		f.Approaches = []models.Approach{}
		f.People = people[id]
		flights = append(flights, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flights: %w", err)
	}

	return flights, nil
}

func (r *flightRepository) listPeople() (map[int64][]models.Person, error) {
	rows, err := r.db.Query(`SELECT flight_id, name, role, email FROM flight_people ORDER BY flight_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	people := make(map[int64][]models.Person)
	for rows.Next() {
		var (
			flightID int64
			p        models.Person
			role     string
		)
		if err := rows.Scan(&flightID, &p.Name, &role, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.Role = models.PersonRole(role)
		people[flightID] = append(people[flightID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read people: %w", err)
	}

	return people, nil
}

// DeleteAll removes every archived flight and the people on them
func (r *flightRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM flight_people`); err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM flights`); err != nil {
		return fmt.Errorf("failed to delete flights: %w", err)
	}
	return nil
}
