package database

import (
	"path/filepath"
	"testing"
	"time"

	"pilot_logbook/internal/logbook"
	"pilot_logbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "logbook.db"))
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testAircraft() []*models.Aircraft {
	return []*models.Aircraft{
		{
			ID: "N3C", TypeCode: "J3", Year: 1946, Make: "Piper", Model: "J-3 Cub",
			Category: "airplane", Class: "airplane_single_engine_land",
			GearType: models.GearFixedTailwheel, EngineType: models.EngineRadial,
		},
		{
			ID: "N58B", TypeCode: "BE58", Year: 1981, Make: "Beechcraft", Model: "Baron",
			Category: "airplane", Class: "airplane_multi_engine_land",
			GearType: models.GearRetractableTricycle, EngineType: models.EnginePiston,
			Complex: true, HighPerformance: true,
		},
	}
}

func testFlights() []*models.Flight {
	return []*models.Flight{
		{
			Date: date(2024, 6, 20), AircraftID: "N58B", From: "KBOS", To: "KALB", Route: "GDM",
			TimeOut: "1400", TimeIn: "1530",
			TotalTime: 1.5, PIC: 1.5, Night: 0.4, CrossCountry: 1.5, Distance: 142,
			DayTakeoffs: 1, NightLandingsFullStop: 1, AllLandings: 1,
			SimulatedInstrument: 0.5, HobbsStart: 1200.1, HobbsEnd: 1201.6, Holds: 1,
			Approaches: []models.Approach{},
			People: []models.Person{
				{Name: "Pat Doe", Role: models.RoleSafetyPilot, Email: "pat@example.com"},
				{Name: "Sam Roe", Role: models.RolePassenger, Email: ""},
			},
			Comments: "night cross country",
		},
		{
			Date: date(2023, 1, 15), AircraftID: "N3C", From: "1B9", To: "1B9",
			TotalTime: 1.2, DualReceived: 1.2, DayTakeoffs: 3, DayLandingsFullStop: 3, AllLandings: 3,
			GroundTraining: 1, InstructorName: "Lee Poe", InstructorComments: "satisfactory",
			FlightReview: true,
			Approaches:   []models.Approach{},
		},
	}
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db)
}

func TestNew_ReopensExistingArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logbook.db")

	db, err := New(path)
	require.NoError(t, err)
	_, err = db.SaveLogbook("first.csv", logbook.New(testAircraft(), testFlights()))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	lb, err := db.LoadLogbook()
	require.NoError(t, err)
	assert.Equal(t, 2, lb.FlightCount())
}

func TestSaveLogbook_RoundTrip(t *testing.T) {
	db := setupTestDB(t)

	imp, err := db.SaveLogbook("logbook.csv", logbook.New(testAircraft(), testFlights()))
	require.NoError(t, err)
	assert.NotEmpty(t, imp.ID)
	assert.Equal(t, "logbook.csv", imp.Source)
	assert.Equal(t, 2, imp.AircraftCount)
	assert.Equal(t, 2, imp.FlightCount)

	lb, err := db.LoadLogbook()
	require.NoError(t, err)

	assert.Equal(t, testAircraft(), lb.AircraftList())
	assert.Equal(t, testFlights(), lb.Flights())

	ac, ok := lb.Aircraft("N58B")
	require.True(t, ok)
	assert.True(t, ac.Complex)
}

func TestSaveLogbook_ReplacesPreviousArchive(t *testing.T) {
	db := setupTestDB(t)

	first, err := db.SaveLogbook("first.csv", logbook.New(testAircraft(), testFlights()))
	require.NoError(t, err)

	second, err := db.SaveLogbook("second.csv", logbook.New(testAircraft()[:1], testFlights()[1:]))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	lb, err := db.LoadLogbook()
	require.NoError(t, err)
	assert.Equal(t, 1, lb.AircraftCount())
	require.Equal(t, 1, lb.FlightCount())
	assert.Equal(t, "N3C", lb.Flights()[0].AircraftID)
	assert.Nil(t, lb.Flights()[0].People)

	var people int
	require.NoError(t, db.db.QueryRow(`SELECT COUNT(*) FROM flight_people`).Scan(&people))
	assert.Zero(t, people)

	latest, err := db.LatestImport()
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "second.csv", latest.Source)
}

func TestSaveLogbook_Empty(t *testing.T) {
	db := setupTestDB(t)

	imp, err := db.SaveLogbook("empty.csv", logbook.New(nil, nil))
	require.NoError(t, err)
	assert.Zero(t, imp.FlightCount)

	lb, err := db.LoadLogbook()
	require.NoError(t, err)
	assert.Zero(t, lb.AircraftCount())
	assert.Zero(t, lb.FlightCount())
}

func TestLoadLogbook_NoImports(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.LoadLogbook()
	assert.ErrorIs(t, err, ErrNoImports)

	_, err = db.LatestImport()
	assert.ErrorIs(t, err, ErrNoImports)
}

func TestImportRepository_Latest(t *testing.T) {
	db := setupTestDB(t)
	repo := db.ImportRepository()

	older := &Import{ID: "a", Source: "old.csv", ImportedAt: date(2024, 1, 1), AircraftCount: 1, FlightCount: 10}
	newer := &Import{ID: "b", Source: "new.csv", ImportedAt: date(2024, 2, 1), AircraftCount: 2, FlightCount: 20}
	require.NoError(t, repo.Insert(newer))
	require.NoError(t, repo.Insert(older))

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
	assert.Equal(t, 20, latest.FlightCount)
	assert.True(t, latest.ImportedAt.Equal(newer.ImportedAt))
}

func TestAircraftRepository_InsertBatch_Empty(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.AircraftRepository().InsertBatch(nil))
	list, err := db.AircraftRepository().List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFlightRepository_PreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := db.FlightRepository()

	flights := testFlights()
	// reversed on purpose, List must return insertion order rather than date order
	require.NoError(t, repo.InsertBatch([]*models.Flight{flights[1], flights[0]}))

	got, err := repo.List()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "N3C", got[0].AircraftID)
	assert.Equal(t, "N58B", got[1].AircraftID)
	assert.Len(t, got[1].People, 2)
	assert.Equal(t, models.RoleSafetyPilot, got[1].People[0].Role)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
