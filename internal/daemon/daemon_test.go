package daemon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pilot_logbook/internal/database"
	"pilot_logbook/internal/logbook"
	"pilot_logbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(set map[int]string) string {
	fields := make([]string, models.RowFields)
	for i, v := range set {
		fields[i] = v
	}
	return strings.Join(fields, ",")
}

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	lines := []string{
		logbook.Signature + ",This row is required for importing into ForeFlight. Do not delete or modify.,",
		",,",
		"Aircraft Table,,",
		"AircraftID,TypeCode,Year",
		row(map[int]string{0: "N172", 1: "C172", 2: "1978", 3: "Cessna", 4: "172N", 5: "airplane",
			6: "airplane_single_engine_land", 7: "fixed_tricycle", 8: "Piston", 9: "false", 10: "false", 11: "false"}),
		row(nil),
		"Flights Table,,",
		"Date,AircraftID,From",
		row(map[int]string{0: time.Now().Format(models.DateLayout), 1: "N172", 2: "KBOS", 3: "KBOS",
			9: "1.5", 16: "3", 20: "3"}),
	}
	path := filepath.Join(dir, "logbook.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestNew_RequiresLogbookPath(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogbookPath")
}

func TestNew_DefaultInterval(t *testing.T) {
	d, err := New(Config{LogbookPath: "logbook.csv"})
	require.NoError(t, err)
	defer d.cancel()
	assert.Equal(t, time.Hour, d.task.Interval())
	assert.Nil(t, d.database)
}

func TestDaemon_StartStop(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "logbook.db")

	d, err := New(Config{
		LogbookPath:   writeExport(t, dir),
		DBPath:        dbPath,
		WatchInterval: time.Hour,
		WarnDays:      30,
	})
	require.NoError(t, err)

	require.NoError(t, d.Start())
	assert.Eventually(t, func() bool { return d.task.Last() != nil }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, d.Stop())

	summary := d.task.Last()
	assert.Equal(t, 1.5, summary.Hours[0].Hours)
	assert.True(t, summary.Currency[0].IsCurrent())

	db, err := database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	lb, err := db.LoadLogbook()
	require.NoError(t, err)
	assert.Equal(t, 1, lb.AircraftCount())
	assert.Equal(t, 1, lb.FlightCount())
}
