package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pilot_logbook/internal/models"

	"github.com/stretchr/testify/require"
)

const (
	asel = "airplane_single_engine_land"
	amel = "airplane_multi_engine_land"
)

// csvRow joins n fields with the given positions set
func csvRow(n int, set map[int]string) string {
	row := make([]string, n)
	for i, v := range set {
		row[i] = v
	}
	return strings.Join(row, ",")
}

func aircraftCSV(id, class string, gear models.GearType) string {
	return csvRow(models.RowFields, map[int]string{
		0: id, 1: "C172", 2: "1978", 3: "Cessna", 4: "172N", 5: "airplane",
		6: class, 7: string(gear), 8: "Piston", 9: "false", 10: "false", 11: "false",
	})
}

// exportCSV lays out a ForeFlight export with the given aircraft and flight rows
func exportCSV(aircraft, flights []string) string {
	lines := []string{
		csvRow(3, map[int]string{0: Signature, 1: "This row is required for importing into ForeFlight. Do not delete or modify."}),
		"",
		csvRow(3, map[int]string{0: "Aircraft Table"}),
		csvRow(3, map[int]string{0: "AircraftID", 1: "TypeCode", 2: "Year"}),
	}
	lines = append(lines, aircraft...)
	lines = append(lines,
		csvRow(models.RowFields, nil),
		csvRow(3, map[int]string{0: "Flights Table"}),
		csvRow(3, map[int]string{0: "Date", 1: "AircraftID", 2: "From"}),
	)
	lines = append(lines, flights...)
	return strings.Join(lines, "\n") + "\n"
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logbook.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

// testLogbook builds a logbook with one tricycle ASEL, one tailwheel ASEL and one AMEL aircraft
func testLogbook(flights ...*models.Flight) *Logbook {
	return New([]*models.Aircraft{
		{ID: "N172", Class: asel, GearType: models.GearFixedTricycle},
		{ID: "N3C", Class: asel, GearType: models.GearFixedTailwheel},
		{ID: "N58B", Class: amel, GearType: models.GearRetractableTricycle},
	}, flights)
}
