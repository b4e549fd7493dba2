package logbook

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pilot_logbook/internal/models"
)

// Signature is the first field of the first line of every ForeFlight logbook export
const Signature = "ForeFlight Logbook Import"

const (
	aircraftHeader = "Aircraft Table"
	flightsHeader  = "Flights Table"

	aircraftHeaderLine = 2 // zero-based line holding the Aircraft Table header
	firstAircraftLine  = 4 // after the header and its column-name row
)

type scanState int

const (
	expectMagic scanState = iota
	expectAircraftHeader
	readingAircraft
	expectFlightsHeader
	readingFlights
	done
)

func (s scanState) String() string {
	switch s {
	case expectMagic:
		return "expect_magic"
	case expectAircraftHeader:
		return "expect_aircraft_header"
	case readingAircraft:
		return "reading_aircraft"
	case expectFlightsHeader:
		return "expect_flights_header"
	case readingFlights:
		return "reading_flights"
	case done:
		return "done"
	default:
		return "unknown"
	}
}

// scanner walks the lines of an export section by section
type scanner struct {
	lines    []string
	pos      int
	state    scanState
	aircraft []*models.Aircraft
	flights  []*models.Flight
}

// Load reads and parses the logbook export at path
func Load(path string) (*Logbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrInvalidLogbookFile, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", models.ErrInvalidLogbookFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", models.ErrInvalidLogbookFile, path, err)
	}

	lb, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Loaded logbook",
		"path", path,
		"aircraft", lb.AircraftCount(),
		"flights", lb.FlightCount(),
	)
	return lb, nil
}

// Parse reads an entire export from r and parses it
func Parse(r io.Reader) (*Logbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read logbook: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Logbook, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	raw := strings.Split(string(data), "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}

	s := &scanner{lines: lines, state: expectMagic}
	for s.state != done {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	return New(s.aircraft, s.flights), nil
}

func (s *scanner) step() error {
	switch s.state {
	case expectMagic:
		if err := s.expectSection(0, Signature); err != nil {
			return err
		}
		s.pos = aircraftHeaderLine
		s.state = expectAircraftHeader

	case expectAircraftHeader:
		if err := s.expectSection(s.pos, aircraftHeader); err != nil {
			return err
		}
		s.pos = firstAircraftLine
		s.state = readingAircraft

	case readingAircraft:
		if s.pos >= len(s.lines) {
			return s.truncated()
		}
		fields := strings.Split(s.lines[s.pos], ",")
		if fields[0] == "" {
			// skip the blank separator row
			s.pos++
			s.state = expectFlightsHeader
			return nil
		}
		a, err := models.ParseAircraftRow(fields)
		if err != nil {
			return err
		}
		s.aircraft = append(s.aircraft, a)
		s.pos++

	case expectFlightsHeader:
		if err := s.expectSection(s.pos, flightsHeader); err != nil {
			return err
		}
		// skip the header and its column-name row
		s.pos += 2
		s.state = readingFlights

	case readingFlights:
		if s.pos >= len(s.lines) {
			s.state = done
			return nil
		}
		fields := strings.Split(s.lines[s.pos], ",")
		if fields[0] == "" {
			s.state = done
			return nil
		}
		f, err := models.ParseFlightRow(fields)
		if err != nil {
			return err
		}
		s.flights = append(s.flights, f)
		s.pos++
	}
	return nil
}

// expectSection requires line idx to be a comma-separated row whose first field is name
func (s *scanner) expectSection(idx int, name string) error {
	if idx >= len(s.lines) {
		return s.truncated()
	}
	line := s.lines[idx]
	if !strings.Contains(line, ",") || strings.Split(line, ",")[0] != name {
		return &models.FormatError{
			Row:    line,
			Reason: fmt.Sprintf("line %d: expected %q while in state %s", idx+1, name, s.state),
		}
	}
	return nil
}

func (s *scanner) truncated() error {
	return &models.FormatError{
		Reason: fmt.Sprintf("unexpected end of file at line %d while in state %s", s.pos+1, s.state),
	}
}
