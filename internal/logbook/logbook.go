// Package logbook parses ForeFlight logbook exports and answers currency and flight-time queries.
package logbook

import (
	"log/slog"
	"sort"

	"pilot_logbook/internal/models"
)

// Logbook holds the aircraft and flights of one export.
// Flights are sorted by date, most recent first. A Logbook is read-only once built.
type Logbook struct {
	aircraft map[string]*models.Aircraft
	order    []string // aircraft ids in insertion order
	flights  []*models.Flight
}

// New builds a Logbook from decoded records. Flights are stable-sorted by date descending,
// so flights on the same day keep their relative order. A repeated aircraft id replaces the earlier entry.
func New(aircraft []*models.Aircraft, flights []*models.Flight) *Logbook {
	lb := &Logbook{
		aircraft: make(map[string]*models.Aircraft, len(aircraft)),
		order:    make([]string, 0, len(aircraft)),
		flights:  make([]*models.Flight, len(flights)),
	}

	for _, a := range aircraft {
		if _, ok := lb.aircraft[a.ID]; ok {
			slog.Warn("Duplicate aircraft id in logbook, keeping the last entry", "aircraft_id", a.ID)
		} else {
			lb.order = append(lb.order, a.ID)
		}
		lb.aircraft[a.ID] = a
	}

	copy(lb.flights, flights)
	sort.SliceStable(lb.flights, func(i, j int) bool {
		return lb.flights[i].Date.After(lb.flights[j].Date)
	})

	return lb
}

// Aircraft looks up an aircraft by id
func (l *Logbook) Aircraft(id string) (*models.Aircraft, bool) {
	a, ok := l.aircraft[id]
	return a, ok
}

// AircraftList returns the aircraft in the order they were first listed
func (l *Logbook) AircraftList() []*models.Aircraft {
	list := make([]*models.Aircraft, 0, len(l.order))
	for _, id := range l.order {
		list = append(list, l.aircraft[id])
	}
	return list
}

// Flights returns the flights, most recent first. Callers must not modify the slice.
func (l *Logbook) Flights() []*models.Flight {
	return l.flights
}

func (l *Logbook) AircraftCount() int {
	return len(l.aircraft)
}

func (l *Logbook) FlightCount() int {
	return len(l.flights)
}

// TotalTime sums total time over every flight in the logbook
func (l *Logbook) TotalTime() float64 {
	var total float64
	for _, f := range l.flights {
		total += f.TotalTime
	}
	return total
}
