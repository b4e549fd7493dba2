package logbook

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"pilot_logbook/internal/models"
)

// ErrUnknownAircraft means a flight references an aircraft id missing from the Aircraft Table
var ErrUnknownAircraft = errors.New("unknown aircraft")

// FlightSeq is a lazy, restartable sequence of flights. A non-nil error ends the sequence.
type FlightSeq = iter.Seq2[*models.Flight, error]

// FlightsInLast yields the flights dated within d of today, inclusive, most recent first
func (l *Logbook) FlightsInLast(today time.Time, d time.Duration) FlightSeq {
	today = models.Civil(today)
	return func(yield func(*models.Flight, error) bool) {
		for _, f := range l.flights {
			if today.Sub(f.Date) > d {
				// flights are sorted, nothing older can qualify
				return
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

// HoursInLast sums total time over the flights dated within d of today
func (l *Logbook) HoursInLast(today time.Time, d time.Duration) float64 {
	var total float64
	for f := range l.FlightsInLast(today, d) {
		total += f.TotalTime
	}
	return total
}

// FilterCategoryClass passes through flights flown in aircraft of the given class
func (l *Logbook) FilterCategoryClass(flights FlightSeq, class string) FlightSeq {
	return l.filterAircraft(flights, func(a *models.Aircraft) bool {
		return a.Class == class
	})
}

// FilterGearTypes passes through flights flown in aircraft with one of the given gear types
func (l *Logbook) FilterGearTypes(flights FlightSeq, gears ...models.GearType) FlightSeq {
	return l.filterAircraft(flights, func(a *models.Aircraft) bool {
		return slices.Contains(gears, a.GearType)
	})
}

func (l *Logbook) filterAircraft(flights FlightSeq, keep func(*models.Aircraft) bool) FlightSeq {
	return func(yield func(*models.Flight, error) bool) {
		for f, err := range flights {
			if err != nil {
				yield(nil, err)
				return
			}
			a, ok := l.aircraft[f.AircraftID]
			if !ok {
				yield(nil, fmt.Errorf("%w: flight on %s references %q",
					ErrUnknownAircraft, f.Date.Format(models.DateLayout), f.AircraftID))
				return
			}
			if keep(a) && !yield(f, nil) {
				return
			}
		}
	}
}
