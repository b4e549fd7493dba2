package logbook

import (
	"time"

	"pilot_logbook/internal/models"
)

const (
	// LandingCurrencyDays is the lookback and validity period of the takeoff and landing rules
	LandingCurrencyDays = 90
	// FlightReviewDays is the lookback and base validity period of a flight review
	FlightReviewDays = 730

	requiredTakeoffs = 3
	requiredLandings = 3
)

// Currency is the result of one currency rule. The zero value means not current.
type Currency struct {
	Expiration    time.Time // last day the pilot is current
	DaysRemaining int       // days left counting today, 0 when not current
}

// IsCurrent reports whether the rule found a qualifying flight
func (c Currency) IsCurrent() bool {
	return !c.Expiration.IsZero()
}

func currentUntil(expiration, today time.Time) Currency {
	return Currency{
		Expiration:    expiration,
		DaysRemaining: models.DaysBetween(today, expiration) + 1,
	}
}

// tally returns the takeoffs and landings a flight contributes to a rule
type tally func(f *models.Flight) (takeoffs, landings int)

// landingCurrency scans flights most recent first and stops at the flight that brings the
// running counts to the required takeoffs and landings. Currency runs 90 days from that flight.
func landingCurrency(flights FlightSeq, today time.Time, count tally) (Currency, error) {
	var takeoffs, landings int
	for f, err := range flights {
		if err != nil {
			return Currency{}, err
		}
		t, l := count(f)
		takeoffs += t
		landings += l

		if takeoffs >= requiredTakeoffs && landings >= requiredLandings {
			return currentUntil(f.Date.Add(models.Days(LandingCurrencyDays)), today), nil
		}
	}
	return Currency{}, nil
}

func (l *Logbook) recentInClass(today time.Time, class string) FlightSeq {
	return l.FilterCategoryClass(l.FlightsInLast(today, models.Days(LandingCurrencyDays)), class)
}

// GeneralCurrency computes passenger-carrying currency: three takeoffs and three landings
// in the category and class within the last 90 days
func (l *Logbook) GeneralCurrency(today time.Time, class string) (Currency, error) {
	today = models.Civil(today)
	return landingCurrency(l.recentInClass(today, class), today, func(f *models.Flight) (int, int) {
		return f.DayTakeoffs + f.NightTakeoffs, f.AllLandings
	})
}

// NightCurrency computes night currency: three night takeoffs and three night full-stop landings
func (l *Logbook) NightCurrency(today time.Time, class string) (Currency, error) {
	today = models.Civil(today)
	return landingCurrency(l.recentInClass(today, class), today, func(f *models.Flight) (int, int) {
		return f.NightTakeoffs, f.NightLandingsFullStop
	})
}

// TailwheelCurrency computes tailwheel currency: three takeoffs and three full-stop landings
// in a tailwheel aircraft of the category and class
func (l *Logbook) TailwheelCurrency(today time.Time, class string) (Currency, error) {
	today = models.Civil(today)
	flights := l.FilterGearTypes(l.recentInClass(today, class),
		models.GearFixedTailwheel, models.GearRetractableTailwheel)
	return landingCurrency(flights, today, func(f *models.Flight) (int, int) {
		return f.DayTakeoffs + f.NightTakeoffs, f.DayLandingsFullStop + f.NightLandingsFullStop
	})
}

// FlightReviewCurrency finds the most recent flight review or checkride in the last 730 days.
// It remains valid through the end of the calendar month 730 days after that flight.
func (l *Logbook) FlightReviewCurrency(today time.Time) Currency {
	today = models.Civil(today)
	for f := range l.FlightsInLast(today, models.Days(FlightReviewDays)) {
		if f.FlightReview || f.Checkride {
			return currentUntil(endOfMonth(f.Date.Add(models.Days(FlightReviewDays))), today)
		}
	}
	return Currency{}
}

func endOfMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}
