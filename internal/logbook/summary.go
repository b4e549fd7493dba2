package logbook

import (
	"fmt"
	"time"

	"pilot_logbook/internal/models"
)

// DefaultCategoryClass is the category and class the currency rules are evaluated for by default
const DefaultCategoryClass = "airplane_single_engine_land"

// HoursRow is one aggregate flight-time total
type HoursRow struct {
	Label string
	Hours float64
}

// CurrencyRow is one labelled currency rule result
type CurrencyRow struct {
	Label string
	Currency
}

// Summary is everything the presentation layer prints for a logbook
type Summary struct {
	AsOf     time.Time
	Hours    []HoursRow
	Currency []CurrencyRow
}

var hourWindows = []struct {
	label string
	days  int
}{
	{"Last seven days", 7},
	{"Last 30 days", 30},
	{"Last 90 days", 90},
	{"Last six months", 180},
	{"Last year", 365},
}

var classAbbreviations = map[string]string{
	"airplane_single_engine_land": "ASEL",
	"airplane_single_engine_sea":  "ASES",
	"airplane_multi_engine_land":  "AMEL",
	"airplane_multi_engine_sea":   "AMES",
}

// ClassLabel returns the short form of a category and class, or the class itself when it has none
func ClassLabel(class string) string {
	if abbr, ok := classAbbreviations[class]; ok {
		return abbr
	}
	return class
}

// Summarize computes the six flight-time totals and the four currency results as of today
func (l *Logbook) Summarize(today time.Time, class string) (*Summary, error) {
	today = models.Civil(today)

	s := &Summary{
		AsOf:  today,
		Hours: []HoursRow{{Label: "All", Hours: l.TotalTime()}},
	}
	for _, w := range hourWindows {
		s.Hours = append(s.Hours, HoursRow{Label: w.label, Hours: l.HoursInLast(today, models.Days(w.days))})
	}

	general, err := l.GeneralCurrency(today, class)
	if err != nil {
		return nil, fmt.Errorf("failed to compute general currency: %w", err)
	}
	night, err := l.NightCurrency(today, class)
	if err != nil {
		return nil, fmt.Errorf("failed to compute night currency: %w", err)
	}
	tailwheel, err := l.TailwheelCurrency(today, class)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tailwheel currency: %w", err)
	}

	label := ClassLabel(class)
	s.Currency = []CurrencyRow{
		{Label: fmt.Sprintf("General (%s)", label), Currency: general},
		{Label: fmt.Sprintf("Night (%s)", label), Currency: night},
		{Label: fmt.Sprintf("Tailwheel (%s)", label), Currency: tailwheel},
		{Label: "Flight Review", Currency: l.FlightReviewCurrency(today)},
	}
	return s, nil
}
