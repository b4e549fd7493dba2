// Package report renders logbook summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"pilot_logbook/internal/logbook"
	"pilot_logbook/internal/models"
)

// NotCurrent is printed in place of an expiration date when a rule has no qualifying flight
const NotCurrent = "not current"

var titleStyle = lipgloss.NewStyle().Bold(true)

// HoursRows formats the flight-time totals as label and hours cells, to the hundredth of an hour
func HoursRows(s *logbook.Summary) [][]string {
	rows := make([][]string, 0, len(s.Hours))
	for _, h := range s.Hours {
		rows = append(rows, []string{h.Label, strconv.FormatFloat(h.Hours, 'f', 2, 64)})
	}
	return rows
}

// CurrencyRows formats the currency results as type, expiry and days-remaining cells
func CurrencyRows(s *logbook.Summary) [][]string {
	rows := make([][]string, 0, len(s.Currency))
	for _, c := range s.Currency {
		expiry := NotCurrent
		if c.IsCurrent() {
			expiry = c.Expiration.Format(models.DateLayout)
		}
		rows = append(rows, []string{c.Label, expiry, strconv.Itoa(c.DaysRemaining)})
	}
	return rows
}

// Render writes the summary and currency tables to w
func Render(w io.Writer, s *logbook.Summary) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Summary")); err != nil {
		return err
	}
	for _, line := range formatTable(nil, HoursRows(s), map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Currency")); err != nil {
		return err
	}
	headers := []string{"type", "expiry", "days_remaining"}
	for _, line := range formatTable(headers, CurrencyRows(s), map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
