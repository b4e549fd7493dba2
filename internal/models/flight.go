package models

import "time"

// Approach is an instrument approach flown on a flight. Approach columns are not decoded yet.
type Approach struct{}

// Flight represents one row of the logbook's Flights Table
type Flight struct {
	Date       time.Time // Calendar date at UTC midnight
	AircraftID string    // References Aircraft.ID
	From       string
	To         string
	Route      string

	// Block and duty times are kept as exported
	TimeOut string
	TimeIn  string
	OnDuty  string
	OffDuty string

	TotalTime    float64
	PIC          float64
	SIC          float64
	Night        float64
	Solo         float64
	CrossCountry float64
	Distance     float64

	DayTakeoffs           int
	DayLandingsFullStop   int
	NightTakeoffs         int
	NightLandingsFullStop int
	AllLandings           int

	ActualInstrument    float64
	SimulatedInstrument float64
	HobbsStart          float64
	HobbsEnd            float64
	TachStart           float64
	TachEnd             float64
	Holds               int
	Approaches          []Approach

	DualGiven          float64
	DualReceived       float64
	SimulatedFlight    float64
	GroundTraining     float64
	InstructorName     string
	InstructorComments string

	People []Person

	FlightReview bool
	Checkride    bool
	IPC          bool
	Comments     string
}

var flightSchema = []column[Flight]{
	date("date", func(f *Flight) *time.Time { return &f.Date }),
	text("aircraft_id", func(f *Flight) *string { return &f.AircraftID }),
	text("from", func(f *Flight) *string { return &f.From }),
	text("to", func(f *Flight) *string { return &f.To }),
	text("route", func(f *Flight) *string { return &f.Route }),
	text("time_out", func(f *Flight) *string { return &f.TimeOut }),
	text("time_in", func(f *Flight) *string { return &f.TimeIn }),
	text("on_duty", func(f *Flight) *string { return &f.OnDuty }),
	text("off_duty", func(f *Flight) *string { return &f.OffDuty }),
	number("total_time", func(f *Flight) *float64 { return &f.TotalTime }),
	number("pic", func(f *Flight) *float64 { return &f.PIC }),
	number("sic", func(f *Flight) *float64 { return &f.SIC }),
	number("night", func(f *Flight) *float64 { return &f.Night }),
	number("solo", func(f *Flight) *float64 { return &f.Solo }),
	number("cross_country", func(f *Flight) *float64 { return &f.CrossCountry }),
	number("distance", func(f *Flight) *float64 { return &f.Distance }),
	integer("day_takeoffs", func(f *Flight) *int { return &f.DayTakeoffs }),
	integer("day_landings_full_stop", func(f *Flight) *int { return &f.DayLandingsFullStop }),
	integer("night_takeoffs", func(f *Flight) *int { return &f.NightTakeoffs }),
	integer("night_landings_full_stop", func(f *Flight) *int { return &f.NightLandingsFullStop }),
	integer("all_landings", func(f *Flight) *int { return &f.AllLandings }),
	number("actual_instrument", func(f *Flight) *float64 { return &f.ActualInstrument }),
	number("simulated_instrument", func(f *Flight) *float64 { return &f.SimulatedInstrument }),
	number("hobbs_start", func(f *Flight) *float64 { return &f.HobbsStart }),
	number("hobbs_end", func(f *Flight) *float64 { return &f.HobbsEnd }),
	number("tach_start", func(f *Flight) *float64 { return &f.TachStart }),
	number("tach_end", func(f *Flight) *float64 { return &f.TachEnd }),
	integer("holds", func(f *Flight) *int { return &f.Holds }),
	reserved[Flight]("approach1"),
	reserved[Flight]("approach2"),
	reserved[Flight]("approach3"),
	reserved[Flight]("approach4"),
	reserved[Flight]("approach5"),
	reserved[Flight]("approach6"),
	number("dual_given", func(f *Flight) *float64 { return &f.DualGiven }),
	number("dual_received", func(f *Flight) *float64 { return &f.DualReceived }),
	number("simulated_flight", func(f *Flight) *float64 { return &f.SimulatedFlight }),
	number("ground_training", func(f *Flight) *float64 { return &f.GroundTraining }),
	text("instructor_name", func(f *Flight) *string { return &f.InstructorName }),
	text("instructor_comments", func(f *Flight) *string { return &f.InstructorComments }),
	person("person1"),
	person("person2"),
	person("person3"),
	person("person4"),
	person("person5"),
	person("person6"),
	flag("flight_review", func(f *Flight) *bool { return &f.FlightReview }),
	flag("checkride", func(f *Flight) *bool { return &f.Checkride }),
	flag("ipc", func(f *Flight) *bool { return &f.IPC }),
	text("comments", func(f *Flight) *string { return &f.Comments }),
}

// ParseFlightRow decodes the comma-split fields of one Flights Table row
func ParseFlightRow(row []string) (*Flight, error) {
	f, err := decodeRow(flightSchema, row)
	if err != nil {
		return nil, err
	}
	f.Approaches = []Approach{}
	return f, nil
}
