package models

// Aircraft represents one row of the logbook's Aircraft Table
type Aircraft struct {
	ID              string     // Tail number, unique within a logbook
	TypeCode        string     // ICAO type designator (e.g., C172)
	Year            int        // Year built, 0 when not recorded
	Make            string     // Manufacturer
	Model           string     // Model name
	Category        string     // Aircraft category (e.g., airplane)
	Class           string     // Category and class (e.g., airplane_single_engine_land)
	GearType        GearType   // Landing gear configuration
	EngineType      EngineType // Engine type
	Complex         bool
	HighPerformance bool
	Pressurized     bool
}

// aircraftSchema maps each of the 50 aircraft row positions to a field.
// Positions after pressurized are present in the export but unused.
var aircraftSchema = padSchema([]column[Aircraft]{
	text("id", func(a *Aircraft) *string { return &a.ID }),
	text("type_code", func(a *Aircraft) *string { return &a.TypeCode }),
	integer("year", func(a *Aircraft) *int { return &a.Year }),
	text("make", func(a *Aircraft) *string { return &a.Make }),
	text("model", func(a *Aircraft) *string { return &a.Model }),
	text("category", func(a *Aircraft) *string { return &a.Category }),
	text("class", func(a *Aircraft) *string { return &a.Class }),
	enum("gear_type", ParseGearType, func(a *Aircraft) *GearType { return &a.GearType }),
	enum("engine_type", ParseEngineType, func(a *Aircraft) *EngineType { return &a.EngineType }),
	flag("complex", func(a *Aircraft) *bool { return &a.Complex }),
	flag("high_performance", func(a *Aircraft) *bool { return &a.HighPerformance }),
	flag("pressurized", func(a *Aircraft) *bool { return &a.Pressurized }),
})

// ParseAircraftRow decodes the comma-split fields of one Aircraft Table row
func ParseAircraftRow(row []string) (*Aircraft, error) {
	return decodeRow(aircraftSchema, row)
}
