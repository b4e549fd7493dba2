package models

import "fmt"

// GearType is the landing gear configuration of an aircraft. The zero value means no value was recorded.
type GearType string

const (
	GearFixedTailwheel       GearType = "fixed_tailwheel"
	GearFixedTricycle        GearType = "fixed_tricycle"
	GearRetractableTailwheel GearType = "retractable_tailwheel"
	GearRetractableTricycle  GearType = "retractable_tricycle"
)

// ParseGearType converts an export value to a GearType
func ParseGearType(s string) (GearType, error) {
	switch g := GearType(s); g {
	case GearFixedTailwheel, GearFixedTricycle, GearRetractableTailwheel, GearRetractableTricycle:
		return g, nil
	default:
		return "", fmt.Errorf("unknown gear type: %q", s)
	}
}

// EngineType is the engine type of an aircraft. The zero value means no value was recorded.
type EngineType string

const (
	EnginePiston EngineType = "Piston"
	EngineRadial EngineType = "Radial"
)

// ParseEngineType converts an export value to an EngineType
func ParseEngineType(s string) (EngineType, error) {
	switch e := EngineType(s); e {
	case EnginePiston, EngineRadial:
		return e, nil
	default:
		return "", fmt.Errorf("unknown engine type: %q", s)
	}
}

// PersonRole is the role of a person carried on a flight
type PersonRole string

const (
	RolePassenger   PersonRole = "Passenger"
	RoleInstructor  PersonRole = "Instructor"
	RoleStudent     PersonRole = "Student"
	RoleSafetyPilot PersonRole = "Safety Pilot"
	RoleExaminer    PersonRole = "Examiner"
)

// ParsePersonRole converts an export value to a PersonRole
func ParsePersonRole(s string) (PersonRole, error) {
	switch r := PersonRole(s); r {
	case RolePassenger, RoleInstructor, RoleStudent, RoleSafetyPilot, RoleExaminer:
		return r, nil
	default:
		return "", fmt.Errorf("unknown person role: %q", s)
	}
}
