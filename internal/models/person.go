package models

import (
	"fmt"
	"strings"
)

// Person is someone carried on a flight. People have no identity beyond the flight that lists them.
type Person struct {
	Name  string
	Role  PersonRole
	Email string
}

// ParsePerson decodes a single "name;role;email" person entry
func ParsePerson(s string) (Person, error) {
	if !strings.Contains(s, ";") {
		return Person{}, fmt.Errorf("invalid person entry %q", s)
	}

	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return Person{}, fmt.Errorf("invalid person entry %q: expected 3 parts, got %d", s, len(parts))
	}

	role, err := ParsePersonRole(parts[1])
	if err != nil {
		return Person{}, err
	}

	return Person{Name: parts[0], Role: role, Email: parts[2]}, nil
}

// person decodes an optional person column, appending to the flight's people
func person(name string) column[Flight] {
	return column[Flight]{name: name, decode: func(raw string, f *Flight) error {
		if raw == "" {
			return nil
		}
		p, err := ParsePerson(raw)
		if err != nil {
			return err
		}
		f.People = append(f.People, p)
		return nil
	}}
}
