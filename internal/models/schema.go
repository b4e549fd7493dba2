package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RowFields is the number of comma-separated fields in every aircraft and flight row
const RowFields = 50

// column is one positional entry of a row schema. A nil decode marks a reserved column.
type column[T any] struct {
	name   string
	decode func(raw string, rec *T) error
}

// decodeRow applies schema to row position by position.
// Empty fields leave the record's zero value in place unless the column requires a value.
func decodeRow[T any](schema []column[T], row []string) (*T, error) {
	if len(row) != len(schema) {
		return nil, &FormatError{
			Row:    strings.Join(row, ","),
			Reason: fmt.Sprintf("expected %d fields, got %d", len(schema), len(row)),
		}
	}

	rec := new(T)
	for i, col := range schema {
		if col.decode == nil {
			continue
		}
		if err := col.decode(row[i], rec); err != nil {
			return nil, &FormatError{
				Row:    strings.Join(row, ","),
				Column: col.name,
				Reason: err.Error(),
			}
		}
	}
	return rec, nil
}

func reserved[T any](name string) column[T] {
	return column[T]{name: name}
}

func text[T any](name string, field func(*T) *string) column[T] {
	return column[T]{name: name, decode: func(raw string, rec *T) error {
		*field(rec) = raw
		return nil
	}}
}

func integer[T any](name string, field func(*T) *int) column[T] {
	return column[T]{name: name, decode: func(raw string, rec *T) error {
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*field(rec) = n
		return nil
	}}
}

func number[T any](name string, field func(*T) *float64) column[T] {
	return column[T]{name: name, decode: func(raw string, rec *T) error {
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", raw)
		}
		*field(rec) = f
		return nil
	}}
}

// flag decodes a boolean: only the exact string "true" is truthy
func flag[T any](name string, field func(*T) *bool) column[T] {
	return column[T]{name: name, decode: func(raw string, rec *T) error {
		*field(rec) = raw == "true"
		return nil
	}}
}

// date decodes a required calendar date
func date[T any](name string, field func(*T) *time.Time) column[T] {
	return column[T]{name: name, decode: func(raw string, rec *T) error {
		if raw == "" {
			return fmt.Errorf("missing date")
		}
		d, err := ParseDate(raw)
		if err != nil {
			return fmt.Errorf("invalid date %q", raw)
		}
		*field(rec) = d
		return nil
	}}
}

// enum decodes an optional enumerated value through its validated conversion
func enum[T any, E ~string](name string, parse func(string) (E, error), field func(*T) *E) column[T] {
	return column[T]{name: name, decode: func(raw string, rec *T) error {
		if raw == "" {
			return nil
		}
		v, err := parse(raw)
		if err != nil {
			return err
		}
		*field(rec) = v
		return nil
	}}
}

// padSchema fills the trailing unused positions of a schema with reserved columns
func padSchema[T any](cols []column[T]) []column[T] {
	for i := len(cols); i < RowFields; i++ {
		cols = append(cols, reserved[T](fmt.Sprintf("reserved_%d", i)))
	}
	return cols
}
