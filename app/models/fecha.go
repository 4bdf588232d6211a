package models

import (
	"fmt"
	"strings"
	"time"
)

// Fecha is a time.Time that also accepts plain YYYY-MM-DD dates on input,
// the way the UI submits them.
type Fecha struct {
	time.Time
}

// UnmarshalJSON accepts RFC3339 timestamps and bare calendar dates.
func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := ParseFecha(s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// ParseFecha parses a date in RFC3339 or YYYY-MM-DD format.
func ParseFecha(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}
