package sightline

import (
	"fmt"
	"strings"
)

// Status is a severity band label. Higher values are worse.
type Status int8

// Severity levels, best to worst.
const (
	StatusOptimal Status = iota
	StatusAcceptable
	StatusMarginal
	StatusWarning
	StatusFail
)

var statusNames = [...]string{
	StatusOptimal:    "optimal",
	StatusAcceptable: "acceptable",
	StatusMarginal:   "marginal",
	StatusWarning:    "warning",
	StatusFail:       "fail",
}

// Statuses lists every status from best to worst.
var Statuses = []Status{StatusOptimal, StatusAcceptable, StatusMarginal, StatusWarning, StatusFail}

// String returns the lower-case label ("optimal", ..., "fail").
func (s Status) String() string {
	if s < StatusOptimal || s > StatusFail {
		return fmt.Sprintf("status(%d)", int8(s))
	}
	return statusNames[s]
}

// Valid reports whether s is one of the defined levels.
func (s Status) Valid() bool {
	return s >= StatusOptimal && s <= StatusFail
}

// WorseThan reports whether s is strictly more severe than o.
func (s Status) WorseThan(o Status) bool { return s > o }

// MarshalText encodes the status as its label.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status label.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus parses a status label, case-insensitively.
func ParseStatus(name string) (Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return StatusOptimal, fmt.Errorf("unknown status %q", name)
}

// Worst returns the most severe of the given statuses, or StatusOptimal
// when called with none.
func Worst(statuses ...Status) Status {
	w := StatusOptimal
	for _, s := range statuses {
		if s > w {
			w = s
		}
	}
	return w
}
