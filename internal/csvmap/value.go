// Package csvmap maps typed records to and from delimited text rows.
package csvmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SetSeparator splits the tokens of a string-set cell.
const SetSeparator = ";"

// Kind identifies the wire type of a record field.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDate
	KindTime
	KindSet
	KindEnum
)

// EnumValue is one admissible member of an enumerated field.
type EnumValue struct {
	Name  string
	Value string
}

// Enum describes an enumerated field. Cells are matched against the
// symbolic name first, then against the value.
type Enum struct {
	Name   string
	Values []EnumValue
}

func (e *Enum) parse(raw string) (string, error) {
	for _, v := range e.Values {
		if raw == v.Name {
			return v.Name, nil
		}
	}
	for _, v := range e.Values {
		if raw == v.Value {
			return v.Name, nil
		}
	}
	names := make([]string, len(e.Values))
	for i, v := range e.Values {
		names[i] = v.Name
	}
	return "", fmt.Errorf("invalid %s value '%s'. Valid: %s", e.Name, raw, strings.Join(names, ", "))
}

// Clock is a time of day with minute precision on the wire. Seconds are
// accepted on read but dropped when formatting.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// IsZero reports whether the clock is the zero value.
func (c Clock) IsZero() bool {
	return c.Hour == 0 && c.Minute == 0 && c.Second == 0
}

var timeFormats = []string{"15:04:05", "15:04"}

// ParseClock parses a time of day, trying HH:MM:SS then HH:MM.
func ParseClock(raw string) (Clock, error) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time format: '%s'", raw)
}

var dateFormats = []string{"2006-01-02", "02/01/2006", "01/02/2006"}

// ParseDate parses a calendar date, trying ISO, then day-first, then
// month-first layouts. The first layout that accepts the input wins.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: '%s'", raw)
}

// StringSet is an unordered collection of unique tokens.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given tokens.
func NewStringSet(tokens ...string) StringSet {
	s := StringSet{}
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s StringSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts a token.
func (s StringSet) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes a token.
func (s StringSet) Remove(name string) {
	delete(s, name)
}

// Sorted returns the tokens in lexicographic order.
func (s StringSet) Sorted() []string {
	tokens := make([]string, 0, len(s))
	for t := range s {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// ParseStringSet splits on the set separator, trims tokens and drops
// empties. The empty string parses to an empty set.
func ParseStringSet(raw string) StringSet {
	s := StringSet{}
	if raw == "" {
		return s
	}
	for _, tok := range strings.Split(raw, SetSeparator) {
		if tok = strings.TrimSpace(tok); tok != "" {
			s.Add(tok)
		}
	}
	return s
}

// Parse converts a raw cell into a typed value. An empty cell yields nil;
// required-field handling is the mapper's concern.
func Parse(raw string, kind Kind, enum *Enum) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}

	switch kind {
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "y", "t":
			return true, nil
		case "false", "0", "no", "n", "f":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean: '%s'", raw)

	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: '%s'", raw)
		}
		return n, nil

	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, "€", "")), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: '%s'", raw)
		}
		return f, nil

	case KindString:
		return raw, nil

	case KindDate:
		return ParseDate(raw)

	case KindTime:
		return ParseClock(raw)

	case KindSet:
		return ParseStringSet(raw), nil

	case KindEnum:
		if enum == nil {
			return nil, fmt.Errorf("no enum declared for '%s'", raw)
		}
		return enum.parse(raw)
	}
	return nil, fmt.Errorf("unsupported kind %d", kind)
}

// Format is the inverse of Parse: nil renders as the empty string,
// booleans as lowercase true/false, dates as ISO, clocks as HH:MM and
// sets as sorted separator-joined tokens.
func Format(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format("2006-01-02")
	case Clock:
		return v.String()
	case StringSet:
		return strings.Join(v.Sorted(), SetSeparator)
	case string:
		return v
	}
	return fmt.Sprintf("%v", value)
}
