package csvmap

import (
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-03-07", "07/03/2024"} {
		got, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", raw, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", raw, got, want)
		}
	}

	// Day-first wins over month-first when both could apply.
	got, err := ParseDate("03/04/2024")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Day() != 3 || got.Month() != time.April {
		t.Errorf("ParseDate(03/04/2024) = %v, want April 3", got)
	}

	// Month-first is the fallback for dates day-first rejects.
	got, err = ParseDate("04/25/2024")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Day() != 25 || got.Month() != time.April {
		t.Errorf("ParseDate(04/25/2024) = %v, want April 25", got)
	}

	if _, err := ParseDate("not a date"); err == nil {
		t.Error("ParseDate accepted garbage")
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:35:12")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if c.Hour != 9 || c.Minute != 35 || c.Second != 12 {
		t.Errorf("ParseClock(09:35:12) = %+v", c)
	}

	c, err = ParseClock("14:05")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if c.Hour != 14 || c.Minute != 5 || c.Second != 0 {
		t.Errorf("ParseClock(14:05) = %+v", c)
	}
	if c.String() != "14:05" {
		t.Errorf("Clock.String() = %q", c.String())
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Error("ParseClock accepted an invalid hour")
	}
}

func TestParseBool(t *testing.T) {
	cases := map[string]bool{
		"true": true, "True": true, "1": true, "yes": true,
		"false": false, "0": false, "no": false,
	}
	for raw, want := range cases {
		v, err := Parse(raw, KindBool, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if v.(bool) != want {
			t.Errorf("Parse(%q) = %v, want %v", raw, v, want)
		}
	}
	if _, err := Parse("maybe", KindBool, nil); err == nil {
		t.Error("Parse accepted an invalid bool token")
	}
}

func TestParseFloatStripsEuroGlyph(t *testing.T) {
	v, err := Parse("12.50 €", KindFloat, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.(float64) != 12.5 {
		t.Errorf("Parse(12.50 €) = %v", v)
	}
}

func TestParseEmptyIsNil(t *testing.T) {
	for _, k := range []Kind{KindString, KindBool, KindInt, KindFloat, KindDate, KindTime, KindSet} {
		v, err := Parse("", k, nil)
		if err != nil {
			t.Fatalf("Parse empty kind %v: %v", k, err)
		}
		if v != nil {
			t.Errorf("Parse empty kind %v = %v, want nil", k, v)
		}
	}
}

func TestParseEnumNameThenValue(t *testing.T) {
	e := &Enum{Name: "direction", Values: []EnumValue{
		{Name: "Long", Value: "L"},
		{Name: "Short", Value: "S"},
	}}

	v, err := Parse("Long", KindEnum, e)
	if err != nil {
		t.Fatalf("Parse by name: %v", err)
	}
	if v.(string) != "Long" {
		t.Errorf("Parse(Long) = %v, want Long", v)
	}

	v, err = Parse("S", KindEnum, e)
	if err != nil {
		t.Fatalf("Parse by value: %v", err)
	}
	if v.(string) != "Short" {
		t.Errorf("Parse(S) = %v, want Short", v)
	}

	if _, err := Parse("Sideways", KindEnum, e); err == nil {
		t.Error("Parse accepted an unknown enum token")
	}
}

func TestStringSetParseAndFormat(t *testing.T) {
	s := ParseStringSet("b; a ;b;  ;c")
	if len(s) != 3 {
		t.Fatalf("ParseStringSet kept %d members, want 3", len(s))
	}
	if got := Format(s); got != "a;b;c" {
		t.Errorf("Format(set) = %q, want a;b;c", got)
	}
}

func TestFormat(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{true, "true"},
		{false, "false"},
		{3, "3"},
		{1.25, "1.25"},
		{10.0, "10"},
		{d, "2024-03-07"},
		{Clock{Hour: 9, Minute: 5}, "09:05"},
		{"text", "text"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
