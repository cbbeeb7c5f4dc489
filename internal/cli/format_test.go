package cli

import (
	"testing"
	"time"
)

func TestFormatEuros(t *testing.T) {
	if got := FormatEuros(12.5); got != "12.50 €" {
		t.Errorf("FormatEuros = %q", got)
	}
	if got := FormatEuros(-3); got != "-3.00 €" {
		t.Errorf("FormatEuros = %q", got)
	}
}

func TestFormatPoints(t *testing.T) {
	if got := FormatPoints(10); got != "10" {
		t.Errorf("FormatPoints(10) = %q", got)
	}
	if got := FormatPoints(1.5); got != "1.5" {
		t.Errorf("FormatPoints(1.5) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1.234); got != "+1.23%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(-2); got != "-2.00%" {
		t.Errorf("FormatPercent = %q", got)
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(5); got != "+5.00" {
		t.Errorf("FormatSigned = %q", got)
	}
	if got := FormatSigned(0); got != "0.00" {
		t.Errorf("FormatSigned = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2024-03-07" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("a rather long sentence", 10); got != "a rathe..." {
		t.Errorf("TruncateString = %q", got)
	}
}

func TestParseUnitAndKind(t *testing.T) {
	if _, err := parseUnit("euros"); err != nil {
		t.Errorf("parseUnit(euros): %v", err)
	}
	if _, err := parseUnit("sideways"); err == nil {
		t.Error("parseUnit accepted garbage")
	}
	if _, err := parseKind("average"); err != nil {
		t.Errorf("parseKind(average): %v", err)
	}
	if _, err := parseKind("median"); err == nil {
		t.Error("parseKind accepted garbage")
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := parseWeekday("fri")
	if err != nil {
		t.Fatalf("parseWeekday: %v", err)
	}
	if d.String() != "Fri" {
		t.Errorf("parseWeekday(fri) = %v", d)
	}
	if _, err := parseWeekday("someday"); err == nil {
		t.Error("parseWeekday accepted garbage")
	}
}
