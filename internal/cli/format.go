package cli

import (
	"fmt"
	"strings"
	"time"
)

// FormatEuros formats a euro amount with two decimals.
func FormatEuros(amount float64) string {
	return fmt.Sprintf("%.2f €", amount)
}

// FormatPoints formats a point value, dropping trailing zeros.
func FormatPoints(pts float64) string {
	s := fmt.Sprintf("%.1f", pts)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatSigned formats a signed value with two decimals.
func FormatSigned(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
