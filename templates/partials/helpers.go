package partials

import (
	"fmt"
	"strings"
	"time"
)

// FormatHours renders hours with two decimals
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// FormatMoney renders a dollar amount with thousands separators
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	whole, cents := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + cents
	if negative {
		out = "-" + out
	}
	return out
}

// FormatDate renders a calendar date, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatTimestamp renders a date and time, or "Never" for nil
func FormatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Never"
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// Title upper-cases the first letter of a status or priority value
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
