package overlay

import "strings"

// Weekdays are the seven fixed weekday labels shown next to the date.
var Weekdays = []string{
	"Chủ Nhật",
	"Thứ Hai",
	"Thứ Ba",
	"Thứ Tư",
	"Thứ Năm",
	"Thứ Sáu",
	"Thứ Bảy",
}

// Fallback values substituted when the user-supplied fields are empty or the
// date is malformed. Substitution is silent; the overlay never renders blank
// fields and never reports a field error.
const (
	FallbackTime    = "05:37"
	FallbackDate    = "05/01/2026"
	FallbackWeekday = "Thứ Năm"
)

// FormatDateDDMMYYYY converts an ISO YYYY-MM-DD string to DD/MM/YYYY.
// Anything that does not split into exactly three hyphen-separated parts
// yields the empty string; the caller decides on a fallback.
func FormatDateDDMMYYYY(iso string) string {
	if iso == "" {
		return ""
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return ""
	}
	y := parts[0]
	m := pad2(parts[1])
	d := pad2(parts[2])
	return d + "/" + m + "/" + y
}

// pad2 left-pads with '0' to at least two characters, leaving longer strings alone.
func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
