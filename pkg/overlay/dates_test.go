package overlay

import "testing"

func TestFormatDateDDMMYYYY(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"2026-01-05", "05/01/2026"},
		{"2026-1-5", "05/01/2026"},
		{"1999-12-31", "31/12/1999"},
		{"", ""},
		{"2026/01/05", ""},
		{"2026-01", ""},
		{"2026-01-05-07", ""},
		{"not a date", ""},
	}
	for _, c := range cases {
		if got := FormatDateDDMMYYYY(c.iso); got != c.want {
			t.Errorf("FormatDateDDMMYYYY(%q) = %q, want %q", c.iso, got, c.want)
		}
	}
}

func TestWeekdays(t *testing.T) {
	if len(Weekdays) != 7 {
		t.Fatalf("expected 7 weekday labels, got %d", len(Weekdays))
	}
	if Weekdays[0] != "Chủ Nhật" {
		t.Fatalf("week starts on Sunday, got %q", Weekdays[0])
	}
	for i, w := range Weekdays {
		if w == "" {
			t.Fatalf("weekday %d is empty", i)
		}
	}
}

func TestFieldsResolveFallbacks(t *testing.T) {
	timeVal, dateText, dowText := Fields{}.Resolve()
	if timeVal != FallbackTime || dateText != FallbackDate || dowText != FallbackWeekday {
		t.Fatalf("empty fields: got %q %q %q", timeVal, dateText, dowText)
	}

	// malformed date falls back silently, valid fields pass through
	timeVal, dateText, dowText = Fields{Time: "12:34", DateISO: "garbage", Weekday: "Thứ Hai"}.Resolve()
	if timeVal != "12:34" {
		t.Fatalf("time: got %q", timeVal)
	}
	if dateText != FallbackDate {
		t.Fatalf("malformed date should fall back, got %q", dateText)
	}
	if dowText != "Thứ Hai" {
		t.Fatalf("weekday: got %q", dowText)
	}

	_, dateText, _ = Fields{DateISO: "2026-08-26"}.Resolve()
	if dateText != "26/08/2026" {
		t.Fatalf("valid date: got %q", dateText)
	}
}
