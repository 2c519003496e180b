package articles

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-14":           "March 14, 2024",
		"2024-03-14T09:30:00Z": "March 14, 2024",
		"not a date":           "not a date",
		"":                     "",
	}
	for input, want := range cases {
		if got := FormatDate(input, DefaultDateLayout); got != want {
			t.Fatalf("FormatDate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDateFormatter_AcceptsYAMLTimestamps(t *testing.T) {
	formatter := NewDateFormatter("2006/01/02", nil)

	if got := formatter.Format(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)); got != "2023/12/01" {
		t.Fatalf("Format(time) = %q", got)
	}
	if got := formatter.Format("2023-12-01"); got != "2023/12/01" {
		t.Fatalf("Format(string) = %q", got)
	}
	if got := formatter.Format("someday"); got != "someday" {
		t.Fatalf("Format(invalid) = %q", got)
	}
}
