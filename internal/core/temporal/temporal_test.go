package temporal

import (
	"testing"
	"time"
)

func TestParseAndLocalize_OffsetSuffix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // canonical rendering in UTC+4
	}{
		{
			// 4 - 2 = 2 hours forward from the naive parse
			name: "utc plus two",
			in:   "01/03/2024 - 10:00:00 UTC+2",
			want: "2024-03-01 12:00:00",
		},
		{
			name: "utc plus four is identity",
			in:   "01/03/2024 - 10:00:00 UTC+4",
			want: "2024-03-01 10:00:00",
		},
		{
			name: "negative offset",
			in:   "01/03/2024 - 10:00:00 UTC-1",
			want: "2024-03-01 15:00:00",
		},
		{
			// missing offset digit defaults to 0, full +4 shift
			name: "bare utc marker",
			in:   "01/03/2024 - 10:00:00 UTC",
			want: "2024-03-01 14:00:00",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAndLocalize(tc.in)
			if err != nil {
				t.Fatalf("ParseAndLocalize(%q) error: %v", tc.in, err)
			}
			if s := FormatCanonical(got); s != tc.want {
				t.Fatalf("ParseAndLocalize(%q) = %s, want %s", tc.in, s, tc.want)
			}
		})
	}
}

func TestParseAndLocalize_PlainShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "slash datetime", in: "15/07/2024 - 08:30:00", want: "2024-07-15 08:30:00"},
		{name: "slash datetime no dash", in: "15/07/2024 08:30:00", want: "2024-07-15 08:30:00"},
		{name: "iso datetime", in: "2024-07-15 08:30:00", want: "2024-07-15 08:30:00"},
		{name: "date only", in: "15/07/2024", want: "2024-07-15 00:00:00"},
		{name: "surrounding spaces", in: "  15/07/2024 08:30:00 ", want: "2024-07-15 08:30:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAndLocalize(tc.in)
			if err != nil {
				t.Fatalf("ParseAndLocalize(%q) error: %v", tc.in, err)
			}
			if s := FormatCanonical(got); s != tc.want {
				t.Fatalf("ParseAndLocalize(%q) = %s, want %s", tc.in, s, tc.want)
			}
		})
	}
}

func TestParseAndLocalize_Errors(t *testing.T) {
	for _, in := range []string{"", "not a date", "99/99/2024 - 10:00:00 UTC+2"} {
		if _, err := ParseAndLocalize(in); err == nil {
			t.Fatalf("ParseAndLocalize(%q) expected error", in)
		}
	}
}

func TestDeriveCalendarFields(t *testing.T) {
	// 2024-03-01 is a Friday
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, Reunion)
	f := DeriveCalendarFields(ts)
	if f.Year != "2024" || f.Month != "MARS" || f.Hour != "12" || f.Weekday != "VENDREDI" {
		t.Fatalf("unexpected fields: %+v", f)
	}

	// 2023-12-31 is a Sunday
	ts = time.Date(2023, 12, 31, 0, 0, 0, 0, Reunion)
	f = DeriveCalendarFields(ts)
	if f.Month != "DECEMBRE" || f.Weekday != "DIMANCHE" || f.Hour != "0" {
		t.Fatalf("unexpected fields: %+v", f)
	}
}

func TestMonthAndWeekdayTablesComplete(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		ts := time.Date(2024, m, 1, 0, 0, 0, 0, Reunion)
		if DeriveCalendarFields(ts).Month == "" {
			t.Fatalf("month %v has no label", m)
		}
	}
	for d := 0; d < 7; d++ {
		ts := time.Date(2024, 1, 1+d, 0, 0, 0, 0, Reunion)
		if DeriveCalendarFields(ts).Weekday == "" {
			t.Fatalf("weekday of %v has no label", ts)
		}
	}
}
