// Package temporal parses operator timestamps and derives the French-labeled
// calendar fields of the canonical schema
//
// Every timestamp is normalized to the investigation's fixed local offset,
// UTC+4 (Réunion, no DST)
package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	perr "fadet/internal/platform/errors"
)

// FixedLocalOffsetHours is the target offset every parsed timestamp lands in
const FixedLocalOffsetHours = 4

// Reunion is the fixed-offset location records are expressed in
var Reunion = time.FixedZone("UTC+4", FixedLocalOffsetHours*3600)

// offsetToken matches the trailing UTC offset suffix some exports carry,
// e.g. "01/03/2024 - 10:00:00 UTC+2"
var offsetToken = regexp.MustCompile(`UTC([+-]\d)`)

// offsetLayout is the shape of the timestamp preceding an offset token
const offsetLayout = "02/01/2006 - 15:04:05"

// plainLayouts are tried in order for dates without an offset suffix
var plainLayouts = []string{
	"02/01/2006 - 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006-01-02",
}

// ParseAndLocalize parses raw into a timestamp in the fixed UTC+4 offset.
//
// Two input shapes are supported: a plain date/time string, taken as already
// local, and a string with an explicit "UTC+X" suffix, which is stripped and
// the naive remainder shifted by (4 - X) hours. A missing suffix on the
// offset-bearing shape defaults X to 0, so such timestamps shift forward by
// the full local offset
func ParseAndLocalize(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, perr.InvalidArgf("empty timestamp")
	}

	if strings.Contains(raw, " UTC") {
		offset := 0
		if m := offsetToken.FindStringSubmatch(raw); m != nil {
			offset, _ = strconv.Atoi(m[1])
		}
		naive := strings.SplitN(raw, " UTC", 2)[0]
		t, err := time.ParseInLocation(offsetLayout, naive, Reunion)
		if err != nil {
			return time.Time{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unparsable timestamp %q", raw)
		}
		return t.Add(time.Duration(FixedLocalOffsetHours-offset) * time.Hour), nil
	}

	for _, layout := range plainLayouts {
		if t, err := time.ParseInLocation(layout, raw, Reunion); err == nil {
			return t, nil
		}
	}
	return time.Time{}, perr.InvalidArgf("unparsable timestamp %q", raw)
}

// monthsFR maps month numbers to the canonical uppercase French labels
var monthsFR = [13]string{
	"",
	"JANVIER", "FEVRIER", "MARS", "AVRIL", "MAI", "JUIN",
	"JUILLET", "AOUT", "SEPTEMBRE", "OCTOBRE", "NOVEMBRE", "DECEMBRE",
}

// weekdaysFR is indexed by time.Weekday (Sunday first)
var weekdaysFR = [7]string{
	"DIMANCHE", "LUNDI", "MARDI", "MERCREDI", "JEUDI", "VENDREDI", "SAMEDI",
}

// CalendarFields are the four derived columns of the canonical schema.
// They are recomputed from the date, never supplied independently
type CalendarFields struct {
	Year    string
	Month   string
	Hour    string
	Weekday string
}

// DeriveCalendarFields decomposes t into the localized calendar columns
func DeriveCalendarFields(t time.Time) CalendarFields {
	return CalendarFields{
		Year:    strconv.Itoa(t.Year()),
		Month:   monthsFR[int(t.Month())],
		Hour:    strconv.Itoa(t.Hour()),
		Weekday: weekdaysFR[int(t.Weekday())],
	}
}

// FormatCanonical renders t the way the warehouse stores the DATE column
func FormatCanonical(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
