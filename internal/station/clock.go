// Package station holds the station's wall-clock conventions: the fixed
// UTC+7 zone, Monday-first weekday numbering and HH:MM time strings.
package station

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultZoneLabel is the short name shown next to station times.
const DefaultZoneLabel = "WIB"

// DayNames are the display names of the weekday partitions, Monday first.
var DayNames = [7]string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}

var hhmmPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Clock converts instants into station local time.
type Clock struct {
	zone  *time.Location
	label string
	now   func() time.Time
}

// NewClock creates a clock for a fixed UTC offset. A nil now func falls back
// to time.Now.
func NewClock(offsetHours int, label string, now func() time.Time) *Clock {
	if label == "" {
		label = DefaultZoneLabel
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{
		zone:  time.FixedZone(label, offsetHours*60*60),
		label: label,
		now:   now,
	}
}

// Jakarta returns the standard station clock (UTC+7, WIB).
func Jakarta() *Clock {
	return NewClock(7, DefaultZoneLabel, nil)
}

// Label returns the zone label, e.g. "WIB".
func (c *Clock) Label() string {
	return c.label
}

// Now returns the current instant in station time.
func (c *Clock) Now() time.Time {
	return c.now().In(c.zone)
}

// In converts t to station time.
func (c *Clock) In(t time.Time) time.Time {
	return t.In(c.zone)
}

// Today returns the current weekday index (Monday=0) in station time.
func (c *Clock) Today() int {
	return Weekday(c.Now())
}

// Weekday maps t's weekday to the Monday=0 numbering used by the playlist.
// t is used in its own location; convert it first when needed.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MinuteOfDay returns hours*60+minutes of t in its own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DayName returns the display name of day, or "" when out of range.
func DayName(day int) string {
	if !ValidDay(day) {
		return ""
	}
	return DayNames[day]
}

// ValidDay reports whether day is a weekday index in [0, 6].
func ValidDay(day int) bool {
	return day >= 0 && day < len(DayNames)
}

// ValidHHMM reports whether s has the exact form DD:DD.
func ValidHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

// Minutes converts an HH:MM string into minutes since midnight. Empty input
// counts as 00:00.
func Minutes(s string) (int, error) {
	if s == "" {
		s = "00:00"
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: missing ':'", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	return h*60 + m, nil
}

// At returns the instant at hhmm on the station date of day.
func (c *Clock) At(day time.Time, hhmm string) (time.Time, error) {
	mins, err := Minutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	d := day.In(c.zone)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, mins, 0, 0, c.zone), nil
}

// FormatDate renders t as dd/mm/yyyy in station time.
func (c *Clock) FormatDate(t time.Time) string {
	return t.In(c.zone).Format("02/01/2006")
}

// FormatTime renders t as 24h HH:MM in station time.
func (c *Clock) FormatTime(t time.Time) string {
	return t.In(c.zone).Format("15:04")
}

// FormatDateTime renders t as "dd/mm/yyyy HH:MM WIB".
func (c *Clock) FormatDateTime(t time.Time) string {
	return c.FormatDate(t) + " " + c.FormatTime(t) + " " + c.label
}

// localLayouts are the accepted forms of a station-local date and time
var localLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04"}

// ParseLocal reads a station-local "yyyy-mm-dd HH:MM" (or with a T
// separator) and returns the instant it names.
func (c *Clock) ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.zone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local time %q: want yyyy-mm-dd HH:MM", s)
}

// FormatRange renders a time window the way the admin panels show it: a single
// date when both ends fall on the same station day, otherwise both dates.
func (c *Clock) FormatRange(start, end time.Time) string {
	sDate, eDate := c.FormatDate(start), c.FormatDate(end)
	sTime, eTime := c.FormatTime(start), c.FormatTime(end)
	if sDate == eDate {
		return fmt.Sprintf("%s %s – %s %s", sDate, sTime, eTime, c.label)
	}
	return fmt.Sprintf("%s %s → %s %s %s", sDate, sTime, eDate, eTime, c.label)
}
