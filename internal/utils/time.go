package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
)

// TodayFromSettings returns now's date key (YYYY-MM-DD) in the timezone from
// settings, so "today" follows the user's zone rather than the system's.
func TodayFromSettings(now time.Time, settings models.Settings) (string, error) {
	t, err := InTimezone(now, settings.Timezone)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// InTimezone converts t to the named timezone.
func InTimezone(t time.Time, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return t.In(loc), nil
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	return InTimezone(time.Now(), timezone)
}

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBefore returns the date key n calendar days before t.
// Calendar arithmetic keeps DST transitions from skipping a day.
func DaysBefore(t time.Time, n int) string {
	y, m, d := t.Date()
	return DateKey(time.Date(y, m, d-n, 12, 0, 0, 0, t.Location()))
}

// StartOfWeek returns the date key of the Monday on or before t.
func StartOfWeek(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return DaysBefore(t, offset)
}

// StartOfMonth returns the date key of the first day of t's month.
func StartOfMonth(t time.Time) string {
	return DateKey(time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, t.Location()))
}

// FormatDate renders a YYYY-MM-DD date with layout. Unparseable input is returned as is.
func FormatDate(dateStr, layout string) string {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(layout)
}

// FormatLongDate renders a date like "Monday, January 15, 2024".
func FormatLongDate(dateStr string) string {
	return FormatDate(dateStr, constants.LongDateFormat)
}

// WeekdayName returns the English weekday of a YYYY-MM-DD date.
func WeekdayName(dateStr string) (string, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// ValidateDateFormat checks if the string is a real YYYY-MM-DD date.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
