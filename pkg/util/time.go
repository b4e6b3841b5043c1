package util

import (
	"time"
)

// DaysBetween counts the calendar days from one date to another, ignoring the time of day
func DaysBetween(from time.Time, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(toDate.Sub(fromDate).Hours() / 24)
}

const DateLayout = "2006-01-02"

func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.Local)
}
