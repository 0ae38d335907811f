package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// BookingHorizonDays is the fixed forward window within which
	// appointments may be scheduled.
	BookingHorizonDays = 30

	defaultWorkingStart = "09:00"
	defaultWorkingEnd   = "17:00"
)

// GenerateSlots produces the ordered 30-minute slot labels for a working-hour
// range. Only the hour component of the HH:MM boundaries is used; minutes are
// truncated, not rounded, and the end hour is exclusive, so 09:00-17:00 ends
// at 16:30 and 09:00-12:30 ends at 11:30.
func GenerateSlots(start, end string) []string {
	startHour := parseHour(start, defaultWorkingStart)
	endHour := parseHour(end, defaultWorkingEnd)

	slots := make([]string, 0, max(0, 2*(endHour-startHour)))
	for hour := startHour; hour < endHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return slots
}

func parseHour(hhmm, fallback string) int {
	if hhmm == "" {
		hhmm = fallback
	}
	hourPart, _, _ := strings.Cut(hhmm, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		hourPart, _, _ = strings.Cut(fallback, ":")
		hour, _ = strconv.Atoi(hourPart)
	}
	return hour
}

// WeekdayName returns the lowercase weekday name used in a doctor's
// available-days set.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// DateBookable reports whether date is a legal selection relative to now:
// not in the past, within the booking horizon, and on one of the doctor's
// available weekdays. Only the calendar date of each argument matters; both
// are reduced to midnight in now's location before comparison, so a date
// parsed in UTC still counts as today on a server in another zone.
func DateBookable(date, now time.Time, availableDays []string) bool {
	today := startOfDay(now)
	day := calendarDay(date, now.Location())

	if day.Before(today) {
		return false
	}
	if day.After(today.AddDate(0, 0, BookingHorizonDays)) {
		return false
	}

	name := WeekdayName(day)
	for _, d := range availableDays {
		if d == name {
			return true
		}
	}
	return false
}

// BookableDates enumerates every legal date inside the horizon, in order.
func BookableDates(now time.Time, availableDays []string) []string {
	today := startOfDay(now)

	var dates []string
	for i := 0; i <= BookingHorizonDays; i++ {
		day := today.AddDate(0, 0, i)
		if DateBookable(day, now, availableDays) {
			dates = append(dates, day.Format("2006-01-02"))
		}
	}
	return dates
}

func startOfDay(t time.Time) time.Time {
	return calendarDay(t, t.Location())
}

// calendarDay reinterprets t's calendar date as midnight in loc, without
// shifting the instant across a day boundary.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
