// Package calendar classifies dates as working or non-working days for
// scheduling purposes. It covers weekends and Japanese public holidays,
// including Happy Monday holidays, equinox days and substitute holidays.
package calendar

import (
	"time"
)

type Calendar struct{}

func New() *Calendar {
	return &Calendar{}
}

// Holiday is a named public holiday on a specific date.
type Holiday struct {
	Date time.Time
	Name string
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (c *Calendar) IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether the date is a public holiday.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.HolidayName(d)
	return ok
}

// HolidayName returns the holiday name for the date, if any.
func (c *Calendar) HolidayName(d time.Time) (string, bool) {
	d = truncateDay(d)
	if name, ok := holidayOn(d); ok {
		return name, true
	}
	// Substitute holiday: when a holiday falls on Sunday, the first
	// following day that is not itself a holiday is observed instead.
	prev := d.AddDate(0, 0, -1)
	for {
		if _, ok := holidayOn(prev); !ok {
			return "", false
		}
		if prev.Weekday() == time.Sunday {
			return "振替休日", true
		}
		prev = prev.AddDate(0, 0, -1)
	}
}

// IsNonWorkingDay reports whether the date is a weekend or public holiday,
// and the reason (holiday name or weekday name for weekends).
func (c *Calendar) IsNonWorkingDay(d time.Time) (bool, string) {
	if name, ok := c.HolidayName(d); ok {
		return true, name
	}
	if c.IsWeekend(d) {
		return true, d.Weekday().String()
	}
	return false, ""
}

// HolidaysInRange returns all public holidays in [from, to], inclusive.
func (c *Calendar) HolidaysInRange(from, to time.Time) []Holiday {
	var holidays []Holiday
	for d := truncateDay(from); !d.After(truncateDay(to)); d = d.AddDate(0, 0, 1) {
		if name, ok := c.HolidayName(d); ok {
			holidays = append(holidays, Holiday{Date: d, Name: name})
		}
	}
	return holidays
}

// ShiftsRequiredForWeek returns the number of shifts required for the week
// starting at weekStart: the base of 5 reduced by one per weekday holiday,
// never below 4.
func (c *Calendar) ShiftsRequiredForWeek(weekStart time.Time) int {
	weekStart = WeekStart(weekStart)
	weekdayHolidays := 0
	for i := 0; i < 7; i++ {
		d := weekStart.AddDate(0, 0, i)
		if !c.IsWeekend(d) && c.IsHoliday(d) {
			weekdayHolidays++
		}
	}
	required := 5 - weekdayHolidays
	if required < 4 {
		required = 4
	}
	return required
}

// DayInfo describes one day of a week for scheduling.
type DayInfo struct {
	Date         time.Time
	DayName      string
	IsWeekend    bool
	IsHoliday    bool
	HolidayName  string
	IsNonWorking bool
}

// WeekInfo summarizes a Monday-to-Sunday week.
type WeekInfo struct {
	WeekStart           time.Time
	WeekEnd             time.Time
	Days                []DayInfo
	WeekendCount        int
	HolidayCount        int
	WeekdayHolidayCount int
	RequiredShifts      int
}

// WeekInfo returns a per-day breakdown of the week containing weekStart.
func (c *Calendar) WeekInfo(weekStart time.Time) WeekInfo {
	start := WeekStart(weekStart)
	info := WeekInfo{
		WeekStart: start,
		WeekEnd:   start.AddDate(0, 0, 6),
	}
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		name, isHoliday := c.HolidayName(d)
		day := DayInfo{
			Date:         d,
			DayName:      d.Weekday().String(),
			IsWeekend:    c.IsWeekend(d),
			IsHoliday:    isHoliday,
			HolidayName:  name,
			IsNonWorking: isHoliday || c.IsWeekend(d),
		}
		info.Days = append(info.Days, day)
		if day.IsWeekend {
			info.WeekendCount++
		}
		if day.IsHoliday {
			info.HolidayCount++
			if !day.IsWeekend {
				info.WeekdayHolidayCount++
			}
		}
	}
	required := 5 - info.WeekdayHolidayCount
	if required < 4 {
		required = 4
	}
	info.RequiredShifts = required
	return info
}

// WeekStart returns Monday 00:00 of the week containing d.
func WeekStart(d time.Time) time.Time {
	d = truncateDay(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthTag returns the YYYY-MM tag used for comp-off expiry bookkeeping.
func MonthTag(d time.Time) string {
	return d.Format("2006-01")
}

func truncateDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
