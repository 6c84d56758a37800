package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// ParseClock parses an HH:MM wall-clock string into minutes after midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return h*60 + m, nil
}

// ShiftHours returns the duration between two wall-clock times in hours.
// An end at or before the start wraps past midnight.
func ShiftHours(startTime, endTime string) (decimal.Decimal, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return decimal.Zero, err
	}
	minutes := end - start
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty), nil
}

// ClockOn anchors an HH:MM wall-clock string onto a date.
func ClockOn(date time.Time, clock string) (time.Time, error) {
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location()), nil
}
