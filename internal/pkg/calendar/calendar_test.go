package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestCalendar_IsWeekend(t *testing.T) {
	cal := New()

	assert.True(t, cal.IsWeekend(date(t, "2026-03-07")), "Saturday")
	assert.True(t, cal.IsWeekend(date(t, "2026-03-08")), "Sunday")
	assert.False(t, cal.IsWeekend(date(t, "2026-03-06")), "Friday")
	assert.False(t, cal.IsWeekend(date(t, "2026-03-09")), "Monday")
}

func TestCalendar_HolidayName(t *testing.T) {
	cal := New()

	cases := []struct {
		date string
		name string
	}{
		{"2026-01-01", "元日"},
		{"2026-01-12", "成人の日"}, // second Monday of January
		{"2026-02-11", "建国記念の日"},
		{"2026-02-23", "天皇誕生日"},
		{"2026-03-20", "春分の日"},
		{"2026-04-29", "昭和の日"},
		{"2026-05-03", "憲法記念日"},
		{"2026-05-04", "みどりの日"},
		{"2026-05-05", "こどもの日"},
		{"2026-07-20", "海の日"}, // third Monday of July
		{"2026-08-11", "山の日"},
		{"2026-09-21", "敬老の日"},
		{"2026-09-23", "秋分の日"},
		{"2026-10-12", "スポーツの日"},
		{"2026-11-03", "文化の日"},
		{"2026-11-23", "勤労感謝の日"},
	}

	for _, tc := range cases {
		name, ok := cal.HolidayName(date(t, tc.date))
		assert.True(t, ok, tc.date)
		assert.Equal(t, tc.name, name, tc.date)
	}

	_, ok := cal.HolidayName(date(t, "2026-03-02"))
	assert.False(t, ok, "an ordinary Monday is not a holiday")
}

// 2026-05-03 (Constitution Day) is a Sunday, so Wednesday 2026-05-06
// becomes the substitute: May 4 and 5 are themselves holidays.
func TestCalendar_SubstituteHoliday(t *testing.T) {
	cal := New()

	name, ok := cal.HolidayName(date(t, "2026-05-06"))
	require.True(t, ok)
	assert.Equal(t, "振替休日", name)

	// A Monday after a non-holiday Sunday is not a substitute.
	_, ok = cal.HolidayName(date(t, "2026-03-09"))
	assert.False(t, ok)
}

func TestCalendar_IsNonWorkingDay(t *testing.T) {
	cal := New()

	nonWorking, reason := cal.IsNonWorkingDay(date(t, "2026-03-07"))
	assert.True(t, nonWorking)
	assert.Equal(t, "Saturday", reason)

	nonWorking, reason = cal.IsNonWorkingDay(date(t, "2026-05-04"))
	assert.True(t, nonWorking)
	assert.Equal(t, "みどりの日", reason)

	nonWorking, reason = cal.IsNonWorkingDay(date(t, "2026-03-02"))
	assert.False(t, nonWorking)
	assert.Empty(t, reason)
}

func TestCalendar_HolidaysInRange(t *testing.T) {
	cal := New()

	holidays := cal.HolidaysInRange(date(t, "2026-05-01"), date(t, "2026-05-31"))

	require.Len(t, holidays, 4)
	assert.Equal(t, "憲法記念日", holidays[0].Name)
	assert.Equal(t, "みどりの日", holidays[1].Name)
	assert.Equal(t, "こどもの日", holidays[2].Name)
	assert.Equal(t, "振替休日", holidays[3].Name)
}

func TestCalendar_ShiftsRequiredForWeek(t *testing.T) {
	cal := New()

	// Plain week, no holidays.
	assert.Equal(t, 5, cal.ShiftsRequiredForWeek(date(t, "2026-03-02")))

	// Week of 2026-05-04: Greenery Day (Mon), Children's Day (Tue) and
	// the substitute (Wed) are all weekday holidays, but the floor holds.
	assert.Equal(t, 4, cal.ShiftsRequiredForWeek(date(t, "2026-05-04")))

	// Week containing Culture Day (Tue 2026-11-03): one weekday holiday.
	assert.Equal(t, 4, cal.ShiftsRequiredForWeek(date(t, "2026-11-02")))
}

func TestWeekStart(t *testing.T) {
	monday := date(t, "2026-03-02")

	assert.True(t, WeekStart(monday).Equal(monday), "Monday maps to itself")
	assert.True(t, WeekStart(date(t, "2026-03-04")).Equal(monday), "Wednesday")
	assert.True(t, WeekStart(date(t, "2026-03-08")).Equal(monday), "Sunday belongs to the preceding Monday")
	assert.True(t, WeekStart(date(t, "2026-03-09")).Equal(date(t, "2026-03-09")), "next Monday starts a new week")
}

func TestCalendar_WeekInfo(t *testing.T) {
	cal := New()

	info := cal.WeekInfo(date(t, "2026-05-06"))

	assert.True(t, info.WeekStart.Equal(date(t, "2026-05-04")))
	assert.True(t, info.WeekEnd.Equal(date(t, "2026-05-10")))
	require.Len(t, info.Days, 7)
	assert.Equal(t, 2, info.WeekendCount)
	assert.Equal(t, 3, info.HolidayCount)
	assert.Equal(t, 3, info.WeekdayHolidayCount)
	assert.Equal(t, 4, info.RequiredShifts)

	assert.Equal(t, "みどりの日", info.Days[0].HolidayName)
	assert.True(t, info.Days[0].IsNonWorking)
	assert.False(t, info.Days[3].IsNonWorking, "Thursday is a working day")
}

func TestMonthTag(t *testing.T) {
	assert.Equal(t, "2026-03", MonthTag(date(t, "2026-03-31")))
	assert.Equal(t, "2026-04", MonthTag(date(t, "2026-04-01")))
}
