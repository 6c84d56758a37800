package calendar

import "time"

// Japanese national holidays, computed per the Act on National Holidays.
// Valid for years 2000-2099 (the equinox approximations hold in that range).

func holidayOn(d time.Time) (string, bool) {
	y, m, day := d.Year(), d.Month(), d.Day()

	switch m {
	case time.January:
		if day == 1 {
			return "元日", true
		}
		if day == nthMonday(y, time.January, 2) {
			return "成人の日", true
		}
	case time.February:
		if day == 11 {
			return "建国記念の日", true
		}
		if day == 23 && y >= 2020 {
			return "天皇誕生日", true
		}
	case time.March:
		if day == vernalEquinoxDay(y) {
			return "春分の日", true
		}
	case time.April:
		if day == 29 {
			return "昭和の日", true
		}
	case time.May:
		switch day {
		case 3:
			return "憲法記念日", true
		case 4:
			return "みどりの日", true
		case 5:
			return "こどもの日", true
		}
	case time.July:
		if day == nthMonday(y, time.July, 3) {
			return "海の日", true
		}
	case time.August:
		if day == 11 && y >= 2016 {
			return "山の日", true
		}
	case time.September:
		if day == nthMonday(y, time.September, 3) {
			return "敬老の日", true
		}
		if day == autumnalEquinoxDay(y) {
			return "秋分の日", true
		}
	case time.October:
		if day == nthMonday(y, time.October, 2) {
			return "スポーツの日", true
		}
	case time.November:
		if day == 3 {
			return "文化の日", true
		}
		if day == 23 {
			return "勤労感謝の日", true
		}
	}
	return "", false
}

// nthMonday returns the day-of-month of the nth Monday.
func nthMonday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return 1 + offset + (n-1)*7
}

// Equinox day approximations for 2000-2099.
func vernalEquinoxDay(year int) int {
	return int(20.8431 + 0.242194*float64(year-1980) - float64((year-1980)/4))
}

func autumnalEquinoxDay(year int) int {
	return int(23.2488 + 0.242194*float64(year-1980) - float64((year-1980)/4))
}
