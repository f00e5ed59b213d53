package meteostat

import "time"

type periodKind int

const (
	periodYear periodKind = iota
	periodYearMonth
	periodDate
)

// Period is a calendar span used by ForPeriod filters. It is a tagged
// variant over a whole year, a single month or a single day; filter logic
// dispatches on the tag and widens it to the frequency's granularity.
type Period struct {
	kind  periodKind
	year  int
	month time.Month
	date  time.Time
}

// Year spans January 1 through December 31 of the given year.
func Year(year int) Period {
	return Period{kind: periodYear, year: year}
}

// YearMonth spans a single calendar month.
func YearMonth(year int, month time.Month) Period {
	return Period{kind: periodYearMonth, year: year, month: month}
}

// CalendarDate spans a single day.
func CalendarDate(date time.Time) Period {
	return Period{kind: periodDate, date: date.UTC()}
}

// span returns the inclusive first and last day covered by the period.
func (p Period) span() (time.Time, time.Time) {
	switch p.kind {
	case periodYear:
		start := time.Date(p.year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(p.year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return start, end
	case periodYearMonth:
		start := time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return start, end
	default:
		day := time.Date(p.date.Year(), p.date.Month(), p.date.Day(), 0, 0, 0, 0, time.UTC)
		return day, day
	}
}
