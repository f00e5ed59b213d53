package meteostat

import "time"

type requiredKind int

const (
	requiredAny requiredKind = iota
	requiredFullYear
	requiredDateRange
	requiredSinceDate
)

// RequiredData describes what coverage a station inventory must report
// for a given frequency. It is used purely as a filter predicate.
type RequiredData struct {
	kind  requiredKind
	year  int
	date  time.Time
	start time.Time
	end   time.Time
}

// AnyData requires only that the station reports some data at all.
func AnyData() RequiredData {
	return RequiredData{kind: requiredAny}
}

// FullYear requires coverage of the entire given year.
func FullYear(year int) RequiredData {
	return RequiredData{kind: requiredFullYear, year: year}
}

// DateRange requires coverage of the whole inclusive interval.
func DateRange(start, end time.Time) RequiredData {
	return RequiredData{kind: requiredDateRange, start: start.UTC(), end: end.UTC()}
}

// SinceDate requires coverage extending to the given date or later.
func SinceDate(date time.Time) RequiredData {
	return RequiredData{kind: requiredSinceDate, date: date.UTC()}
}

// impliesCurrentYear reports whether the requirement asks for data in the
// current UTC year, which is the only case where a cached file can go
// stale under the default freshness policy.
func (r RequiredData) impliesCurrentYear(now time.Time) bool {
	year := now.UTC().Year()
	switch r.kind {
	case requiredFullYear:
		return r.year >= year
	case requiredDateRange:
		return r.end.Year() >= year
	case requiredSinceDate:
		return r.date.Year() >= year
	default:
		return false
	}
}

// satisfiedBy reports whether an inventory coverage interval meets the
// requirement.
func (r RequiredData) satisfiedBy(start, end time.Time) bool {
	switch r.kind {
	case requiredAny:
		return true
	case requiredFullYear:
		yearStart := time.Date(r.year, time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(r.year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return !start.After(yearStart) && !end.Before(yearEnd)
	case requiredDateRange:
		return !start.After(r.start) && !end.Before(r.end)
	case requiredSinceDate:
		return !end.Before(r.date)
	default:
		return false
	}
}

// InventoryRequirement couples a frequency with the coverage a matching
// station must report for it.
type InventoryRequirement struct {
	Frequency Frequency
	Required  RequiredData
}

// matches reports whether the station inventory satisfies the requirement.
func (req InventoryRequirement) matches(s *Station) bool {
	start, end, ok := s.Inventory.coverage(req.Frequency)
	if !ok {
		return false
	}
	return req.Required.satisfiedBy(start, end)
}
